package handlers

import (
	"errors"
	"math"
	"strings"
)

// Validation reasons, surfaced verbatim as the error-body message. Checks
// run in a fixed order and the first failure wins.
var (
	errNameRequired       = errors.New("Name is required")
	errPriceRequired      = errors.New("Price is required")
	errPriceNotNumber     = errors.New("Price must be a number")
	errPriceTooLow        = errors.New("Price must be higher than 0")
	errQuantityRequired   = errors.New("Quantity is required")
	errQuantityNotInteger = errors.New("Quantity must be an integer")
	errQuantityTooLow     = errors.New("Quantity must be higher than 0")
)

type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
}

type UpdateProductInput struct {
	Description *string
	Price       *float64
	Quantity    *int
}

// validateCreate checks a raw decoded body for a product creation.
// Order: name, price presence, price type, price range, quantity presence,
// quantity type, quantity range.
func validateCreate(fields map[string]any) (CreateProductInput, error) {
	var in CreateProductInput

	name, _ := fields["name"].(string)
	if strings.TrimSpace(name) == "" {
		return in, errNameRequired
	}
	in.Name = name

	price, ok := fields["price"]
	if !ok || price == nil {
		return in, errPriceRequired
	}
	p, ok := price.(float64)
	if !ok {
		return in, errPriceNotNumber
	}
	if p <= 0 {
		return in, errPriceTooLow
	}
	in.Price = p

	quantity, ok := fields["quantity"]
	if !ok || quantity == nil {
		return in, errQuantityRequired
	}
	q, err := intValue(quantity)
	if err != nil {
		return in, err
	}
	if q <= 0 {
		return in, errQuantityTooLow
	}
	in.Quantity = q

	if desc, ok := fields["description"].(string); ok {
		in.Description = desc
	}

	return in, nil
}

// validateUpdate checks a raw decoded body for a partial update. Absent
// fields are skipped; present ones run the same type/range checks as create.
func validateUpdate(fields map[string]any) (UpdateProductInput, error) {
	var in UpdateProductInput

	if desc, ok := fields["description"].(string); ok {
		in.Description = &desc
	}

	if price, ok := fields["price"]; ok && price != nil {
		p, ok := price.(float64)
		if !ok {
			return in, errPriceNotNumber
		}
		if p <= 0 {
			return in, errPriceTooLow
		}
		in.Price = &p
	}

	if quantity, ok := fields["quantity"]; ok && quantity != nil {
		q, err := intValue(quantity)
		if err != nil {
			return in, err
		}
		if q <= 0 {
			return in, errQuantityTooLow
		}
		in.Quantity = &q
	}

	return in, nil
}

// intValue accepts JSON numbers with no fractional part.
func intValue(v any) (int, error) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, errQuantityNotInteger
	}
	return int(f), nil
}
