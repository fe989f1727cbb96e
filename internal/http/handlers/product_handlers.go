package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	mw "github.com/dmarket/dmarket-api/internal/http/middleware"
	"github.com/dmarket/dmarket-api/internal/models"
	"github.com/dmarket/dmarket-api/internal/repo"
)

// GetProductsHandler godoc
// @Summary List all products
// @Description Retrieve all products in the catalog.
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {object} MessageResponse
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		log.WithError(err).Error("could not fetch products")
		writeMessage(w, http.StatusInternalServerError, "could not fetch products")
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, response)
}

// CreateProductHandler godoc
// @Summary Add a new product
// @Description Add a new product by providing the required fields (name, price, and quantity).
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body CreateProductInput true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} MessageResponse
// @Failure 401 {object} MessageResponse
// @Router /products/create [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := readJSON(w, r, &fields); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	in, err := validateCreate(fields)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, _ := mw.UserFromContext(r)

	product := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		UserID:      user.UserID,
	}
	created, err := productRepo.Create(product)
	if err != nil {
		log.WithError(err).Error("error adding product")
		writeMessage(w, http.StatusInternalServerError, "An error occurred while adding the product.")
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(created))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Update a product's description, price, and/or quantity. All three fields are optional; omitted fields keep their prior values.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param product body UpdateProductInput true "Fields to update"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} MessageResponse
// @Failure 403 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Router /products/{id}/update [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var fields map[string]any
	if err := readJSON(w, r, &fields); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	in, err := validateUpdate(fields)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "could not fetch product")
		return
	}

	user, _ := mw.UserFromContext(r)
	if product.UserID != user.UserID && !user.IsAdmin {
		writeMessage(w, http.StatusForbidden, "You don't have permission to edit this product.")
		return
	}

	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}

	updated, err := productRepo.Update(product)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		log.WithError(err).WithField("product_id", id).Error("error updating product")
		writeMessage(w, http.StatusInternalServerError, "could not update product")
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Description Delete a product using the specified product ID. The row is removed permanently.
// @Tags products
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {object} MessageResponse
// @Failure 403 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Router /products/{id}/delete [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Input provided is invalid, please input a valid ID.")
		return
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "could not fetch product")
		return
	}

	user, _ := mw.UserFromContext(r)
	if product.UserID != user.UserID && !user.IsAdmin {
		writeMessage(w, http.StatusForbidden, "You don't have permission to delete this product.")
		return
	}

	if err := productRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		log.WithError(err).WithField("product_id", id).Error("error deleting product")
		writeMessage(w, http.StatusInternalServerError, "could not delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		UserID:      p.UserID,
	}
}
