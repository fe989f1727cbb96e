package handlers

import (
	"testing"
)

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]any
		wantErr string
	}{
		{
			name:    "valid",
			fields:  map[string]any{"name": "Laptop", "price": 1500.0, "quantity": 3.0},
			wantErr: "",
		},
		{
			name:    "valid with description",
			fields:  map[string]any{"name": "Laptop", "description": "15 inch", "price": 1500.0, "quantity": 3.0},
			wantErr: "",
		},
		{
			name:    "missing name",
			fields:  map[string]any{"price": 10.0, "quantity": 1.0},
			wantErr: "Name is required",
		},
		{
			name:    "blank name",
			fields:  map[string]any{"name": "   ", "price": 10.0, "quantity": 1.0},
			wantErr: "Name is required",
		},
		{
			name:    "missing price",
			fields:  map[string]any{"name": "Mouse", "quantity": 1.0},
			wantErr: "Price is required",
		},
		{
			name:    "null price",
			fields:  map[string]any{"name": "Mouse", "price": nil, "quantity": 1.0},
			wantErr: "Price is required",
		},
		{
			name:    "price as string",
			fields:  map[string]any{"name": "Mouse", "price": "cheap", "quantity": 1.0},
			wantErr: "Price must be a number",
		},
		{
			name:    "zero price",
			fields:  map[string]any{"name": "Mouse", "price": 0.0, "quantity": 1.0},
			wantErr: "Price must be higher than 0",
		},
		{
			name:    "negative price",
			fields:  map[string]any{"name": "Mouse", "price": -5.0, "quantity": 1.0},
			wantErr: "Price must be higher than 0",
		},
		{
			name:    "missing quantity",
			fields:  map[string]any{"name": "Mouse", "price": 10.0},
			wantErr: "Quantity is required",
		},
		{
			name:    "fractional quantity",
			fields:  map[string]any{"name": "Mouse", "price": 10.0, "quantity": 2.5},
			wantErr: "Quantity must be an integer",
		},
		{
			name:    "quantity as string",
			fields:  map[string]any{"name": "Mouse", "price": 10.0, "quantity": "many"},
			wantErr: "Quantity must be an integer",
		},
		{
			name:    "zero quantity",
			fields:  map[string]any{"name": "Mouse", "price": 10.0, "quantity": 0.0},
			wantErr: "Quantity must be higher than 0",
		},
		{
			name:    "negative quantity",
			fields:  map[string]any{"name": "Mouse", "price": 10.0, "quantity": -1.0},
			wantErr: "Quantity must be higher than 0",
		},
		{
			name:    "first failure wins",
			fields:  map[string]any{"price": -1.0, "quantity": -1.0},
			wantErr: "Name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := validateCreate(tt.fields)

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %q", err.Error())
				}
				if in.Name == "" || in.Price <= 0 || in.Quantity <= 0 {
					t.Errorf("unexpected validated input: %+v", in)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected error %q, got none", tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("expected error %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]any
		wantErr string
	}{
		{
			name:    "empty body skips everything",
			fields:  map[string]any{},
			wantErr: "",
		},
		{
			name:    "price only",
			fields:  map[string]any{"price": 9.99},
			wantErr: "",
		},
		{
			name:    "all fields",
			fields:  map[string]any{"description": "new", "price": 9.99, "quantity": 4.0},
			wantErr: "",
		},
		{
			name:    "price as string",
			fields:  map[string]any{"price": "free"},
			wantErr: "Price must be a number",
		},
		{
			name:    "zero price",
			fields:  map[string]any{"price": 0.0},
			wantErr: "Price must be higher than 0",
		},
		{
			name:    "fractional quantity",
			fields:  map[string]any{"quantity": 1.5},
			wantErr: "Quantity must be an integer",
		},
		{
			name:    "zero quantity",
			fields:  map[string]any{"quantity": 0.0},
			wantErr: "Quantity must be higher than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := validateUpdate(tt.fields)

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %q", err.Error())
				}
				return
			}

			if err == nil {
				t.Fatalf("expected error %q, got none", tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("expected error %q, got %q", tt.wantErr, err.Error())
			}
			_ = in
		})
	}
}

func TestValidateUpdateBlankDescriptionApplied(t *testing.T) {
	in, err := validateUpdate(map[string]any{"description": ""})
	if err != nil {
		t.Fatalf("expected no error, got %q", err.Error())
	}
	if in.Description == nil {
		t.Fatal("expected blank description to be applied, got nil")
	}
	if *in.Description != "" {
		t.Errorf("expected empty description, got %q", *in.Description)
	}
}
