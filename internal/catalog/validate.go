package catalog

import (
	"errors"
	"fmt"
)

var ErrInvalid = errors.New("invalid product")

type CreateInput struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Price       *int   `json:"price"`
	Visible     *bool  `json:"visible"`
	StockType   string `json:"stock_type"`
	StockValue  int    `json:"stock_value"`
	MaxPerOrder *int   `json:"max_per_order"`
	IsYogaAddOn bool   `json:"is_yoga_add_on"`
}

// Validate checks a create payload and returns the normalized product
// fields. Boolean stock collapses stock_value to 0/1.
func (in CreateInput) Validate() (Product, error) {
	if in.Title == "" {
		return Product{}, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	pt := ProductType(in.Type)
	if pt != TypeTicket && pt != TypeItem {
		return Product{}, fmt.Errorf("%w: type must be ticket or item", ErrInvalid)
	}
	if in.Price == nil || *in.Price < 0 {
		return Product{}, fmt.Errorf("%w: price must be a non-negative integer", ErrInvalid)
	}
	st := StockType(in.StockType)
	if st != StockQuantity && st != StockBoolean {
		return Product{}, fmt.Errorf("%w: stock_type must be quantity or boolean", ErrInvalid)
	}
	sv := in.StockValue
	if sv < 0 {
		return Product{}, fmt.Errorf("%w: stock_value must not be negative", ErrInvalid)
	}
	if st == StockBoolean {
		sv = normalizeFlag(sv)
	}
	if in.MaxPerOrder != nil && *in.MaxPerOrder < 1 {
		return Product{}, fmt.Errorf("%w: max_per_order must be positive", ErrInvalid)
	}
	visible := true
	if in.Visible != nil {
		visible = *in.Visible
	}
	return Product{
		Title:       in.Title,
		Type:        pt,
		Price:       *in.Price,
		Visible:     visible,
		StockType:   st,
		StockValue:  sv,
		MaxPerOrder: in.MaxPerOrder,
		IsYogaAddOn: in.IsYogaAddOn,
	}, nil
}

func normalizeFlag(v int) int {
	if v != 0 {
		return 1
	}
	return 0
}

type UpdateInput struct {
	ID          int     `json:"id"`
	Title       *string `json:"title"`
	Type        *string `json:"type"`
	Price       *int    `json:"price"`
	Visible     *bool   `json:"visible"`
	StockType   *string `json:"stock_type"`
	StockValue  *int    `json:"stock_value"`
	MaxPerOrder *int    `json:"max_per_order"`
	IsYogaAddOn *bool   `json:"is_yoga_add_on"`
}

// Validate checks the fields the caller chose to set.
func (in UpdateInput) Validate() error {
	if in.ID <= 0 {
		return fmt.Errorf("%w: missing id", ErrInvalid)
	}
	if in.Title != nil && *in.Title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalid)
	}
	if in.Type != nil {
		if t := ProductType(*in.Type); t != TypeTicket && t != TypeItem {
			return fmt.Errorf("%w: type must be ticket or item", ErrInvalid)
		}
	}
	if in.Price != nil && *in.Price < 0 {
		return fmt.Errorf("%w: price must be a non-negative integer", ErrInvalid)
	}
	if in.StockType != nil {
		if st := StockType(*in.StockType); st != StockQuantity && st != StockBoolean {
			return fmt.Errorf("%w: stock_type must be quantity or boolean", ErrInvalid)
		}
	}
	if in.StockValue != nil && *in.StockValue < 0 {
		return fmt.Errorf("%w: stock_value must not be negative", ErrInvalid)
	}
	if in.MaxPerOrder != nil && *in.MaxPerOrder < 1 {
		return fmt.Errorf("%w: max_per_order must be positive", ErrInvalid)
	}
	return nil
}
