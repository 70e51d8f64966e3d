package domain

import (
	"time"
)

// Product is one inventory item inside a restock list.
// CompletedAt is set exactly when IsCompleted is true.
type Product struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Quantity     int        `json:"quantity"`
	IsCompleted  bool       `json:"is_completed"`
	IsOutOfStock bool       `json:"is_out_of_stock"`
	ImageURL     string     `json:"image_url,omitempty"`
	Comment      string     `json:"comment,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// List is a named collection of products. Products keep insertion order;
// any display ordering is derived, never written back.
type List struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Products    []Product `json:"products"`
}

// Clone returns a deep copy of the list so callers can mutate the copy
// without touching the stored value.
func (l List) Clone() List {
	out := l
	out.Products = make([]Product, len(l.Products))
	for i, p := range l.Products {
		out.Products[i] = p.clone()
	}
	return out
}

func (p Product) clone() Product {
	out := p
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

type CreateListRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type AddProductRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"image_url"`
	Comment  string `json:"comment"`
}

// UpdateProductRequest carries a partial edit; nil fields are left unchanged.
type UpdateProductRequest struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"image_url"`
	Comment  *string `json:"comment"`
}

type AdjustQuantityRequest struct {
	Delta int `json:"delta"`
}

type ImportCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

type ImportCSVRequest struct {
	Content string `json:"content" binding:"required"`
}

type ShareCodeResponse struct {
	Code string `json:"code"`
}

// ProductGroupsResponse is the sorted product view split by stock state.
type ProductGroupsResponse struct {
	InStock    []Product `json:"in_stock"`
	OutOfStock []Product `json:"out_of_stock"`
}
