package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product operations are pure transformations: they take a list value,
// return an updated copy, and report whether anything was applied. The
// caller owns replacing the stored list and persisting.

// ProductUpdate is a partial-field merge for a single product.
// nil fields are left unchanged.
type ProductUpdate struct {
	Name     *string
	ImageURL *string
	Comment  *string
}

// AddProduct appends a new product with quantity 0 and both flags unset.
// A name that trims to empty is rejected (applied=false, list unchanged).
func AddProduct(l List, name, imageURL, comment string) (List, bool) {
	if strings.TrimSpace(name) == "" {
		return l, false
	}

	out := l.Clone()
	out.Products = append(out.Products, Product{
		ID:       uuid.NewString(),
		Name:     name,
		Quantity: 0,
		ImageURL: imageURL,
		Comment:  comment,
	})
	return out, true
}

// UpdateProduct merges the given fields into the matching product.
// A name that trims to empty is ignored rather than applied.
func UpdateProduct(l List, productID string, upd ProductUpdate) (List, bool) {
	return mutateProduct(l, productID, func(p *Product) {
		if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
			p.Name = *upd.Name
		}
		if upd.ImageURL != nil {
			p.ImageURL = *upd.ImageURL
		}
		if upd.Comment != nil {
			p.Comment = *upd.Comment
		}
	})
}

// DeleteProduct removes the matching product, preserving order of the rest.
func DeleteProduct(l List, productID string) (List, bool) {
	found := false
	out := l.Clone()
	products := out.Products[:0]
	for _, p := range out.Products {
		if p.ID == productID {
			found = true
			continue
		}
		products = append(products, p)
	}
	if !found {
		return l, false
	}
	out.Products = products
	return out, true
}

// ToggleCompletion flips IsCompleted and keeps CompletedAt in sync:
// stamped with now on completion, cleared on un-completion.
func ToggleCompletion(l List, productID string, now time.Time) (List, bool) {
	return mutateProduct(l, productID, func(p *Product) {
		p.IsCompleted = !p.IsCompleted
		if p.IsCompleted {
			t := now
			p.CompletedAt = &t
		} else {
			p.CompletedAt = nil
		}
	})
}

// ToggleOutOfStock flips IsOutOfStock only; completion state is untouched.
func ToggleOutOfStock(l List, productID string) (List, bool) {
	return mutateProduct(l, productID, func(p *Product) {
		p.IsOutOfStock = !p.IsOutOfStock
	})
}

// AdjustQuantity adds delta to the quantity, clamping at zero.
func AdjustQuantity(l List, productID string, delta int) (List, bool) {
	return mutateProduct(l, productID, func(p *Product) {
		p.Quantity += delta
		if p.Quantity < 0 {
			p.Quantity = 0
		}
	})
}

// ResetQuantity sets the quantity back to zero, leaving flags alone.
func ResetQuantity(l List, productID string) (List, bool) {
	return mutateProduct(l, productID, func(p *Product) {
		p.Quantity = 0
	})
}

// ResetAll zeroes every quantity and clears completion on every product.
// IsOutOfStock flags are preserved as-is.
func ResetAll(l List) List {
	out := l.Clone()
	for i := range out.Products {
		out.Products[i].Quantity = 0
		out.Products[i].IsCompleted = false
		out.Products[i].CompletedAt = nil
	}
	return out
}

func mutateProduct(l List, productID string, fn func(*Product)) (List, bool) {
	out := l.Clone()
	for i := range out.Products {
		if out.Products[i].ID == productID {
			fn(&out.Products[i])
			return out, true
		}
	}
	return l, false
}
