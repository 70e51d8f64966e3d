package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// View projections are pure derivations over current state plus transient
// display parameters. They never reorder or mutate stored data.

type ListSortKey string

const (
	ListSortName     ListSortKey = "name"
	ListSortDate     ListSortKey = "date"
	ListSortQuantity ListSortKey = "quantity"
)

type ProductSortKey string

const (
	ProductSortStatus   ProductSortKey = "status"
	ProductSortName     ProductSortKey = "name"
	ProductSortQuantity ProductSortKey = "quantity"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseListSortKey accepts name, date, quantity; empty defaults to date.
func ParseListSortKey(s string) (ListSortKey, error) {
	switch ListSortKey(s) {
	case "":
		return ListSortDate, nil
	case ListSortName, ListSortDate, ListSortQuantity:
		return ListSortKey(s), nil
	default:
		return "", fmt.Errorf("invalid sort key: %s (valid keys: name, date, quantity)", s)
	}
}

// ParseProductSortKey accepts status, name, quantity; empty defaults to status.
func ParseProductSortKey(s string) (ProductSortKey, error) {
	switch ProductSortKey(s) {
	case "":
		return ProductSortStatus, nil
	case ProductSortStatus, ProductSortName, ProductSortQuantity:
		return ProductSortKey(s), nil
	default:
		return "", fmt.Errorf("invalid sort key: %s (valid keys: status, name, quantity)", s)
	}
}

// ParseSortDirection accepts asc or desc; empty falls back to def.
func ParseSortDirection(s string, def SortDirection) (SortDirection, error) {
	switch SortDirection(s) {
	case "":
		return def, nil
	case SortAsc, SortDesc:
		return SortDirection(s), nil
	default:
		return "", fmt.Errorf("invalid sort direction: %s (valid: asc, desc)", s)
	}
}

// FilterSortLists keeps lists whose name or description contains the search
// text (case-insensitive) and orders them by the given key and direction.
func FilterSortLists(lists []List, search string, key ListSortKey, dir SortDirection) []List {
	q := strings.ToLower(search)
	out := make([]List, 0, len(lists))
	for _, l := range lists {
		if q == "" ||
			strings.Contains(strings.ToLower(l.Name), q) ||
			strings.Contains(strings.ToLower(l.Description), q) {
			out = append(out, l)
		}
	}

	col := collate.New(language.Und)
	sort.SliceStable(out, func(i, j int) bool {
		var cmp int
		switch key {
		case ListSortName:
			cmp = col.CompareString(out[i].Name, out[j].Name)
		case ListSortQuantity:
			cmp = out[i].ProductCount() - out[j].ProductCount()
		default: // date
			cmp = compareTimes(out[i].CreatedAt, out[j].CreatedAt)
		}
		if dir == SortDesc {
			cmp = -cmp
		}
		return cmp < 0
	})
	return out
}

// ProductCount is the quantity sort key for the list view.
func (l List) ProductCount() int {
	return len(l.Products)
}

// FilterSortProducts keeps products whose name contains the search text
// (case-insensitive) and orders them by the given key and direction.
// Equal primary keys always fall back to ascending name so the order is
// deterministic.
func FilterSortProducts(products []Product, search string, key ProductSortKey, dir SortDirection) []Product {
	q := strings.ToLower(search)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}

	col := collate.New(language.Und)
	sort.SliceStable(out, func(i, j int) bool {
		var cmp int
		switch key {
		case ProductSortName:
			cmp = col.CompareString(out[i].Name, out[j].Name)
		case ProductSortQuantity:
			cmp = out[i].Quantity - out[j].Quantity
		default: // status: incomplete before complete when ascending
			cmp = statusRank(out[i]) - statusRank(out[j])
		}
		if dir == SortDesc {
			cmp = -cmp
		}
		if cmp == 0 {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		}
		return cmp < 0
	})
	return out
}

// PartitionByStock splits a sorted product view into in-stock and
// out-of-stock groups, preserving the relative order of each.
func PartitionByStock(products []Product) (inStock, outOfStock []Product) {
	inStock = make([]Product, 0, len(products))
	outOfStock = make([]Product, 0)
	for _, p := range products {
		if p.IsOutOfStock {
			outOfStock = append(outOfStock, p)
		} else {
			inStock = append(inStock, p)
		}
	}
	return inStock, outOfStock
}

func statusRank(p Product) int {
	if p.IsCompleted {
		return 1
	}
	return 0
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
