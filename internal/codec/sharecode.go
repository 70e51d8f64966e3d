// Package codec converts lists to and from their two transfer formats:
// the compact base64 share code and the tabular CSV import format.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gulu-app/restock-service/internal/domain"
)

// ErrInvalidShareCode is returned when a share code cannot be decoded.
var ErrInvalidShareCode = errors.New("invalid share code")

const (
	defaultListName    = "Imported List"
	defaultProductName = "Unnamed Product"
)

// Short keys keep the encoded payload small; the code is meant for
// copy-paste transfer.
type shareList struct {
	Name        string         `json:"n"`
	Description string         `json:"d"`
	Products    []shareProduct `json:"p"`
}

type shareProduct struct {
	Name     string `json:"n"`
	Quantity int    `json:"q"`
	Comment  string `json:"c"`
	ImageURL string `json:"i"`
}

// EncodeShareCode produces the opaque share code for a list. The code
// carries template data only: names, quantities, comments and image URLs.
// IDs, completion and stock state are deliberately not encoded.
func EncodeShareCode(l domain.List) (string, error) {
	payload := shareList{
		Name:        l.Name,
		Description: l.Description,
		Products:    make([]shareProduct, 0, len(l.Products)),
	}
	for _, p := range l.Products {
		payload.Products = append(payload.Products, shareProduct{
			Name:     p.Name,
			Quantity: p.Quantity,
			Comment:  p.Comment,
			ImageURL: p.ImageURL,
		})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode share payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeShareCode rebuilds a list from a share code. Every decoded field is
// defaulted defensively; the input is untrusted and its shape is not assumed.
// Malformed input yields ErrInvalidShareCode, never a panic.
func DecodeShareCode(code string, now time.Time) (domain.List, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(code))
	if err != nil {
		return domain.List{}, fmt.Errorf("%w: %v", ErrInvalidShareCode, err)
	}

	var payload shareList
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.List{}, fmt.Errorf("%w: %v", ErrInvalidShareCode, err)
	}

	name := payload.Name
	if name == "" {
		name = defaultListName
	}

	list := domain.List{
		ID:          uuid.NewString(),
		Name:        name,
		Description: payload.Description,
		CreatedAt:   now,
		Products:    make([]domain.Product, 0, len(payload.Products)),
	}
	for _, p := range payload.Products {
		productName := p.Name
		if productName == "" {
			productName = defaultProductName
		}
		quantity := p.Quantity
		if quantity < 0 {
			quantity = 0
		}
		list.Products = append(list.Products, domain.Product{
			ID:       uuid.NewString(),
			Name:     productName,
			Quantity: quantity,
			ImageURL: p.ImageURL,
			Comment:  p.Comment,
		})
	}
	return list, nil
}
