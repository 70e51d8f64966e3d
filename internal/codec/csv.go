package codec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gulu-app/restock-service/internal/domain"
)

// ErrEmptyCSV is returned when the input contains no non-blank lines.
var ErrEmptyCSV = errors.New("CSV content is empty")

// ParseCSV builds a list from comma-delimited text. The first field of the
// first line is the list name; every following line is a product row of
// name, image URL, comment. Missing fields are empty, extra fields are
// dropped. Fields are split naively on commas: a comma inside a field is
// not escapable in this format.
func ParseCSV(content string, now time.Time) (domain.List, error) {
	lines := make([]string, 0)
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return domain.List{}, ErrEmptyCSV
	}

	listName := strings.TrimSpace(strings.Split(lines[0], ",")[0])
	if listName == "" {
		listName = defaultListName
	}

	products := make([]domain.Product, 0, len(lines)-1)
	for _, line := range lines[1:] {
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		name := field(parts, 0)
		if name == "" {
			name = fmt.Sprintf("Product %d", len(products)+1)
		}

		products = append(products, domain.Product{
			ID:       uuid.NewString(),
			Name:     name,
			Quantity: 0,
			ImageURL: field(parts, 1),
			Comment:  field(parts, 2),
		})
	}

	return domain.List{
		ID:          uuid.NewString(),
		Name:        listName,
		Description: "Imported from CSV on " + now.Format("2006-01-02"),
		CreatedAt:   now,
		Products:    products,
	}, nil
}

func field(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}
