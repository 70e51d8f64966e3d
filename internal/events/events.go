package events

import (
	"time"
)

// Change events published after every successful store mutation. The
// presentation layer subscribes to re-read state; there is no broker, the
// whole system is in-process.

type Event interface {
	EventName() string
}

type ListCreated struct {
	ListID    string    `json:"list_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

func (ListCreated) EventName() string { return "list.created" }

type ListDeleted struct {
	ListID    string    `json:"list_id"`
	Timestamp time.Time `json:"timestamp"`
}

func (ListDeleted) EventName() string { return "list.deleted" }

// ListUpdated covers every product-level mutation inside a list.
type ListUpdated struct {
	ListID    string    `json:"list_id"`
	ProductID string    `json:"product_id,omitempty"`
	Operation string    `json:"operation"`
	Timestamp time.Time `json:"timestamp"`
}

func (ListUpdated) EventName() string { return "list.updated" }

// ListImported is published when a list enters the store through a share
// code or a CSV import.
type ListImported struct {
	ListID    string    `json:"list_id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"` // "share_code" or "csv"
	Timestamp time.Time `json:"timestamp"`
}

func (ListImported) EventName() string { return "list.imported" }
