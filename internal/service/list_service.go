package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gulu-app/restock-service/internal/codec"
	"github.com/gulu-app/restock-service/internal/domain"
	"github.com/gulu-app/restock-service/internal/events"
	"github.com/gulu-app/restock-service/internal/repository"
)

var (
	ErrListNotFound        = errors.New("list not found")
	ErrListNameRequired    = errors.New("list name is required")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNameRequired = errors.New("product name is required")
)

type EventPublisher interface {
	Publish(events.Event)
}

// ListService owns the in-memory list collection and writes the whole
// collection back to the repository after every mutation. The mutex keeps
// each mutation+persist atomic; the domain model itself is single-writer.
type ListService struct {
	mu        sync.RWMutex
	lists     map[string]domain.List
	order     []string // insertion order of list IDs
	repo      *repository.ListRepository
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewListService loads persisted state. Missing or unreadable state degrades
// to seed data (when seed is true) or an empty collection; startup never
// fails on a bad slot.
func NewListService(ctx context.Context, repo *repository.ListRepository, publisher EventPublisher, logger *zap.Logger, seed bool) *ListService {
	s := &ListService{
		lists:     make(map[string]domain.List),
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}

	lists, err := repo.LoadAll(ctx)
	if err != nil {
		logger.Warn("Failed to load persisted lists, starting fresh", zap.Error(err))
		lists = nil
	}
	if lists == nil && seed {
		lists = seedLists(s.now())
		logger.Info("No persisted lists found, seeding default list")
	}

	for _, l := range lists {
		s.lists[l.ID] = l
		s.order = append(s.order, l.ID)
	}

	if err := s.persistLocked(ctx); err != nil {
		logger.Error("Failed to persist initial state", zap.Error(err))
	}
	return s
}

// Lists returns the collection in insertion order. Callers get copies.
func (s *ListService) Lists() []domain.List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *ListService) GetList(listID string) (*domain.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lists[listID]
	if !ok {
		return nil, ErrListNotFound
	}
	c := l.Clone()
	return &c, nil
}

func (s *ListService) CreateList(ctx context.Context, name, description string) (*domain.List, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrListNameRequired
	}

	list := domain.List{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   s.now(),
		Products:    []domain.Product{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[list.ID] = list
	s.order = append(s.order, list.ID)
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}

	s.publisher.Publish(events.ListCreated{
		ListID:    list.ID,
		Name:      list.Name,
		Timestamp: s.now(),
	})
	s.logger.Info("List created",
		zap.String("list_id", list.ID),
		zap.String("name", list.Name))

	c := list.Clone()
	return &c, nil
}

// DeleteList removes a list if present; deleting an unknown id is a no-op.
func (s *ListService) DeleteList(ctx context.Context, listID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lists[listID]; !ok {
		return nil
	}
	delete(s.lists, listID)
	for i, id := range s.order {
		if id == listID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if err := s.persistLocked(ctx); err != nil {
		return err
	}

	s.publisher.Publish(events.ListDeleted{
		ListID:    listID,
		Timestamp: s.now(),
	})
	s.logger.Info("List deleted", zap.String("list_id", listID))
	return nil
}

func (s *ListService) AddProduct(ctx context.Context, listID, name, imageURL, comment string) (*domain.List, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrProductNameRequired
	}
	return s.applyProductOp(ctx, listID, "", "product.added", func(l domain.List) (domain.List, bool) {
		return domain.AddProduct(l, name, imageURL, comment)
	})
}

func (s *ListService) UpdateProduct(ctx context.Context, listID, productID string, upd domain.ProductUpdate) (*domain.List, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, ErrProductNameRequired
	}
	return s.applyProductOp(ctx, listID, productID, "product.updated", func(l domain.List) (domain.List, bool) {
		return domain.UpdateProduct(l, productID, upd)
	})
}

func (s *ListService) DeleteProduct(ctx context.Context, listID, productID string) (*domain.List, error) {
	return s.applyProductOp(ctx, listID, productID, "product.deleted", func(l domain.List) (domain.List, bool) {
		return domain.DeleteProduct(l, productID)
	})
}

func (s *ListService) ToggleCompletion(ctx context.Context, listID, productID string) (*domain.List, error) {
	return s.applyProductOp(ctx, listID, productID, "product.completion_toggled", func(l domain.List) (domain.List, bool) {
		return domain.ToggleCompletion(l, productID, s.now())
	})
}

func (s *ListService) ToggleOutOfStock(ctx context.Context, listID, productID string) (*domain.List, error) {
	return s.applyProductOp(ctx, listID, productID, "product.out_of_stock_toggled", func(l domain.List) (domain.List, bool) {
		return domain.ToggleOutOfStock(l, productID)
	})
}

func (s *ListService) AdjustQuantity(ctx context.Context, listID, productID string, delta int) (*domain.List, error) {
	return s.applyProductOp(ctx, listID, productID, "product.quantity_adjusted", func(l domain.List) (domain.List, bool) {
		return domain.AdjustQuantity(l, productID, delta)
	})
}

func (s *ListService) ResetQuantity(ctx context.Context, listID, productID string) (*domain.List, error) {
	return s.applyProductOp(ctx, listID, productID, "product.quantity_reset", func(l domain.List) (domain.List, bool) {
		return domain.ResetQuantity(l, productID)
	})
}

// ResetAll zeroes quantities and clears completion on every product in the
// list; out-of-stock flags survive.
func (s *ListService) ResetAll(ctx context.Context, listID string) (*domain.List, error) {
	return s.applyProductOp(ctx, listID, "", "list.reset", func(l domain.List) (domain.List, bool) {
		return domain.ResetAll(l), true
	})
}

// ShareCode encodes a list into its copy-paste share code.
func (s *ListService) ShareCode(listID string) (string, error) {
	s.mu.RLock()
	l, ok := s.lists[listID]
	s.mu.RUnlock()
	if !ok {
		return "", ErrListNotFound
	}
	return codec.EncodeShareCode(l)
}

// ImportShareCode decodes a share code into a fresh list and adds it to the
// store. A failed decode leaves the store untouched.
func (s *ListService) ImportShareCode(ctx context.Context, code string) (*domain.List, error) {
	list, err := codec.DecodeShareCode(code, s.now())
	if err != nil {
		s.logger.Warn("Share code decode failed", zap.Error(err))
		return nil, err
	}
	return s.insertImported(ctx, list, "share_code")
}

// ImportCSV parses tabular text into a fresh list and adds it to the store.
// A failed parse leaves the store untouched.
func (s *ListService) ImportCSV(ctx context.Context, content string) (*domain.List, error) {
	list, err := codec.ParseCSV(content, s.now())
	if err != nil {
		s.logger.Warn("CSV parse failed", zap.Error(err))
		return nil, err
	}
	return s.insertImported(ctx, list, "csv")
}

func (s *ListService) insertImported(ctx context.Context, list domain.List, source string) (*domain.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[list.ID] = list
	s.order = append(s.order, list.ID)
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}

	s.publisher.Publish(events.ListImported{
		ListID:    list.ID,
		Name:      list.Name,
		Source:    source,
		Timestamp: s.now(),
	})
	s.logger.Info("List imported",
		zap.String("list_id", list.ID),
		zap.String("source", source),
		zap.Int("products", len(list.Products)))

	c := list.Clone()
	return &c, nil
}

func (s *ListService) applyProductOp(ctx context.Context, listID, productID, operation string, fn func(domain.List) (domain.List, bool)) (*domain.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lists[listID]
	if !ok {
		return nil, ErrListNotFound
	}
	updated, applied := fn(l)
	if !applied {
		return nil, ErrProductNotFound
	}

	s.lists[listID] = updated
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}

	s.publisher.Publish(events.ListUpdated{
		ListID:    listID,
		ProductID: productID,
		Operation: operation,
		Timestamp: s.now(),
	})

	c := updated.Clone()
	return &c, nil
}

// persistLocked writes the whole collection through to the repository.
// Callers must hold the write lock (or be the constructor).
func (s *ListService) persistLocked(ctx context.Context) error {
	if err := s.repo.SaveAll(ctx, s.snapshotLocked()); err != nil {
		s.logger.Error("Failed to persist lists", zap.Error(err))
		return err
	}
	return nil
}

func (s *ListService) snapshotLocked() []domain.List {
	out := make([]domain.List, 0, len(s.order))
	for _, id := range s.order {
		if l, ok := s.lists[id]; ok {
			out = append(out, l.Clone())
		}
	}
	return out
}

func seedLists(now time.Time) []domain.List {
	completed := now
	return []domain.List{{
		ID:          uuid.NewString(),
		Name:        "Morning Fresh Produce",
		Description: "Restock fresh fruits and vegetables for morning shift",
		CreatedAt:   now,
		Products: []domain.Product{
			{ID: uuid.NewString(), Name: "Bananas", Quantity: 20},
			{ID: uuid.NewString(), Name: "Apples", Quantity: 15, IsCompleted: true, CompletedAt: &completed},
			{ID: uuid.NewString(), Name: "Carrots", Quantity: 10},
		},
	}}
}
