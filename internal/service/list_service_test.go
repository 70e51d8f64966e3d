package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gulu-app/restock-service/internal/codec"
	"github.com/gulu-app/restock-service/internal/events"
	"github.com/gulu-app/restock-service/internal/repository"
)

type capturingPublisher struct {
	published []events.Event
}

func (p *capturingPublisher) Publish(e events.Event) {
	p.published = append(p.published, e)
}

func newTestService(t *testing.T) (*ListService, *capturingPublisher, *repository.ListRepository) {
	t.Helper()
	db, err := repository.OpenDB(filepath.Join(t.TempDir(), "restock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewListRepository(db)
	pub := &capturingPublisher{}
	svc := NewListService(context.Background(), repo, pub, zap.NewNop(), false)
	return svc, pub, repo
}

func TestCreateList(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, pub, _ := newTestService(t)

		list, err := svc.CreateList(ctx, "Bar Restock", "spirits and mixers")
		require.NoError(t, err)
		require.NotEmpty(t, list.ID)
		require.Equal(t, "Bar Restock", list.Name)
		require.Empty(t, list.Products)
		require.WithinDuration(t, time.Now(), list.CreatedAt, time.Minute)

		require.Len(t, pub.published, 1)
		created, ok := pub.published[0].(events.ListCreated)
		require.True(t, ok)
		require.Equal(t, list.ID, created.ListID)
	})

	t.Run("WhitespaceNameRejected", func(t *testing.T) {
		svc, pub, _ := newTestService(t)

		_, err := svc.CreateList(ctx, "   ", "desc")
		require.ErrorIs(t, err, ErrListNameRequired)
		require.Empty(t, svc.Lists())
		require.Empty(t, pub.published)
	})

	t.Run("WriteThroughVisibleAfterReload", func(t *testing.T) {
		svc, _, repo := newTestService(t)

		list, err := svc.CreateList(ctx, "Kitchen", "")
		require.NoError(t, err)

		reloaded := NewListService(ctx, repo, &capturingPublisher{}, zap.NewNop(), false)
		got, err := reloaded.GetList(list.ID)
		require.NoError(t, err)
		require.Equal(t, "Kitchen", got.Name)
	})
}

func TestDeleteList(t *testing.T) {
	ctx := context.Background()

	t.Run("RemovesAndPersists", func(t *testing.T) {
		svc, _, repo := newTestService(t)
		list, err := svc.CreateList(ctx, "Kitchen", "")
		require.NoError(t, err)

		require.NoError(t, svc.DeleteList(ctx, list.ID))
		_, err = svc.GetList(list.ID)
		require.ErrorIs(t, err, ErrListNotFound)

		persisted, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		require.Empty(t, persisted)
	})

	t.Run("UnknownIDIsNoOp", func(t *testing.T) {
		svc, pub, _ := newTestService(t)
		require.NoError(t, svc.DeleteList(ctx, "missing"))
		require.Empty(t, pub.published)
	})
}

func TestProductLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	list, err := svc.CreateList(ctx, "Bar", "")
	require.NoError(t, err)

	list, err = svc.AddProduct(ctx, list.ID, "Limes", "", "organic")
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	productID := list.Products[0].ID

	t.Run("EmptyProductNameRejected", func(t *testing.T) {
		_, err := svc.AddProduct(ctx, list.ID, "  ", "", "")
		require.ErrorIs(t, err, ErrProductNameRequired)
	})

	t.Run("UnknownListRejected", func(t *testing.T) {
		_, err := svc.AddProduct(ctx, "missing", "Limes", "", "")
		require.ErrorIs(t, err, ErrListNotFound)
	})

	t.Run("AdjustClampsAtZero", func(t *testing.T) {
		out, err := svc.AdjustQuantity(ctx, list.ID, productID, 5)
		require.NoError(t, err)
		require.Equal(t, 5, out.Products[0].Quantity)

		out, err = svc.AdjustQuantity(ctx, list.ID, productID, -1000)
		require.NoError(t, err)
		require.Equal(t, 0, out.Products[0].Quantity)
	})

	t.Run("ToggleCompletionStampsTimestamp", func(t *testing.T) {
		out, err := svc.ToggleCompletion(ctx, list.ID, productID)
		require.NoError(t, err)
		require.True(t, out.Products[0].IsCompleted)
		require.NotNil(t, out.Products[0].CompletedAt)

		out, err = svc.ToggleCompletion(ctx, list.ID, productID)
		require.NoError(t, err)
		require.False(t, out.Products[0].IsCompleted)
		require.Nil(t, out.Products[0].CompletedAt)
	})

	t.Run("UnknownProductRejected", func(t *testing.T) {
		_, err := svc.ToggleCompletion(ctx, list.ID, "missing")
		require.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("ResetAllPreservesOutOfStock", func(t *testing.T) {
		out, err := svc.AddProduct(ctx, list.ID, "Gin", "", "")
		require.NoError(t, err)
		ginID := out.Products[1].ID

		_, err = svc.ToggleOutOfStock(ctx, list.ID, ginID)
		require.NoError(t, err)
		_, err = svc.AdjustQuantity(ctx, list.ID, ginID, 7)
		require.NoError(t, err)

		out, err = svc.ResetAll(ctx, list.ID)
		require.NoError(t, err)
		for _, p := range out.Products {
			require.Equal(t, 0, p.Quantity)
			require.False(t, p.IsCompleted)
			require.Nil(t, p.CompletedAt)
		}
		require.True(t, out.Products[1].IsOutOfStock)
	})

	t.Run("DeleteProduct", func(t *testing.T) {
		out, err := svc.DeleteProduct(ctx, list.ID, productID)
		require.NoError(t, err)
		for _, p := range out.Products {
			require.NotEqual(t, productID, p.ID)
		}
	})
}

func TestShareCodeImportExport(t *testing.T) {
	ctx := context.Background()

	t.Run("ExportThenImportCopiesTemplate", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		list, err := svc.CreateList(ctx, "Bar", "weekend")
		require.NoError(t, err)
		_, err = svc.AddProduct(ctx, list.ID, "Limes", "http://img", "organic")
		require.NoError(t, err)

		code, err := svc.ShareCode(list.ID)
		require.NoError(t, err)

		imported, err := svc.ImportShareCode(ctx, code)
		require.NoError(t, err)
		require.NotEqual(t, list.ID, imported.ID)
		require.Equal(t, "Bar", imported.Name)
		require.Equal(t, "weekend", imported.Description)
		require.Len(t, imported.Products, 1)
		require.Equal(t, "Limes", imported.Products[0].Name)

		require.Len(t, svc.Lists(), 2)
	})

	t.Run("InvalidCodeLeavesStoreUnchanged", func(t *testing.T) {
		svc, pub, _ := newTestService(t)

		_, err := svc.ImportShareCode(ctx, "not-valid-base64!!")
		require.ErrorIs(t, err, codec.ErrInvalidShareCode)
		require.Empty(t, svc.Lists())
		require.Empty(t, pub.published)
	})

	t.Run("ShareUnknownListFails", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.ShareCode("missing")
		require.ErrorIs(t, err, ErrListNotFound)
	})
}

func TestImportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("AddsParsedList", func(t *testing.T) {
		svc, pub, _ := newTestService(t)

		list, err := svc.ImportCSV(ctx, "Snacks\nChips,,Spicy\nSoda,http://img,")
		require.NoError(t, err)
		require.Equal(t, "Snacks", list.Name)
		require.Len(t, list.Products, 2)

		imported, ok := pub.published[0].(events.ListImported)
		require.True(t, ok)
		require.Equal(t, "csv", imported.Source)
	})

	t.Run("EmptyContentLeavesStoreUnchanged", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.ImportCSV(ctx, "\n \n")
		require.ErrorIs(t, err, codec.ErrEmptyCSV)
		require.Empty(t, svc.Lists())
	})
}

func TestSeedData(t *testing.T) {
	db, err := repository.OpenDB(filepath.Join(t.TempDir(), "restock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := repository.NewListRepository(db)

	svc := NewListService(context.Background(), repo, &capturingPublisher{}, zap.NewNop(), true)
	lists := svc.Lists()
	require.Len(t, lists, 1)
	require.Equal(t, "Morning Fresh Produce", lists[0].Name)
	require.Len(t, lists[0].Products, 3)

	// seed is persisted, so a second startup does not duplicate it
	again := NewListService(context.Background(), repo, &capturingPublisher{}, zap.NewNop(), true)
	require.Len(t, again.Lists(), 1)
	require.Equal(t, lists[0].ID, again.Lists()[0].ID)
}
