package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	now := time.Date(2025, 7, 15, 9, 30, 0, 0, time.UTC)

	t.Run("NameImageCommentColumns", func(t *testing.T) {
		list, err := ParseCSV("Snacks\nChips,,Spicy\nSoda,http://img,", now)
		require.NoError(t, err)

		require.Equal(t, "Snacks", list.Name)
		require.Equal(t, now, list.CreatedAt)
		require.Equal(t, "Imported from CSV on 2025-07-15", list.Description)
		require.Len(t, list.Products, 2)

		chips := list.Products[0]
		require.Equal(t, "Chips", chips.Name)
		require.Equal(t, "", chips.ImageURL)
		require.Equal(t, "Spicy", chips.Comment)
		require.Equal(t, 0, chips.Quantity)
		require.False(t, chips.IsCompleted)
		require.False(t, chips.IsOutOfStock)
		require.Nil(t, chips.CompletedAt)

		soda := list.Products[1]
		require.Equal(t, "Soda", soda.Name)
		require.Equal(t, "http://img", soda.ImageURL)
		require.Equal(t, "", soda.Comment)
	})

	t.Run("EmptyContentFails", func(t *testing.T) {
		_, err := ParseCSV("", now)
		require.ErrorIs(t, err, ErrEmptyCSV)
		require.EqualError(t, err, "CSV content is empty")
	})

	t.Run("AllBlankLinesFail", func(t *testing.T) {
		_, err := ParseCSV("\n   \n\t\n  \n", now)
		require.ErrorIs(t, err, ErrEmptyCSV)
	})

	t.Run("BlankLinesAreDropped", func(t *testing.T) {
		list, err := ParseCSV("Pantry\n\nRice\n   \nBeans\n", now)
		require.NoError(t, err)
		require.Len(t, list.Products, 2)
		require.Equal(t, "Rice", list.Products[0].Name)
		require.Equal(t, "Beans", list.Products[1].Name)
	})

	t.Run("EmptyListNameGetsPlaceholder", func(t *testing.T) {
		list, err := ParseCSV(",first\nRice", now)
		require.NoError(t, err)
		require.Equal(t, "Imported List", list.Name)
	})

	t.Run("EmptyProductNamesAreAutoNumbered", func(t *testing.T) {
		list, err := ParseCSV("Pantry\n,http://img/1,\nRice\n,,late", now)
		require.NoError(t, err)
		require.Len(t, list.Products, 3)
		require.Equal(t, "Product 1", list.Products[0].Name)
		require.Equal(t, "Rice", list.Products[1].Name)
		require.Equal(t, "Product 3", list.Products[2].Name)
		require.Equal(t, "late", list.Products[2].Comment)
	})

	t.Run("ExtraFieldsAreIgnored", func(t *testing.T) {
		list, err := ParseCSV("Pantry\nRice,http://img,note,ignored,also ignored", now)
		require.NoError(t, err)
		require.Equal(t, "Rice", list.Products[0].Name)
		require.Equal(t, "note", list.Products[0].Comment)
	})

	t.Run("FieldsAreTrimmed", func(t *testing.T) {
		list, err := ParseCSV("  Pantry , desc\n  Rice , http://img ,  jasmine ", now)
		require.NoError(t, err)
		require.Equal(t, "Pantry", list.Name)
		require.Equal(t, "Rice", list.Products[0].Name)
		require.Equal(t, "http://img", list.Products[0].ImageURL)
		require.Equal(t, "jasmine", list.Products[0].Comment)
	})

	t.Run("OnlyHeaderLineYieldsEmptyList", func(t *testing.T) {
		list, err := ParseCSV("Just A Name", now)
		require.NoError(t, err)
		require.Equal(t, "Just A Name", list.Name)
		require.Empty(t, list.Products)
	})
}
