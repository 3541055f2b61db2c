package mystore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type record struct {
	UID       string
	Name      string
	Amount    int
	Active    bool
	CreatedAt time.Time
}

var (
	rec1 = record{UID: "123", Name: "copper-rod", Amount: 250, Active: true, CreatedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	rec2 = record{UID: "456", Name: "brass-sheet", Amount: 100, Active: false, CreatedAt: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)}
)

func TestStore(t *testing.T) {
	c := context.TODO()
	store, cleanup, err := NewInMemoryStore[record](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get not found", func(t *testing.T) {
		_, found, err := store.Get(c, rec1.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Put", func(t *testing.T) {
		err = store.Put(c, rec1.UID, rec1)
		assert.NoError(t, err)
		err = store.Put(c, rec2.UID, rec2)
		assert.NoError(t, err)
	})

	t.Run("Get found", func(t *testing.T) {
		got, found, err := store.Get(c, rec1.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, rec1, got)
	})

	t.Run("List", func(t *testing.T) {
		all, err := store.List(c)
		assert.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("Query on equality", func(t *testing.T) {
		got, err := store.Query(c, []Filter{{Field: "Active", Compare: "=", Value: true}}, "")
		assert.NoError(t, err)
		assert.Equal(t, []record{rec1}, got)
	})

	t.Run("Query on numeric compare with ordering", func(t *testing.T) {
		got, err := store.Query(c, []Filter{{Field: "Amount", Compare: ">=", Value: 100}}, "CreatedAt")
		assert.NoError(t, err)
		assert.Equal(t, []record{rec1, rec2}, got)
	})

	t.Run("Query on unknown field matches nothing", func(t *testing.T) {
		got, err := store.Query(c, []Filter{{Field: "Bogus", Compare: "=", Value: "x"}}, "")
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Delete(c, rec2.UID)
		assert.NoError(t, err)
		_, found, err := store.Get(c, rec2.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Rollback on error", func(t *testing.T) {
		err := store.RunInTransaction(c, func(c context.Context) error {
			return assert.AnError
		})
		assert.Error(t, err)
	})
}
