package history_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/artuross/expression-calculator/internal/history"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(inorder string) history.Record {
	return history.Record{
		Inorder:   inorder,
		Preorder:  "+ 1 2",
		Postorder: "1 2 +",
		Binary:    "11",
		Decimal:   "3",
	}
}

func newStore(t *testing.T) (*history.FileStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".config", "history.json")

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	counter := 0
	newID := func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	}

	store := history.NewFileStore(path, history.WithClock(clock), history.WithIDGenerator(newID))

	return store, path
}

func TestFileStore_Insert(t *testing.T) {
	t.Run("assigns id and time", func(t *testing.T) {
		store, path := newStore(t)
		ctx := context.Background()

		record, err := store.Insert(ctx, newRecord("1 + 2"))
		require.NoError(t, err)

		assert.Equal(t, "id-1", record.ID)
		assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC), record.CreatedAt)

		_, err = os.Stat(path)
		assert.NoError(t, err, "history file must be created")
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		store, _ := newStore(t)
		ctx := context.Background()

		_, err := store.Insert(ctx, newRecord("1 + 2"))
		require.NoError(t, err)

		_, err = store.Insert(ctx, newRecord("1 + 2"))
		assert.ErrorIs(t, err, history.ErrDuplicateExpression)

		records, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("rejects incomplete records", func(t *testing.T) {
		store, _ := newStore(t)

		record := newRecord("1 + 2")
		record.Binary = ""

		_, err := store.Insert(context.Background(), record)
		assert.ErrorIs(t, err, history.ErrIncompleteRecord)
	})

	t.Run("default id is a uuid", func(t *testing.T) {
		store := history.NewFileStore(filepath.Join(t.TempDir(), "history.json"))

		record, err := store.Insert(context.Background(), newRecord("1 + 2"))
		require.NoError(t, err)

		_, err = uuid.Parse(record.ID)
		assert.NoError(t, err)
	})

	t.Run("concurrent inserts", func(t *testing.T) {
		store := history.NewFileStore(filepath.Join(t.TempDir(), "history.json"))
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()

				_, err := store.Insert(ctx, newRecord(fmt.Sprintf("%d + 1", i)))
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		records, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 20)
	})
}

func TestFileStore_List(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		store, _ := newStore(t)

		records, err := store.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("insertion order", func(t *testing.T) {
		store, path := newStore(t)
		ctx := context.Background()

		for _, inorder := range []string{"1 + 2", "3 * 4", "8 - 3 - 2"} {
			_, err := store.Insert(ctx, newRecord(inorder))
			require.NoError(t, err)
		}

		// a fresh store reads the same file
		reopened := history.NewFileStore(path)

		records, err := reopened.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, "1 + 2", records[0].Inorder)
		assert.Equal(t, "3 * 4", records[1].Inorder)
		assert.Equal(t, "8 - 3 - 2", records[2].Inorder)
	})

	t.Run("corrupted file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

		_, err := history.NewFileStore(path).List(context.Background())
		assert.Error(t, err)
	})
}

func TestFileStore_DeleteLatest(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		store, _ := newStore(t)

		record, err := store.DeleteLatest(context.Background())
		assert.ErrorIs(t, err, history.ErrEmpty)
		assert.Nil(t, record)
	})

	t.Run("removes last inserted", func(t *testing.T) {
		store, _ := newStore(t)
		ctx := context.Background()

		_, err := store.Insert(ctx, newRecord("1 + 2"))
		require.NoError(t, err)
		_, err = store.Insert(ctx, newRecord("3 * 4"))
		require.NoError(t, err)

		deleted, err := store.DeleteLatest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "3 * 4", deleted.Inorder)

		records, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "1 + 2", records[0].Inorder)

		// deleted key may be inserted again
		_, err = store.Insert(ctx, newRecord("3 * 4"))
		assert.NoError(t, err)
	})
}
