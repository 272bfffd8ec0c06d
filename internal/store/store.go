package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mmcdole/todos/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketTodos = []byte("todos")

// TodoStore implements domain.TodoRepository on top of BoltDB.
// Items are keyed by their big-endian id so a cursor walk returns them in
// creation order.
type TodoStore struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path
func Open(path string) (*TodoStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketTodos)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &TodoStore{db: db}, nil
}

func (s *TodoStore) Close() error {
	return s.db.Close()
}

// List returns the todos owned by userID in creation order
func (s *TodoStore) List(ctx context.Context, userID int) ([]domain.Item, error) {
	items := []domain.Item{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTodos).ForEach(func(k, v []byte) error {
			var item domain.Item
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("corrupt todo %d: %w", btoi(k), err)
			}
			if item.UserID == userID {
				items = append(items, item)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Create stores a new todo under the next sequence number.
// Sequences start at 1, so domain.PendingID is never assigned.
func (s *TodoStore) Create(ctx context.Context, draft domain.Draft) (domain.Item, error) {
	var item domain.Item
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTodos)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		item = domain.Item{
			ID:        int(seq),
			UserID:    draft.UserID,
			Title:     draft.Title,
			Completed: draft.Completed,
		}
		return put(b, item)
	})
	if err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

// Update applies patch to the todo with the given id
func (s *TodoStore) Update(ctx context.Context, id int, patch domain.Patch) (domain.Item, error) {
	var item domain.Item
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTodos)
		v := b.Get(itob(id))
		if v == nil {
			return domain.ErrItemNotFound
		}
		if err := json.Unmarshal(v, &item); err != nil {
			return fmt.Errorf("corrupt todo %d: %w", id, err)
		}
		item = patch.Apply(item)
		return put(b, item)
	})
	if err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

// Delete removes the todo with the given id
func (s *TodoStore) Delete(ctx context.Context, id int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTodos)
		key := itob(id)
		if b.Get(key) == nil {
			return domain.ErrItemNotFound
		}
		return b.Delete(key)
	})
}

func put(b *bolt.Bucket, item domain.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return b.Put(itob(item.ID), data)
}

func itob(id int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

func btoi(key []byte) int {
	return int(binary.BigEndian.Uint64(key))
}
