package domain

import (
	"context"
)

// TodoRepository provides access to the remote todo collection.
// Implemented by the REST client; every method is a single network call.
type TodoRepository interface {
	// List returns all todos owned by userID
	List(ctx context.Context, userID int) ([]Item, error)

	// Create persists a draft and returns the stored item with its real ID
	Create(ctx context.Context, draft Draft) (Item, error)

	// Update sends exactly the fields set in patch and returns the updated item
	Update(ctx context.Context, id int, patch Patch) (Item, error)

	// Delete removes a todo
	Delete(ctx context.Context, id int) error
}
