package todo

import "context"

// Repository defines the contract for todo data storage.
type Repository interface {
	// List returns every todo in insertion order.
	List(ctx context.Context) ([]Todo, error)
	// Create stores t and sets t.ID to the generated identifier.
	Create(ctx context.Context, t *Todo) error
	// Save writes t under t.ID, inserting it when the id is unknown.
	Save(ctx context.Context, t *Todo) error
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
}
