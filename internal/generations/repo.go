package generations

import "context"

// Repo defines persistence for generation records. Records are insert-only.
type Repo interface {
	Create(ctx context.Context, gen Generation) error
	GetByID(ctx context.Context, id string) (Generation, error)
	ListByUser(ctx context.Context, userID string) ([]Generation, error)
	DeleteByUser(ctx context.Context, userID string) error
}
