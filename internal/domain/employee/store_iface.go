package employee

import "context"

type StoreAPI interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, status string) ([]Employee, error)
	Update(ctx context.Context, id string, patch Input) (Employee, error)
	SetStatus(ctx context.Context, id, status string) (Employee, error)
	Delete(ctx context.Context, id string) error
}
