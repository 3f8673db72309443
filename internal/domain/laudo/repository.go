package laudo

import (
	"context"
)

// Repository has no update or delete: a Laudo is immutable once written.
type Repository interface {
	FetchLaudos(ctx context.Context, f Filter) (Laudos, error)
	CountLaudos(ctx context.Context, f Filter) (int64, error)
	CreateLaudo(ctx context.Context, req New) (*Laudo, error)
}
