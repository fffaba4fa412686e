package customer

import (
	"context"
)

// Repository resolves customer metadata for the pricing engine. Unknown
// or empty customer codes resolve to (nil, nil), never an error.
type Repository interface {
	ResolveMeta(ctx context.Context, customerCode string) (*Meta, error)
}
