package item

import (
	"context"
)

// Repository resolves item metadata for the pricing engine. It is an
// external collaborator: unknown or empty item codes resolve to
// (nil, nil), never an error, so a missing item can fail open upstream.
type Repository interface {
	ResolveMeta(ctx context.Context, itemCode string) (*Meta, error)
}
