package testutil

import (
	"context"

	"github.com/retailcore/pospricing/internal/types"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	ctx = types.SetDeviceID(ctx, types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DEVICE))
	return ctx
}
