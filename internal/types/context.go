package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxDeviceID  ContextKey = "ctx_device_id"
	CtxBranchID  ContextKey = "ctx_branch_id"
	CtxUserID    ContextKey = "ctx_user_id"

	// Default values
	DefaultUserID = "00000000-0000-0000-0000-000000000000"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetDeviceID(ctx context.Context) string {
	if deviceID, ok := ctx.Value(CtxDeviceID).(string); ok {
		return deviceID
	}
	return ""
}

// GetBranchID returns the branch the calling device is registered to.
// Callers may still override it per request.
func GetBranchID(ctx context.Context) string {
	if branchID, ok := ctx.Value(CtxBranchID).(string); ok {
		return branchID
	}
	return ""
}

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

// SetDeviceID sets the device ID in the context
func SetDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, CtxDeviceID, deviceID)
}

// SetBranchID sets the branch ID in the context
func SetBranchID(ctx context.Context, branchID string) context.Context {
	return context.WithValue(ctx, CtxBranchID, branchID)
}
