package utils

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultRequestTimeout bounds a single read or write against the sheet endpoint
const DefaultRequestTimeout = 30 * time.Second

// FastRequestTimeout is for session and log queries that should be fast
const FastRequestTimeout = 10 * time.Second

// UploadTimeout is for image uploads which push the whole file as base64
const UploadTimeout = 90 * time.Second

var (
	requestTimeout atomic.Int64
	uploadTimeout  atomic.Int64
)

func init() {
	requestTimeout.Store(int64(DefaultRequestTimeout))
	uploadTimeout.Store(int64(UploadTimeout))
}

// SetSheetTimeouts widens the request and upload contexts to fit the sheet
// client's per-call timeout. Reads get room for every retry. The defaults
// above are the floor.
func SetSheetTimeouts(perCall time.Duration, retries int) {
	if retries < 0 {
		retries = 0
	}
	requestTimeout.Store(int64(max(DefaultRequestTimeout, perCall*time.Duration(retries+1))))
	uploadTimeout.Store(int64(max(UploadTimeout, perCall)))
}

// RequestTimeout is the timeout GetDefaultRequestContext applies.
func RequestTimeout() time.Duration {
	return time.Duration(requestTimeout.Load())
}

// GetRequestContext returns a context with timeout.
// If parent context is nil, it falls back to a background context.
func GetRequestContext(parentCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	return context.WithTimeout(parentCtx, timeout)
}

// GetDefaultRequestContext returns a context with default timeout
func GetDefaultRequestContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetRequestContext(parentCtx, RequestTimeout())
}

// GetFastRequestContext returns a context with fast timeout
func GetFastRequestContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetRequestContext(parentCtx, FastRequestTimeout)
}

// GetUploadContext returns a context with upload timeout
func GetUploadContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetRequestContext(parentCtx, time.Duration(uploadTimeout.Load()))
}
