package gateway

import "context"

// IBackendClient is what the relay services depend on; Client is the real
// implementation.
type IBackendClient interface {
	Post(ctx context.Context, path string, payload interface{}) (int, []byte, error)
}
