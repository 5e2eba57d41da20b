// Package blob defines the key/value persistence port the ledger is stored
// through. A value is an opaque string; the ledger package owns the encoding.
package blob

import "context"

type (
	// Store is a string-valued key/value store. Get reports ok=false for an
	// absent key rather than returning an error. Set must not return before
	// the value is durable for the backend in question.
	Store interface {
		Get(ctx context.Context, key string) (value string, ok bool, err error)
		Set(ctx context.Context, key, value string) error
		Remove(ctx context.Context, key string) error
	}

	// Closer is implemented by stores holding external resources.
	Closer interface {
		Close() error
	}
)
