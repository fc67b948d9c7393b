package repository

import "context"

// CartKey is the snapshot key for the default browsing session.
const CartKey = "fashion-cart"

// SessionCartKey returns the snapshot key for a named session.
func SessionCartKey(sessionID string) string {
	return CartKey + ":" + sessionID
}

// KeyValueStore is the persistence port used by the cart store. Values are
// opaque strings; the cart store owns the encoding.
type KeyValueStore interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent, in which case err is nil.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
