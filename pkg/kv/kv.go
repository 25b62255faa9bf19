package kv

// Store defines the interface for a key-value store.
// Implementations of this interface can be swapped out or wrapped,
// allowing callers to layer synchronization or instrumentation on top
// of a plain in-memory backend.
//
// None of the operations can fail: a missing key is a normal outcome
// reported by Get, not an error.
type Store interface {
	// Get retrieves the value associated with the given key.
	// Returns the value and true if the key exists, or empty string and false if not.
	Get(key string) (string, bool)

	// Set stores a key-value pair, replacing any previous value for key.
	Set(key, value string)

	// Remove deletes key from the store. Removing a missing key is a no-op.
	Remove(key string)
}

// Lener is implemented by stores that can report how many keys they hold.
type Lener interface {
	Len() int
}
