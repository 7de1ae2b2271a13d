package store

import "fmt"

const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Open returns the store implementation registered under backend.
func Open(backend string, opts ...Option) (Store, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemoryStore(opts...), nil
	case BackendBadger:
		return NewBadgerStore(opts...)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
