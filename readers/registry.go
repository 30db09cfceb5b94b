package readers

import (
	"context"
	"errors"
	"sync"

	"github.com/AntonStoeckl/lending-tracker-go/lending"
)

// ErrEmptyReaderID is returned when a reader without identifier should be registered.
var ErrEmptyReaderID = errors.New("reader id must not be empty")

type readerStatus struct {
	active bool
}

// Registry is an in-memory reader directory. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	readers map[lending.ReaderIDString]readerStatus
}

// NewRegistry creates a Registry with the given readers already registered and active.
// Empty identifiers are skipped.
func NewRegistry(activeReaderIDs ...lending.ReaderIDString) *Registry {
	registry := &Registry{
		readers: make(map[lending.ReaderIDString]readerStatus, len(activeReaderIDs)),
	}

	for _, readerID := range activeReaderIDs {
		if readerID != "" {
			registry.readers[readerID] = readerStatus{active: true}
		}
	}

	return registry
}

// Register makes the reader active. Registering an already active reader is a no-op,
// registering a reader with a cancelled contract re-activates it.
func (r *Registry) Register(readerID lending.ReaderIDString) error {
	if readerID == "" {
		return ErrEmptyReaderID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.readers[readerID] = readerStatus{active: true}

	return nil
}

// CancelContract deactivates the reader. It reports false if the reader was never registered.
func (r *Registry) CancelContract(readerID lending.ReaderIDString) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, known := r.readers[readerID]; !known {
		return false
	}

	r.readers[readerID] = readerStatus{active: false}

	return true
}

// IsUserActive implements lending.UserStatusOracle. Unknown readers are not active.
func (r *Registry) IsUserActive(_ context.Context, readerID lending.ReaderIDString) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.readers[readerID].active
}

// ActiveCount returns the number of currently active readers.
func (r *Registry) ActiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, status := range r.readers {
		if status.active {
			count++
		}
	}

	return count
}

var _ lending.UserStatusOracle = (*Registry)(nil)
