package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/lending-tracker-go/lending"
)

// UserStatusOracleStub is a lending.UserStatusOracle with a configurable answer per reader.
// Readers without a configured answer are reported as inactive.
type UserStatusOracleStub struct {
	active map[string]bool
	calls  []string
	mu     sync.Mutex
}

// NewUserStatusOracleStub creates a stub that reports the given readers as active.
func NewUserStatusOracleStub(activeReaderIDs ...string) *UserStatusOracleStub {
	stub := &UserStatusOracleStub{
		active: make(map[string]bool),
	}

	for _, readerID := range activeReaderIDs {
		stub.active[readerID] = true
	}

	return stub
}

// SetActive configures the answer for readerID.
func (s *UserStatusOracleStub) SetActive(readerID string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active[readerID] = active
}

// IsUserActive implements the lending.UserStatusOracle interface for testing.
func (s *UserStatusOracleStub) IsUserActive(_ context.Context, readerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, readerID)

	return s.active[readerID]
}

// GetCalls returns the reader IDs the stub was asked about, in order.
func (s *UserStatusOracleStub) GetCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	calls := make([]string, len(s.calls))
	copy(calls, s.calls)

	return calls
}

var _ lending.UserStatusOracle = (*UserStatusOracleStub)(nil)
