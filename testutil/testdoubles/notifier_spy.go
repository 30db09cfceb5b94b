package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/lending-tracker-go/lending"
)

// SpyNotification represents a recorded NotifyUser call.
type SpyNotification struct {
	ReaderID string
	Message  string
}

// NotifierSpy is a lending.Notifier implementation that captures notifications for testing.
type NotifierSpy struct {
	notifications []SpyNotification
	mu            sync.Mutex
}

// NewNotifierSpy creates a new NotifierSpy.
func NewNotifierSpy() *NotifierSpy {
	return &NotifierSpy{
		notifications: make([]SpyNotification, 0),
	}
}

// NotifyUser implements the lending.Notifier interface for testing.
func (s *NotifierSpy) NotifyUser(_ context.Context, readerID string, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append(s.notifications, SpyNotification{
		ReaderID: readerID,
		Message:  message,
	})
}

// GetNotifications returns a copy of all captured notifications.
func (s *NotifierSpy) GetNotifications() []SpyNotification {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := make([]SpyNotification, len(s.notifications))
	copy(notifications, s.notifications)

	return notifications
}

// GetNotificationsFor returns the captured messages sent to the given reader.
func (s *NotifierSpy) GetNotificationsFor(readerID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var messages []string
	for _, notification := range s.notifications {
		if notification.ReaderID == readerID {
			messages = append(messages, notification.Message)
		}
	}

	return messages
}

// GetNotificationCount returns the number of captured notifications.
func (s *NotifierSpy) GetNotificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.notifications)
}

// Reset clears all captured notifications.
func (s *NotifierSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = s.notifications[:0]
}

var _ lending.Notifier = (*NotifierSpy)(nil)
