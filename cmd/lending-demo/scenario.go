package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/AntonStoeckl/lending-tracker-go/lending"
	"github.com/AntonStoeckl/lending-tracker-go/readers"
)

const (
	scenarioBookID         = "book1"
	scenarioActiveReader   = "u1"
	scenarioInactiveReader = "u2"
)

// notificationLog remembers the last notification per reader so the scenario can verify them.
type notificationLog struct {
	mu   sync.Mutex
	last map[lending.ReaderIDString]string
}

func newNotificationLog() *notificationLog {
	return &notificationLog{last: make(map[lending.ReaderIDString]string)}
}

func (n *notificationLog) NotifyUser(_ context.Context, readerID lending.ReaderIDString, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.last[readerID] = message
}

func (n *notificationLog) lastFor(readerID lending.ReaderIDString) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.last[readerID]
}

type scenarioStep struct {
	name                 string
	readerID             lending.ReaderIDString
	prepare              func() error
	act                  func(ctx context.Context) bool
	expectedResult       bool
	expectedAvailable    int
	expectedNotification string
}

type stepOutcome struct {
	name       string
	result     bool
	available  int
	deviations []string
}

func (o stepOutcome) ok() bool {
	return len(o.deviations) == 0
}

// runScenario plays the lending walkthrough: one copy, an active and an inactive reader,
// a return, and the formerly inactive reader borrowing after activation.
func runScenario(
	ctx context.Context,
	manager *lending.Manager,
	registry *readers.Registry,
	notifications *notificationLog,
) ([]stepOutcome, error) {

	book := lending.BookIDOf(scenarioBookID)

	if err := registry.Register(scenarioActiveReader); err != nil {
		return nil, err
	}

	if err := manager.AddBook(ctx, book, 1); err != nil {
		return nil, err
	}

	steps := []scenarioStep{
		{
			name:                 "active reader u1 borrows book1",
			readerID:             scenarioActiveReader,
			act:                  func(ctx context.Context) bool { return manager.BorrowBook(ctx, book, scenarioActiveReader) },
			expectedResult:       true,
			expectedAvailable:    0,
			expectedNotification: lending.MessageBookBorrowedPrefix + scenarioBookID,
		},
		{
			name:                 "inactive reader u2 tries to borrow book1",
			readerID:             scenarioInactiveReader,
			act:                  func(ctx context.Context) bool { return manager.BorrowBook(ctx, book, scenarioInactiveReader) },
			expectedResult:       false,
			expectedAvailable:    0,
			expectedNotification: lending.MessageAccountNotActive,
		},
		{
			name:              "u1 returns book1",
			readerID:          scenarioActiveReader,
			act:               func(ctx context.Context) bool { return manager.ReturnBook(ctx, book, scenarioActiveReader) },
			expectedResult:    true,
			expectedAvailable: 1,
		},
		{
			name:                 "u2, now active, borrows book1",
			readerID:             scenarioInactiveReader,
			prepare:              func() error { return registry.Register(scenarioInactiveReader) },
			act:                  func(ctx context.Context) bool { return manager.BorrowBook(ctx, book, scenarioInactiveReader) },
			expectedResult:       true,
			expectedAvailable:    0,
			expectedNotification: lending.MessageBookBorrowedPrefix + scenarioBookID,
		},
	}

	outcomes := make([]stepOutcome, 0, len(steps))

	for _, step := range steps {
		if step.prepare != nil {
			if err := step.prepare(); err != nil {
				return outcomes, err
			}
		}

		outcome := stepOutcome{name: step.name}
		outcome.result = step.act(ctx)
		outcome.available = manager.GetAvailableCopies(book)

		if outcome.result != step.expectedResult {
			outcome.deviations = append(outcome.deviations,
				fmt.Sprintf("result %t, expected %t", outcome.result, step.expectedResult))
		}

		if outcome.available != step.expectedAvailable {
			outcome.deviations = append(outcome.deviations,
				fmt.Sprintf("available copies %d, expected %d", outcome.available, step.expectedAvailable))
		}

		if step.expectedNotification != "" {
			if got := notifications.lastFor(step.readerID); got != step.expectedNotification {
				outcome.deviations = append(outcome.deviations,
					fmt.Sprintf("notification %q, expected %q", got, step.expectedNotification))
			}
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}
