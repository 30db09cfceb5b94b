package lending

import (
	"context"
	"sync"
	"time"

	"github.com/AntonStoeckl/lending-tracker-go/core"
)

const (
	operationAddBook    = "add_book"
	operationBorrowBook = "borrow_book"
	operationReturnBook = "return_book"
)

// Manager owns the catalog (book -> available copies) and the loan table (book -> borrowing reader).
//
// Both mappings live only in process memory for the lifetime of the Manager. They are guarded by a
// single mutex, so the check-then-act sequences of AddBook, BorrowBook and ReturnBook are atomic with
// respect to each other. Collaborators are called outside of the lock.
type Manager struct {
	mu      sync.Mutex
	catalog map[BookID]int
	loans   map[BookID]ReaderIDString

	userStatusOracle UserStatusOracle
	notifier         Notifier
	eventRecorder    EventRecorder
	clock            func() time.Time
	strictValidation bool

	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// NewManager creates a Manager with an empty catalog and loan table.
// The user-status oracle and the notifier are mandatory, everything else is configured with options.
func NewManager(userStatusOracle UserStatusOracle, notifier Notifier, options ...Option) (*Manager, error) {
	if userStatusOracle == nil {
		return nil, ErrNilUserStatusOracle
	}

	if notifier == nil {
		return nil, ErrNilNotifier
	}

	m := &Manager{
		catalog:          make(map[BookID]int),
		loans:            make(map[BookID]ReaderIDString),
		userStatusOracle: userStatusOracle,
		notifier:         notifier,
		clock:            time.Now,
	}

	for _, option := range options {
		if err := option(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// AddBook adds quantity to the available copies of bookID, creating the catalog entry if absent.
//
// In the default compatibility mode nothing is validated: a negative quantity is applied as given
// and may drive the stored count below zero, and NullBookID is accepted as a key of its own.
// The count is deliberately not clamped at zero. With WithStrictValidation, ErrInvalidBookID and
// ErrNegativeQuantity are returned instead and the catalog stays untouched.
func (m *Manager) AddBook(ctx context.Context, bookID BookID, quantity int) error {
	observer, ctx := m.startOperation(ctx, operationAddBook, bookID, "")

	if m.strictValidation {
		if err := validateAddBook(bookID, quantity); err != nil {
			m.logRejection(ctx, operationAddBook, err.Error(), logAttrBookID, bookID.String(), logAttrQuantity, quantity)
			observer.finish(statusRejected)

			return err
		}
	}

	available := m.addCopies(bookID, quantity)

	m.recordEvent(ctx, core.BuildBookCopiesAddedToCatalog(bookID.String(), quantity, m.clock()))
	m.logOperation(
		ctx,
		operationAddBook,
		logAttrBookID, bookID.String(),
		logAttrQuantity, quantity,
		logAttrAvailableCopies, available,
	)
	observer.recordAvailableCopies(bookID, available)
	observer.finish(statusSuccess)

	return nil
}

// BorrowBook lends one copy of bookID to readerID.
//
// Rules, in order:
//   - inactive reader: the reader is notified with MessageAccountNotActive, nothing changes, false
//   - no catalog entry or available copies <= 0: nothing changes, no notification, false
//   - otherwise: one copy less, the loan bookID -> readerID is recorded (replacing any previous loan
//     record of that book), the reader is notified with MessageBookBorrowedPrefix + bookID, true
func (m *Manager) BorrowBook(ctx context.Context, bookID BookID, readerID ReaderIDString) bool {
	observer, ctx := m.startOperation(ctx, operationBorrowBook, bookID, readerID)

	if !m.userStatusOracle.IsUserActive(ctx, readerID) {
		m.notifier.NotifyUser(ctx, readerID, MessageAccountNotActive)
		m.rejectBorrow(ctx, observer, bookID, readerID, core.FailureReasonReaderNotActive)

		return false
	}

	available, lent := m.lendCopy(bookID, readerID)
	if !lent {
		m.rejectBorrow(ctx, observer, bookID, readerID, core.FailureReasonNoCopiesAvailable)
		return false
	}

	m.notifier.NotifyUser(ctx, readerID, MessageBookBorrowedPrefix+bookID.String())

	m.recordEvent(ctx, core.BuildBookCopyLentToReader(bookID.String(), readerID, m.clock()))
	m.logOperation(
		ctx,
		operationBorrowBook,
		logAttrBookID, bookID.String(),
		logAttrReaderID, readerID,
		logAttrAvailableCopies, available,
	)
	observer.recordAvailableCopies(bookID, available)
	observer.finish(statusSuccess)

	return true
}

// ReturnBook takes back the copy of bookID lent to readerID.
//
// It succeeds only if a loan record exists for bookID and its borrower is exactly readerID:
// then the available copies grow by one and the loan record is removed. In every other case
// (no loan, loan of another reader) nothing changes and false is returned.
func (m *Manager) ReturnBook(ctx context.Context, bookID BookID, readerID ReaderIDString) bool {
	observer, ctx := m.startOperation(ctx, operationReturnBook, bookID, readerID)

	available, failureReason := m.takeBackCopy(bookID, readerID)
	if failureReason != "" {
		m.recordEvent(ctx, core.BuildReturningBookFromReaderFailed(bookID.String(), readerID, failureReason, m.clock()))
		m.logRejection(ctx, operationReturnBook, failureReason, logAttrBookID, bookID.String(), logAttrReaderID, readerID)
		observer.finish(statusRejected)

		return false
	}

	m.recordEvent(ctx, core.BuildBookCopyReturnedByReader(bookID.String(), readerID, m.clock()))
	m.logOperation(
		ctx,
		operationReturnBook,
		logAttrBookID, bookID.String(),
		logAttrReaderID, readerID,
		logAttrAvailableCopies, available,
	)
	observer.recordAvailableCopies(bookID, available)
	observer.finish(statusSuccess)

	return true
}

// GetAvailableCopies returns the stored count for bookID, or 0 if the book was never added.
func (m *Manager) GetAvailableCopies(bookID BookID) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.catalog[bookID]
}

// CurrentBorrower returns the reader holding the tracked loan of bookID, if any.
func (m *Manager) CurrentBorrower(bookID BookID) (ReaderIDString, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	readerID, ok := m.loans[bookID]

	return readerID, ok
}

// CalculateDynamicLateFee computes the late-return fee, see the package level CalculateDynamicLateFee.
func (m *Manager) CalculateDynamicLateFee(overdueDays int, isBestseller bool, isPremiumMember bool) (float64, error) {
	return CalculateDynamicLateFee(overdueDays, isBestseller, isPremiumMember)
}

func (m *Manager) addCopies(bookID BookID, quantity int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.catalog[bookID] += quantity

	return m.catalog[bookID]
}

func (m *Manager) lendCopy(bookID BookID, readerID ReaderIDString) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	available, ok := m.catalog[bookID]
	if !ok || available <= 0 {
		return available, false
	}

	m.catalog[bookID] = available - 1
	m.loans[bookID] = readerID

	return available - 1, true
}

func (m *Manager) takeBackCopy(bookID BookID, readerID ReaderIDString) (int, core.FailureInfoString) {
	m.mu.Lock()
	defer m.mu.Unlock()

	borrower, ok := m.loans[bookID]
	if !ok {
		return m.catalog[bookID], core.FailureReasonBookNotLent
	}

	if borrower != readerID {
		return m.catalog[bookID], core.FailureReasonBookLentToAnotherReader
	}

	delete(m.loans, bookID)
	m.catalog[bookID]++

	return m.catalog[bookID], ""
}

func (m *Manager) rejectBorrow(
	ctx context.Context,
	observer *operationObserver,
	bookID BookID,
	readerID ReaderIDString,
	failureReason core.FailureInfoString,
) {

	m.recordEvent(ctx, core.BuildLendingBookToReaderFailed(bookID.String(), readerID, failureReason, m.clock()))
	m.logRejection(ctx, operationBorrowBook, failureReason, logAttrBookID, bookID.String(), logAttrReaderID, readerID)
	observer.finish(statusRejected)
}

func (m *Manager) recordEvent(ctx context.Context, event core.DomainEvent) {
	if m.eventRecorder == nil {
		return
	}

	if err := m.eventRecorder.Record(ctx, event); err != nil {
		m.logWarning(ctx, logMsgRecordEventFailed, err, logAttrEventType, event.IsEventType())
	}
}

func validateAddBook(bookID BookID, quantity int) error {
	if bookID.IsNull() || bookID.String() == "" {
		return ErrInvalidBookID
	}

	if quantity < 0 {
		return ErrNegativeQuantity
	}

	return nil
}
