// Package lending tracks a small library catalog in process memory: how many copies of each
// book are available, which reader currently holds which book, and what a late return costs.
//
// The Manager is the only stateful type. It owns two mappings, the catalog (book -> available
// copies) and the loan table (book -> borrowing reader), and depends on two externally supplied
// collaborators:
//   - UserStatusOracle: tells whether a reader account is active
//   - Notifier: delivers a message to a reader, fire-and-forget
//
// Business rejections (inactive reader, no copy available, foreign loan) are reported as a
// boolean false, never as an error. The only error raised by a lending rule is
// ErrNegativeOverdueDays from CalculateDynamicLateFee.
//
// Compatibility mode is the default: AddBook performs no validation, so negative quantities are
// applied as given and the absent identifier NullBookID is an ordinary catalog key. Use
// WithStrictValidation to reject both instead.
//
// Common usage pattern:
//
//	manager, err := lending.NewManager(
//		readerRegistry,
//		notifier,
//		lending.WithLogger(slog.Default()),
//		lending.WithEventRecorder(journal.NewJournal()),
//	)
//	if err != nil {
//		// handle error
//	}
//
//	_ = manager.AddBook(ctx, lending.BookIDOf("book1"), 1)
//
//	if manager.BorrowBook(ctx, lending.BookIDOf("book1"), "u1") {
//		// the reader got notified and holds the copy now
//	}
//
//	fee, err := manager.CalculateDynamicLateFee(3, true, false)
//
// Observability is optional and dependency-free: Logger, ContextualLogger, MetricsCollector and
// TracingCollector are small interfaces; the oteladapters package implements them with OpenTelemetry.
package lending
