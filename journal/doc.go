// Package journal provides an append-only, in-memory event journal for the lending domain.
//
// The journal receives the domain events of the lending.Manager (it implements
// lending.EventRecorder), stores them as StorableEvent with JSON payload and metadata, and
// answers filtered queries and projections such as CurrentLoans.
//
// The journal lives only in process memory for the lifetime of the Journal value, nothing is
// persisted across restarts.
//
// Common usage pattern:
//
//	j := journal.NewJournal()
//	manager, err := lending.NewManager(oracle, notifier, lending.WithEventRecorder(j))
//
//	filter := journal.BuildFilter().
//		AnyEventTypeOf(core.BookCopyLentToReaderEventType, core.BookCopyReturnedByReaderEventType).
//		AndAllPredicatesOf(journal.P("book_id", "book1")).
//		Finalize()
//
//	events, err := j.DomainEvents(ctx, filter)
package journal
