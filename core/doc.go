// Package core contains the domain events of book lending in a public library.
//
// Events represent meaningful business occurrences like BookCopyLentToReader or
// LendingBookToReaderFailed rather than generic create/update operations. The lending.Manager
// emits exactly one event per business outcome of AddBook, BorrowBook and ReturnBook.
//
// All domain events implement the DomainEvent interface with IsEventType(), HasOccurredAt()
// and IsErrorEvent() methods, so they can be recorded into the journal package.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
