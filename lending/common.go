package lending

import (
	"errors"
)

//nolint:staticcheck // the message is part of the public contract, punctuation and capitalization included
var ErrNegativeOverdueDays = errors.New("Overdue days cannot be negative.")

var ErrNilUserStatusOracle = errors.New("nil user status oracle supplied")
var ErrNilNotifier = errors.New("nil notifier supplied")
var ErrNilClock = errors.New("nil clock supplied")

var ErrInvalidBookID = errors.New("book id must be present and not empty")
var ErrNegativeQuantity = errors.New("quantity cannot be negative")

const (
	// MessageAccountNotActive is sent to a reader whose account is not active when borrowing.
	MessageAccountNotActive = "Your account is not active."

	// MessageBookBorrowedPrefix is followed by the book identifier in the borrow confirmation.
	MessageBookBorrowedPrefix = "You have borrowed the book: "
)

// ReaderIDString represents a reader (user) identifier.
type ReaderIDString = string
