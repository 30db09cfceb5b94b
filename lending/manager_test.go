package lending_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/lending-tracker-go/lending"
	"github.com/AntonStoeckl/lending-tracker-go/testutil/testdoubles"
)

const (
	activeReader    = "active_user"
	notActiveReader = "not_active_user"
)

var (
	book1       = lending.BookIDOf("book1")
	book2       = lending.BookIDOf("book2")
	book3IsOver = lending.BookIDOf("book3_is_over")
	newBook4    = lending.BookIDOf("new_book4")
	newBook5    = lending.BookIDOf("new_book5")
	newBook6    = lending.BookIDOf("new_book6")
)

func Test_NewManager_RejectsMissingCollaborators(t *testing.T) {
	oracle := testdoubles.NewUserStatusOracleStub()
	notifier := testdoubles.NewNotifierSpy()

	_, err := lending.NewManager(nil, notifier)
	assert.ErrorIs(t, err, lending.ErrNilUserStatusOracle)

	_, err = lending.NewManager(oracle, nil)
	assert.ErrorIs(t, err, lending.ErrNilNotifier)

	_, err = lending.NewManager(oracle, notifier, lending.WithClock(nil))
	assert.ErrorIs(t, err, lending.ErrNilClock)
}

func Test_AddBook_NewBook(t *testing.T) {
	testCases := []struct {
		bookID   lending.BookID
		quantity int
		expected int
	}{
		{bookID: newBook4, quantity: 1, expected: 1},
		{bookID: newBook5, quantity: 7, expected: 7},
		{bookID: newBook6, quantity: 0, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.bookID.String(), func(t *testing.T) {
			// arrange
			ctx, manager, _, _ := setupManager(t)

			// act
			err := manager.AddBook(ctx, tc.bookID, tc.quantity)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expected, manager.GetAvailableCopies(tc.bookID))
		})
	}
}

func Test_AddBook_ExistingBook(t *testing.T) {
	testCases := []struct {
		bookID   lending.BookID
		quantity int
		expected int
	}{
		{bookID: book1, quantity: 4, expected: 5},
		{bookID: book2, quantity: 8, expected: 20},
		{bookID: book3IsOver, quantity: 1, expected: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.bookID.String(), func(t *testing.T) {
			// arrange
			ctx, manager, _, _ := setupManager(t)

			// act
			err := manager.AddBook(ctx, tc.bookID, tc.quantity)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expected, manager.GetAvailableCopies(tc.bookID))
		})
	}
}

func Test_AddBook_NegativeQuantity_IsAppliedUnchecked(t *testing.T) {
	testCases := []struct {
		bookID   lending.BookID
		quantity int
		expected int
	}{
		{bookID: book1, quantity: -1, expected: 0},
		{bookID: book2, quantity: -3, expected: 9},
		{bookID: book3IsOver, quantity: -2, expected: -2},
		{bookID: newBook4, quantity: -1, expected: -1},
	}

	for _, tc := range testCases {
		t.Run(tc.bookID.String(), func(t *testing.T) {
			// arrange
			ctx, manager, _, _ := setupManager(t)

			// act
			err := manager.AddBook(ctx, tc.bookID, tc.quantity)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expected, manager.GetAvailableCopies(tc.bookID))
		})
	}
}

func Test_AddBook_Accumulates(t *testing.T) {
	quantities := [][2]int{{3, 4}, {5, -2}, {-1, -1}, {0, 0}, {-7, 10}}

	for _, q := range quantities {
		// arrange
		ctx, manager, _, _ := setupManager(t)
		bookID := lending.BookIDOf("accumulated")

		// act
		require.NoError(t, manager.AddBook(ctx, bookID, q[0]))
		require.NoError(t, manager.AddBook(ctx, bookID, q[1]))

		// assert
		assert.Equal(t, q[0]+q[1], manager.GetAvailableCopies(bookID), "quantities %v should accumulate", q)
	}
}

func Test_AddBook_NullBookID_IsADistinctKey(t *testing.T) {
	// arrange
	ctx, manager, _, _ := setupManager(t)

	// act
	err := manager.AddBook(ctx, lending.NullBookID, 2)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, manager.GetAvailableCopies(lending.NullBookID))
	assert.Equal(t, 0, manager.GetAvailableCopies(lending.BookIDOf("null")), "the rendered form must not alias the absent id")
	assert.Equal(t, 0, manager.GetAvailableCopies(lending.BookIDOf("")), "the empty id must not alias the absent id")
}

func Test_BorrowBook_InactiveReader(t *testing.T) {
	for _, bookID := range []lending.BookID{book1, book2, book3IsOver, newBook4} {
		t.Run(bookID.String(), func(t *testing.T) {
			// arrange
			ctx, manager, _, notifier := setupManager(t)
			before := manager.GetAvailableCopies(bookID)

			// act
			borrowed := manager.BorrowBook(ctx, bookID, notActiveReader)

			// assert
			assert.False(t, borrowed, "an inactive reader must not borrow")
			assert.Equal(t, before, manager.GetAvailableCopies(bookID))
			assert.Equal(t,
				[]testdoubles.SpyNotification{{ReaderID: notActiveReader, Message: "Your account is not active."}},
				notifier.GetNotifications(),
			)

			_, onLoan := manager.CurrentBorrower(bookID)
			assert.False(t, onLoan)
		})
	}
}

func Test_BorrowBook_BookNotAvailable(t *testing.T) {
	for _, bookID := range []lending.BookID{book3IsOver, newBook4, newBook5} {
		t.Run(bookID.String(), func(t *testing.T) {
			// arrange
			ctx, manager, _, notifier := setupManager(t)
			before := manager.GetAvailableCopies(bookID)

			// act
			borrowed := manager.BorrowBook(ctx, bookID, activeReader)

			// assert
			assert.False(t, borrowed, "a missing or exhausted book must not be lent")
			assert.Equal(t, before, manager.GetAvailableCopies(bookID))
			assert.Zero(t, notifier.GetNotificationCount(), "no notification expected")
		})
	}
}

func Test_BorrowBook_NegativeCount_IsNotAvailable(t *testing.T) {
	// arrange
	ctx, manager, _, notifier := setupManager(t)
	require.NoError(t, manager.AddBook(ctx, book3IsOver, -2))

	// act
	borrowed := manager.BorrowBook(ctx, book3IsOver, activeReader)

	// assert
	assert.False(t, borrowed)
	assert.Equal(t, -2, manager.GetAvailableCopies(book3IsOver))
	assert.Zero(t, notifier.GetNotificationCount())
}

func Test_BorrowBook_Success(t *testing.T) {
	testCases := []struct {
		bookID   lending.BookID
		expected int
	}{
		{bookID: book1, expected: 0},
		{bookID: book2, expected: 11},
	}

	for _, tc := range testCases {
		t.Run(tc.bookID.String(), func(t *testing.T) {
			// arrange
			ctx, manager, _, notifier := setupManager(t)

			// act
			borrowed := manager.BorrowBook(ctx, tc.bookID, activeReader)

			// assert
			assert.True(t, borrowed, "an active reader borrows an available book")
			assert.Equal(t, tc.expected, manager.GetAvailableCopies(tc.bookID))
			assert.Equal(t,
				[]string{"You have borrowed the book: " + tc.bookID.String()},
				notifier.GetNotificationsFor(activeReader),
			)

			borrower, onLoan := manager.CurrentBorrower(tc.bookID)
			assert.True(t, onLoan)
			assert.Equal(t, activeReader, borrower)
		})
	}
}

func Test_BorrowBook_NullBookID(t *testing.T) {
	// arrange
	ctx, manager, _, notifier := setupManager(t)
	require.NoError(t, manager.AddBook(ctx, lending.NullBookID, 2))

	// act
	borrowed := manager.BorrowBook(ctx, lending.NullBookID, activeReader)

	// assert
	assert.True(t, borrowed)
	assert.Equal(t, 1, manager.GetAvailableCopies(lending.NullBookID))
	assert.Equal(t, []string{"You have borrowed the book: null"}, notifier.GetNotificationsFor(activeReader))
}

func Test_BorrowBook_SecondLoanReplacesLoanRecord(t *testing.T) {
	// arrange
	ctx, manager, oracle, _ := setupManager(t)
	oracle.SetActive("user1", true)
	oracle.SetActive("user2", true)

	// act
	require.True(t, manager.BorrowBook(ctx, book2, "user1"))
	require.True(t, manager.BorrowBook(ctx, book2, "user2"))

	// assert
	assert.Equal(t, 10, manager.GetAvailableCopies(book2))
	assert.False(t, manager.ReturnBook(ctx, book2, "user1"), "only one loan per book is tracked")
	assert.True(t, manager.ReturnBook(ctx, book2, "user2"))
	assert.Equal(t, 11, manager.GetAvailableCopies(book2))
}

func Test_ReturnBook_WhenBookWasNotBorrowed(t *testing.T) {
	// arrange
	ctx, manager, _, _ := setupManager(t)

	// act
	returned := manager.ReturnBook(ctx, book1, "user1")

	// assert
	assert.False(t, returned, "nothing to return")
	assert.Equal(t, 1, manager.GetAvailableCopies(book1))
}

func Test_ReturnBook_WhenBorrowedByAnotherReader(t *testing.T) {
	// arrange
	ctx, manager, oracle, _ := setupManager(t)
	oracle.SetActive("user2", true)
	require.True(t, manager.BorrowBook(ctx, book2, "user2"))

	// act
	returned := manager.ReturnBook(ctx, book2, "user1")

	// assert
	assert.False(t, returned, "a foreign loan must not be returned")
	assert.Equal(t, 11, manager.GetAvailableCopies(book2))

	borrower, onLoan := manager.CurrentBorrower(book2)
	assert.True(t, onLoan)
	assert.Equal(t, "user2", borrower)
}

func Test_ReturnBook_WhenReaderBorrowedAnotherBook(t *testing.T) {
	// arrange
	ctx, manager, oracle, _ := setupManager(t)
	oracle.SetActive("user1", true)
	require.True(t, manager.BorrowBook(ctx, book2, "user1"))

	// act
	returned := manager.ReturnBook(ctx, book1, "user1")

	// assert
	assert.False(t, returned, "the reader holds a different book")
	assert.Equal(t, 11, manager.GetAvailableCopies(book2))
	assert.Equal(t, 1, manager.GetAvailableCopies(book1))
}

func Test_ReturnBook_Success(t *testing.T) {
	// arrange
	ctx, manager, oracle, _ := setupManager(t)
	oracle.SetActive("user1", true)
	require.True(t, manager.BorrowBook(ctx, book1, "user1"))

	// act
	returned := manager.ReturnBook(ctx, book1, "user1")

	// assert
	assert.True(t, returned)
	assert.Equal(t, 1, manager.GetAvailableCopies(book1))

	_, onLoan := manager.CurrentBorrower(book1)
	assert.False(t, onLoan, "the loan record is removed")
	assert.False(t, manager.ReturnBook(ctx, book1, "user1"), "a loan can be returned only once")
	assert.Equal(t, 1, manager.GetAvailableCopies(book1))
}

func Test_GetAvailableCopies(t *testing.T) {
	testCases := []struct {
		bookID   lending.BookID
		expected int
	}{
		{bookID: book1, expected: 1},
		{bookID: book2, expected: 12},
		{bookID: book3IsOver, expected: 0},
		{bookID: newBook4, expected: 0},
		{bookID: newBook5, expected: 0},
		{bookID: lending.NullBookID, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.bookID.String(), func(t *testing.T) {
			// arrange
			_, manager, _, _ := setupManager(t)

			// act
			available := manager.GetAvailableCopies(tc.bookID)

			// assert
			assert.Equal(t, tc.expected, available)
		})
	}
}

func Test_Manager_EndToEndScenario(t *testing.T) {
	// arrange
	ctx := context.Background()
	oracle := testdoubles.NewUserStatusOracleStub("u1")
	notifier := testdoubles.NewNotifierSpy()
	manager, err := lending.NewManager(oracle, notifier)
	require.NoError(t, err)
	require.NoError(t, manager.AddBook(ctx, book1, 1))

	// act + assert
	assert.True(t, manager.BorrowBook(ctx, book1, "u1"))
	assert.Equal(t, 0, manager.GetAvailableCopies(book1))

	assert.False(t, manager.BorrowBook(ctx, book1, "u2"))
	assert.Equal(t, 0, manager.GetAvailableCopies(book1))
	assert.Equal(t, []string{"Your account is not active."}, notifier.GetNotificationsFor("u2"))

	assert.True(t, manager.ReturnBook(ctx, book1, "u1"))
	assert.Equal(t, 1, manager.GetAvailableCopies(book1))

	oracle.SetActive("u2", true)
	assert.True(t, manager.BorrowBook(ctx, book1, "u2"))
	assert.Equal(t, 0, manager.GetAvailableCopies(book1))
	assert.Equal(t,
		[]string{"Your account is not active.", "You have borrowed the book: book1"},
		notifier.GetNotificationsFor("u2"),
	)
}

func Test_Manager_ConcurrentBorrowsNeverOverdrawCatalog(t *testing.T) {
	// arrange
	const copies = 25
	const readers = 100

	ctx := context.Background()
	oracle := testdoubles.NewUserStatusOracleStub()
	for i := 0; i < readers; i++ {
		oracle.SetActive(readerName(i), true)
	}

	manager, err := lending.NewManager(oracle, testdoubles.NewNotifierSpy())
	require.NoError(t, err)
	require.NoError(t, manager.AddBook(ctx, book1, copies))

	// act
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(readerID string) {
			defer wg.Done()

			if manager.BorrowBook(ctx, book1, readerID) {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(readerName(i))
	}

	wg.Wait()

	// assert
	assert.Equal(t, copies, successes)
	assert.Equal(t, 0, manager.GetAvailableCopies(book1))
}

func Test_StrictValidation_RejectsInvalidInput(t *testing.T) {
	// arrange
	ctx, manager, _, _ := setupManager(t, lending.WithStrictValidation())

	// act + assert
	assert.ErrorIs(t, manager.AddBook(ctx, lending.NullBookID, 2), lending.ErrInvalidBookID)
	assert.ErrorIs(t, manager.AddBook(ctx, lending.BookIDOf(""), 2), lending.ErrInvalidBookID)
	assert.ErrorIs(t, manager.AddBook(ctx, book1, -1), lending.ErrNegativeQuantity)

	assert.Equal(t, 0, manager.GetAvailableCopies(lending.NullBookID))
	assert.Equal(t, 0, manager.GetAvailableCopies(lending.BookIDOf("")))
	assert.Equal(t, 1, manager.GetAvailableCopies(book1))

	assert.NoError(t, manager.AddBook(ctx, book1, 0))
	assert.NoError(t, manager.AddBook(ctx, book1, 2))
	assert.Equal(t, 3, manager.GetAvailableCopies(book1))
}

// Test helper functions

func setupManager(t *testing.T, options ...lending.Option) (
	context.Context,
	*lending.Manager,
	*testdoubles.UserStatusOracleStub,
	*testdoubles.NotifierSpy,
) {

	t.Helper()

	ctx := context.Background()
	oracle := testdoubles.NewUserStatusOracleStub(activeReader)
	notifier := testdoubles.NewNotifierSpy()

	manager, err := lending.NewManager(oracle, notifier, options...)
	require.NoError(t, err)

	require.NoError(t, manager.AddBook(ctx, book1, 1))
	require.NoError(t, manager.AddBook(ctx, book2, 12))
	require.NoError(t, manager.AddBook(ctx, book3IsOver, 0))

	return ctx, manager, oracle, notifier
}

func readerName(i int) string {
	return fmt.Sprintf("reader-%d", i)
}
