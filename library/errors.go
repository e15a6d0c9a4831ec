package library

import "errors"

// Failure kinds returned by catalog and ledger operations. Callers match on
// them with errors.Is, print the message, and keep the session running.
var (
	ErrItemNotFound      = errors.New("item not found in catalog")
	ErrMemberNotFound    = errors.New("member not found")
	ErrNoCopiesAvailable = errors.New("no available copies left")
	ErrItemNotCheckedOut = errors.New("item is not checked out by this member")
	ErrAlreadyCheckedOut = errors.New("item is already checked out by this member")
	ErrInvalidInput      = errors.New("invalid input")
	ErrLoadFailed        = errors.New("no valid rows loaded from catalog source")
)
