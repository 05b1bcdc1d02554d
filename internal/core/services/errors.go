package services

import "errors"

// Sentinel errors for the ledger command surface. Handlers map these to HTTP
// statuses with errors.Is.
var (
	// ErrUnbalancedEntry rejects a journal whose debits and credits differ
	// or sum to zero. Nothing is written.
	ErrUnbalancedEntry = errors.New("journal entry debits and credits do not balance")

	// ErrJournalMinEntries rejects a journal with fewer than two lines.
	ErrJournalMinEntries = errors.New("journal must have at least two transaction entries")

	// ErrJournalMinAccounts rejects a journal touching fewer than two accounts.
	ErrJournalMinAccounts = errors.New("journal must affect at least two different accounts")

	// ErrMemoMissing rejects a journal without a memo.
	ErrMemoMissing = errors.New("journal memo is required")

	// ErrAccountNotFound marks a command referencing a nonexistent account id.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountInactive rejects new journal lines against a deactivated account.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrSystemAccountProtected guards system accounts against deletion and retyping.
	ErrSystemAccountProtected = errors.New("system account cannot be deleted or retyped")

	// ErrAccountInUse guards accounts referenced by journal lines or expenses
	// against deletion.
	ErrAccountInUse = errors.New("account is referenced by journal entries or expenses")

	// ErrAlreadyConverted rejects a conversion of a document whose link id is set.
	ErrAlreadyConverted = errors.New("document has already been converted")

	// ErrAlreadyReversed rejects a second reversal of the same journal.
	ErrAlreadyReversed = errors.New("journal has already been reversed")

	// ErrPaymentsExist rejects deletion of a document with attached payments.
	ErrPaymentsExist = errors.New("document has payments and cannot be deleted")

	// ErrInvalidPayment rejects a payment with a non-positive amount or a
	// missing/unsuitable deposit or source account.
	ErrInvalidPayment = errors.New("invalid payment")

	// ErrStatusProtected rejects manual transitions into or out of the
	// payment-derived statuses.
	ErrStatusProtected = errors.New("paid statuses are derived from payments and cannot be set manually")

	// ErrFinalized rejects edits or deletes of a finalized credit note.
	ErrFinalized = errors.New("credit note is finalized and cannot be changed")
)
