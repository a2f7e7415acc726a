package domain

import "errors"

// Kind classifies a domain failure so transports can react to it without
// matching on individual sentinels.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthenticated
	KindForbidden
	KindSelfOperation
)

// Error is a domain failure. Message is shown to operators verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrUserNotFound    = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrProductNotFound = &Error{Kind: KindNotFound, Message: "Product not found"}
	ErrOrderNotFound   = &Error{Kind: KindNotFound, Message: "Order not found"}

	ErrEmailInUse = &Error{Kind: KindConflict, Message: "Email already in use"}

	ErrInvalidCredentials = &Error{Kind: KindUnauthenticated, Message: "Invalid credentials"}
	ErrNotAuthenticated   = &Error{Kind: KindUnauthenticated, Message: "Not authenticated"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "Access forbidden"}

	ErrPasswordMismatch  = &Error{Kind: KindValidation, Message: "Passwords do not match"}
	ErrIncorrectPassword = &Error{Kind: KindValidation, Message: "Incorrect password"}
	ErrInvalidInput      = &Error{Kind: KindValidation, Message: "Invalid input"}

	ErrSelfDelete = &Error{Kind: KindSelfOperation, Message: "You can't delete your own account"}
	ErrSelfDemote = &Error{Kind: KindSelfOperation, Message: "You can't change your own role from admin"}
)

// Invalid returns a validation error with a custom message.
func Invalid(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// KindOf reports the Kind of the first domain error in err's chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
