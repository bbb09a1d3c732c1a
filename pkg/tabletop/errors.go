package tabletop

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error into one of the user-visible outcomes.
type Kind int

const (
	// KindNotFound means a referenced entity does not exist in this guild.
	KindNotFound Kind = iota
	// KindPermissionDenied means the caller may not act on the resource.
	KindPermissionDenied
	// KindAmbiguousContext means a target could not be inferred from the invocation.
	KindAmbiguousContext
	// KindConflict means a uniqueness constraint was violated.
	KindConflict
	// KindCollaboratorFailure means a Discord call failed mid-operation.
	KindCollaboratorFailure
	// KindInternal covers everything else (store connectivity, protocol errors).
	KindInternal
)

// Error is the domain error type shared by the resolver, the authorizer and
// the repositories. Message is safe to show to the caller as-is.
type Error struct {
	Kind    Kind
	Field   string // set for KindConflict: the conflicting field name
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports a missing entity. The message is deliberately vague so it
// never leaks which lookup failed.
func NotFound(what string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found! Not sure how you got here...", what),
	}
}

// PermissionDenied reports a denied action with a generic message. It must not
// reveal why access was denied.
func PermissionDenied() *Error {
	return &Error{
		Kind:    KindPermissionDenied,
		Message: "You don't have permission to do that!",
	}
}

// Ambiguous reports a failed context inference with a literal remediation hint.
func Ambiguous(message string) *Error {
	return &Error{Kind: KindAmbiguousContext, Message: message}
}

// Conflict reports a uniqueness violation on the named field.
func Conflict(field string) *Error {
	return &Error{
		Kind:    KindConflict,
		Field:   field,
		Message: fmt.Sprintf("That %s is already taken!", field),
	}
}

// CollaboratorFailure wraps a failed Discord call. Partial effects already
// applied before the failure are not rolled back.
func CollaboratorFailure(err error) *Error {
	return &Error{
		Kind:    KindCollaboratorFailure,
		Message: "A Discord call failed partway through. Anything already changed was left as-is.",
		Err:     err,
	}
}

// Internal wraps an unexpected error behind a generic user-facing message.
func Internal(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: "Something went wrong. Please try again later.",
		Err:     err,
	}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for errors
// that did not originate in this package.
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// UserMessage returns the text safe to show the caller for err.
func UserMessage(err error) string {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "Something went wrong. Please try again later."
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind == kind
	}
	return false
}
