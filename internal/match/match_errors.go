package match

import "fmt"

// ErrorKind tags engine failures so callers can branch on them.
type ErrorKind string

const (
	KindMatchNotFound    ErrorKind = "match_not_found"
	KindStateNotFound    ErrorKind = "state_not_found"
	KindInvalidOperation ErrorKind = "invalid_operation"
	KindNothingToUndo    ErrorKind = "nothing_to_undo"
	KindPlayerNotFound   ErrorKind = "player_not_found"
)

// Error is returned by every failing engine operation. A failing
// operation never leaves the snapshot modified.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches any *Error of the same kind when target carries no message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrMatchNotFound    = &Error{Kind: KindMatchNotFound}
	ErrStateNotFound    = &Error{Kind: KindStateNotFound}
	ErrInvalidOperation = &Error{Kind: KindInvalidOperation}
	ErrNothingToUndo    = &Error{Kind: KindNothingToUndo}
	ErrPlayerNotFound   = &Error{Kind: KindPlayerNotFound}
)

func invalidf(format string, args ...any) error {
	return &Error{Kind: KindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

func playerNotFound(id string) error {
	return &Error{Kind: KindPlayerNotFound, Message: fmt.Sprintf("player %s not found", id)}
}
