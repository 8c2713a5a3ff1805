package wordgame

import "errors"

// Kind classifies a domain failure.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindNotFound
	KindForbidden
	KindInvalidState
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindNotFound:
		return "not found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidState:
		return "invalid state"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a domain failure with a kind and a caller-facing message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func newError(k Kind, msg string) *Error { return &Error{Kind: k, Msg: msg} }

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	ErrInvalidLetter     = newError(KindInvalidInput, "invalid letter")
	ErrInvalidDifficulty = newError(KindInvalidInput, "difficulty must be easy, medium, or hard")
	ErrEmptyWord         = newError(KindInvalidInput, "word cannot be empty")
	ErrMissingField      = newError(KindInvalidInput, "username and password are required")

	ErrGameNotFound   = newError(KindNotFound, "game not found")
	ErrPlayerNotFound = newError(KindNotFound, "player not found")
	ErrNoWords        = newError(KindNotFound, "no words found for this difficulty")

	ErrNotYourTurn    = newError(KindForbidden, "it is not your turn")
	ErrNotParticipant = newError(KindForbidden, "you are not part of this game")
	ErrOwnGame        = newError(KindForbidden, "you cannot join your own game")
	ErrNotCreator     = newError(KindForbidden, "only the creator can cancel this game")

	ErrNotJoinable       = newError(KindInvalidState, "you cannot join this game")
	ErrNotActive         = newError(KindInvalidState, "game is not active")
	ErrNotPaused         = newError(KindInvalidState, "game is not paused")
	ErrNotWaiting        = newError(KindInvalidState, "only waiting games can be cancelled")
	ErrInvalidTransition = newError(KindInvalidState, "invalid status transition")

	ErrGameFull        = newError(KindConflict, "game already has two players")
	ErrAlreadyGuessed  = newError(KindConflict, "letter already guessed")
	ErrConcurrentWrite = newError(KindConflict, "game was modified concurrently, retry")
	ErrUsernameTaken   = newError(KindConflict, "this username has already been taken")
)
