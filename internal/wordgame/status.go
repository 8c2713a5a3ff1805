package wordgame

import "fmt"

// Status is the lifecycle state of a game.
type Status string

const (
	StatusWaiting  Status = "waiting"  // created, no second player yet
	StatusActive   Status = "active"   // both players present, guesses accepted
	StatusPaused   Status = "paused"   // guesses rejected until resumed
	StatusFinished Status = "finished" // word fully revealed
)

var transitions = map[Status][]Status{
	StatusWaiting:  {StatusActive},
	StatusActive:   {StatusPaused, StatusFinished},
	StatusPaused:   {StatusActive},
	StatusFinished: nil,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", fmt.Errorf("unknown game status %q", s)
	}
	return st, nil
}

func (s Status) String() string { return string(s) }

// CanTransitionTo reports whether the state machine allows s → target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}
