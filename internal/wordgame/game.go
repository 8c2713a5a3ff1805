package wordgame

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	maskRune = '_'

	// GuessPoints is added for a correct guess and subtracted (down to
	// zero) for an incorrect one.
	GuessPoints = 20
)

// Game is a two-player round over a single hidden word.
type Game struct {
	ID           int64
	Player1      PlayerRef
	Player2      *PlayerRef
	Player1Score int
	Player2Score int
	Word         string
	Masked       string
	Difficulty   Difficulty
	Status       Status
	CreatedAt    time.Time
	StartedAt    *time.Time

	// Turn is the player to move. After a finish it holds the winner, or
	// nil on a draw.
	Turn *int64

	// Version increases on every persisted write.
	Version int
}

// NewGame builds a waiting game owned by creator with a fully masked word.
func NewGame(creator PlayerRef, w Word, now time.Time) Game {
	turn := creator.ID
	return Game{
		Player1:    creator,
		Word:       w.Text,
		Masked:     strings.Repeat(string(maskRune), utf8.RuneCountInString(w.Text)),
		Difficulty: w.Difficulty,
		Status:     StatusWaiting,
		CreatedAt:  now,
		Turn:       &turn,
	}
}

// WordLength is the number of letters in the hidden word.
func (g *Game) WordLength() int { return utf8.RuneCountInString(g.Word) }

func (g *Game) IsParticipant(playerID int64) bool {
	return g.Player1.ID == playerID || (g.Player2 != nil && g.Player2.ID == playerID)
}

// ScoreOf returns the per-game score of a participant.
func (g *Game) ScoreOf(playerID int64) int {
	if g.Player1.ID == playerID {
		return g.Player1Score
	}
	if g.Player2 != nil && g.Player2.ID == playerID {
		return g.Player2Score
	}
	return 0
}

// Opponent returns the other participant, or nil when there is none yet.
func (g *Game) Opponent(playerID int64) *PlayerRef {
	if g.Player1.ID == playerID {
		return g.Player2
	}
	if g.Player2 != nil && g.Player2.ID == playerID {
		p1 := g.Player1
		return &p1
	}
	return nil
}

// TurnUsername returns the username of the player to move, if any.
func (g *Game) TurnUsername() *string {
	if g.Turn == nil {
		return nil
	}
	if *g.Turn == g.Player1.ID {
		return &g.Player1.Username
	}
	if g.Player2 != nil && *g.Turn == g.Player2.ID {
		return &g.Player2.Username
	}
	return nil
}

// TransitionTo moves the game to target if the state machine allows it.
func (g *Game) TransitionTo(target Status) error {
	if !g.Status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	g.Status = target
	return nil
}

// Join seats joiner as the second player and starts the game. The first
// turn is drawn from rnd. A taken second seat fails with ErrGameFull.
func (g *Game) Join(joiner PlayerRef, now time.Time, rnd Rand) error {
	if g.Status == StatusFinished {
		return ErrNotJoinable
	}
	if g.Player1.ID == joiner.ID {
		return ErrOwnGame
	}
	if g.Player2 != nil {
		return ErrGameFull
	}
	if g.Status != StatusWaiting {
		return ErrNotJoinable
	}
	if err := g.TransitionTo(StatusActive); err != nil {
		return err
	}

	g.Player2 = &joiner
	g.StartedAt = &now
	first := g.Player1.ID
	if rnd.IntN(2) == 1 {
		first = joiner.ID
	}
	g.Turn = &first
	return nil
}

func (g *Game) Pause(actor int64) error {
	if !g.IsParticipant(actor) {
		return ErrNotParticipant
	}
	if g.Status != StatusActive {
		return ErrNotActive
	}
	return g.TransitionTo(StatusPaused)
}

func (g *Game) Resume(actor int64) error {
	if !g.IsParticipant(actor) {
		return ErrNotParticipant
	}
	if g.Status != StatusPaused {
		return ErrNotPaused
	}
	return g.TransitionTo(StatusActive)
}

// CheckCancel reports whether actor may cancel the game.
func (g *Game) CheckCancel(actor int64) error {
	if g.Player1.ID != actor {
		return ErrNotCreator
	}
	if g.Status != StatusWaiting {
		return ErrNotWaiting
	}
	return nil
}

// ParseLetter validates a guess: exactly one letter, returned lowercased.
func ParseLetter(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) || !unicode.IsLetter(r) {
		return 0, ErrInvalidLetter
	}
	return unicode.ToLower(r), nil
}

// GuessResult describes what an accepted guess did.
type GuessResult struct {
	Guess    Guess
	Finished bool
	// Winner is set when the guess finished the game with a strict
	// score leader.
	Winner *int64
}

// Guess applies a letter guess by actor. guessed holds every letter
// already guessed in this game. On success the game is mutated in place:
// masked word, actor's score, and either the turn handoff or the finish.
func (g *Game) Guess(actor int64, letter rune, guessed map[rune]bool, now time.Time) (GuessResult, error) {
	if g.Status != StatusActive {
		return GuessResult{}, ErrNotActive
	}
	if g.Turn == nil || *g.Turn != actor {
		return GuessResult{}, ErrNotYourTurn
	}
	if guessed[letter] {
		return GuessResult{}, ErrAlreadyGuessed
	}

	word := []rune(g.Word)
	masked := []rune(g.Masked)
	correct := false
	for i, c := range word {
		if c == letter {
			masked[i] = letter
			correct = true
		}
	}
	g.Masked = string(masked)

	score := &g.Player2Score
	if actor == g.Player1.ID {
		score = &g.Player1Score
	}
	if correct {
		*score += GuessPoints
	} else {
		*score = max(0, *score-GuessPoints)
	}

	res := GuessResult{
		Guess: Guess{
			GameID:    g.ID,
			PlayerID:  actor,
			Letter:    letter,
			Correct:   correct,
			GuessedAt: now,
		},
	}

	if g.Masked == g.Word {
		if err := g.TransitionTo(StatusFinished); err != nil {
			return GuessResult{}, err
		}
		g.Turn = g.leader()
		res.Finished = true
		res.Winner = g.Turn
		return res, nil
	}

	next := g.Player1.ID
	if actor == g.Player1.ID {
		next = g.Player2.ID
	}
	g.Turn = &next
	return res, nil
}

// leader returns the player with the strictly higher per-game score.
func (g *Game) leader() *int64 {
	switch {
	case g.Player1Score > g.Player2Score:
		id := g.Player1.ID
		return &id
	case g.Player2Score > g.Player1Score && g.Player2 != nil:
		id := g.Player2.ID
		return &id
	}
	return nil
}
