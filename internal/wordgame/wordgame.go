// Package wordgame defines the core domain types and rules of the game:
// the game state machine, the guess engine, player progression and the
// stats derived from finished games. It performs no I/O.
package wordgame

import (
	"strings"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every valid difficulty, easiest first.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty accepts a difficulty name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", ErrInvalidDifficulty
}

type Player struct {
	ID        int64
	Username  string
	Score     int
	XP        int
	Level     int
	CreatedAt time.Time
}

// PlayerRef is a player as seen from inside a game.
type PlayerRef struct {
	ID       int64
	Username string
}

type Word struct {
	Text       string
	Difficulty Difficulty
}

// NewWord normalizes text to lowercase and rejects empty words.
func NewWord(text string, d Difficulty) (Word, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return Word{}, ErrEmptyWord
	}
	return Word{Text: text, Difficulty: d}, nil
}

// Guess is an accepted letter guess. Guesses are never modified.
type Guess struct {
	GameID    int64
	PlayerID  int64
	Letter    rune
	Correct   bool
	GuessedAt time.Time
}
