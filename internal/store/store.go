// Package store persists players, words, games and guesses in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zarahshmi/backend-guesswordd/internal/wordgame"
)

const timeFormat = "2006-01-02T15:04:05.000Z"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

// parseTime accepts any RFC 3339 layout. libSQL returns datetime-looking
// TEXT as time.Time, which database/sql renders without trailing zeros.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Players

const selectPlayer = `SELECT id, username, score, xp, level, created_at FROM players`

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (wordgame.Player, error) {
	var (
		p       wordgame.Player
		created string
	)
	if err := row.Scan(&p.ID, &p.Username, &p.Score, &p.XP, &p.Level, &created); err != nil {
		return wordgame.Player{}, err
	}
	t, err := parseTime(created)
	if err != nil {
		return wordgame.Player{}, err
	}
	p.CreatedAt = t
	return p, nil
}

// CreatePlayer registers a new player at level 1 with no score.
func (s *Store) CreatePlayer(ctx context.Context, username, passwordHash string) (wordgame.Player, error) {
	now := time.Now()
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO players (username, password_hash, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`, username, passwordHash, formatTime(now)).Scan(&id)
	if isUniqueViolation(err) {
		return wordgame.Player{}, wordgame.ErrUsernameTaken
	}
	if err != nil {
		return wordgame.Player{}, fmt.Errorf("inserting player: %w", err)
	}
	created, _ := parseTime(formatTime(now))
	return wordgame.Player{ID: id, Username: username, Level: 1, CreatedAt: created}, nil
}

// Credentials returns the id and bcrypt hash stored for username.
func (s *Store) Credentials(ctx context.Context, username string) (int64, string, error) {
	var (
		id   int64
		hash string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM players WHERE username = ?`, username,
	).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", wordgame.ErrPlayerNotFound
	}
	return id, hash, err
}

func getPlayer(ctx context.Context, q querier, id int64) (wordgame.Player, error) {
	p, err := scanPlayer(q.QueryRowContext(ctx, selectPlayer+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return wordgame.Player{}, wordgame.ErrPlayerNotFound
	}
	return p, err
}

func (s *Store) Player(ctx context.Context, id int64) (wordgame.Player, error) {
	return getPlayer(ctx, s.db, id)
}

func (s *Store) listPlayers(ctx context.Context, query string, args ...any) ([]wordgame.Player, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []wordgame.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

const rankingOrder = ` ORDER BY score DESC, xp DESC, id ASC`

func (s *Store) Players(ctx context.Context) ([]wordgame.Player, error) {
	return s.listPlayers(ctx, selectPlayer+rankingOrder)
}

func (s *Store) TopPlayers(ctx context.Context, limit int) ([]wordgame.Player, error) {
	return s.listPlayers(ctx, selectPlayer+rankingOrder+` LIMIT ?`, limit)
}

// Words

func (s *Store) Words(ctx context.Context, d wordgame.Difficulty) ([]wordgame.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT text FROM words WHERE difficulty = ? ORDER BY id`, string(d),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []wordgame.Word
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		words = append(words, wordgame.Word{Text: text, Difficulty: d})
	}
	return words, rows.Err()
}

func (s *Store) CountWords(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&n)
	return n, err
}

// AddWords inserts words, skipping any already present.
func (s *Store) AddWords(ctx context.Context, words []wordgame.Word) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, w := range words {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO words (text, difficulty) VALUES (?, ?)`,
			w.Text, string(w.Difficulty),
		); err != nil {
			return fmt.Errorf("inserting word %q: %w", w.Text, err)
		}
	}
	return tx.Commit()
}
