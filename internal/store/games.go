package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/zarahshmi/backend-guesswordd/internal/game"
	"github.com/zarahshmi/backend-guesswordd/internal/wordgame"
)

const selectGame = `
	SELECT g.id, g.player1_id, p1.username, g.player2_id, p2.username,
		g.player1_score, g.player2_score, g.word, g.masked_word, g.difficulty,
		g.status, g.created_at, g.started_at, g.turn_id, g.version
	FROM games g
	JOIN players p1 ON p1.id = g.player1_id
	LEFT JOIN players p2 ON p2.id = g.player2_id`

func scanGame(row scanner) (wordgame.Game, error) {
	var (
		g               wordgame.Game
		p2ID, turn      sql.NullInt64
		p2Name, started sql.NullString
		difficulty      string
		status, created string
	)
	err := row.Scan(
		&g.ID, &g.Player1.ID, &g.Player1.Username, &p2ID, &p2Name,
		&g.Player1Score, &g.Player2Score, &g.Word, &g.Masked, &difficulty,
		&status, &created, &started, &turn, &g.Version,
	)
	if err != nil {
		return wordgame.Game{}, err
	}

	if g.Status, err = wordgame.ParseStatus(status); err != nil {
		return wordgame.Game{}, err
	}
	if g.Difficulty, err = wordgame.ParseDifficulty(difficulty); err != nil {
		return wordgame.Game{}, fmt.Errorf("game %d: %w", g.ID, err)
	}
	if g.CreatedAt, err = parseTime(created); err != nil {
		return wordgame.Game{}, err
	}
	if p2ID.Valid {
		g.Player2 = &wordgame.PlayerRef{ID: p2ID.Int64, Username: p2Name.String}
	}
	if started.Valid {
		t, err := parseTime(started.String)
		if err != nil {
			return wordgame.Game{}, err
		}
		g.StartedAt = &t
	}
	if turn.Valid {
		id := turn.Int64
		g.Turn = &id
	}
	return g, nil
}

func (s *Store) listGames(ctx context.Context, where string, args ...any) ([]wordgame.Game, error) {
	rows, err := s.db.QueryContext(ctx, selectGame+" "+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []wordgame.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func nullable(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func nullableTime(g *wordgame.Game) any {
	if g.StartedAt == nil {
		return nil
	}
	return formatTime(*g.StartedAt)
}

func (s *Store) CreateGame(ctx context.Context, g wordgame.Game) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO games (player1_id, word, masked_word, difficulty, status, created_at, turn_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`, g.Player1.ID, g.Word, g.Masked, string(g.Difficulty), string(g.Status),
		formatTime(g.CreatedAt), nullable(g.Turn),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting game: %w", err)
	}
	return id, nil
}

func (s *Store) Game(ctx context.Context, id int64) (wordgame.Game, error) {
	g, err := scanGame(s.db.QueryRowContext(ctx, selectGame+` WHERE g.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return wordgame.Game{}, wordgame.ErrGameNotFound
	}
	return g, err
}

func (s *Store) GamesFor(ctx context.Context, playerID int64) ([]wordgame.Game, error) {
	return s.listGames(ctx,
		`WHERE g.player1_id = ? OR g.player2_id = ? ORDER BY g.started_at DESC, g.id DESC`,
		playerID, playerID,
	)
}

func (s *Store) FinishedGames(ctx context.Context) ([]wordgame.Game, error) {
	return s.listGames(ctx, `WHERE g.status = 'finished' ORDER BY g.id`)
}

func (s *Store) OpenGames(ctx context.Context, playerID int64) ([]wordgame.Game, error) {
	return s.listGames(ctx, `
		WHERE (g.status = 'waiting' AND g.player2_id IS NULL)
		   OR (g.status = 'active' AND (g.player1_id = ? OR g.player2_id = ?))
		ORDER BY g.created_at DESC, g.id DESC`,
		playerID, playerID,
	)
}

// ModifyGame loads a game, applies fn, and saves it in a transaction. The
// write is conditional on the version read, so a concurrent writer makes
// it fail with wordgame.ErrConcurrentWrite.
func (s *Store) ModifyGame(ctx context.Context, id int64, fn func(game.Tx, *wordgame.Game) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	g, err := scanGame(tx.QueryRowContext(ctx, selectGame+` WHERE g.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return wordgame.ErrGameNotFound
	}
	if err != nil {
		return err
	}

	gtx := &gameTx{tx: tx}
	if err := fn(gtx, &g); err != nil {
		return err
	}

	if !gtx.deleted {
		var p2 *int64
		if g.Player2 != nil {
			p2 = &g.Player2.ID
		}
		result, err := tx.ExecContext(ctx, `
			UPDATE games SET player2_id = ?, player1_score = ?, player2_score = ?,
				masked_word = ?, status = ?, started_at = ?, turn_id = ?,
				version = version + 1
			WHERE id = ? AND version = ?
		`, nullable(p2), g.Player1Score, g.Player2Score,
			g.Masked, string(g.Status), nullableTime(&g), nullable(g.Turn),
			id, g.Version,
		)
		if err != nil {
			return fmt.Errorf("updating game %d: %w", id, err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return wordgame.ErrConcurrentWrite
		}
	}

	return tx.Commit()
}

// gameTx implements game.Tx on an open transaction.
type gameTx struct {
	tx      *sql.Tx
	deleted bool
}

func (t *gameTx) GuessedLetters(ctx context.Context, gameID int64) (map[rune]bool, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT letter FROM guesses WHERE game_id = ?`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guessed := make(map[rune]bool)
	for rows.Next() {
		var letter string
		if err := rows.Scan(&letter); err != nil {
			return nil, err
		}
		r, _ := utf8.DecodeRuneInString(letter)
		guessed[r] = true
	}
	return guessed, rows.Err()
}

func (t *gameTx) AddGuess(ctx context.Context, g wordgame.Guess) error {
	correct := 0
	if g.Correct {
		correct = 1
	}
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO guesses (game_id, player_id, letter, correct, guessed_at)
		VALUES (?, ?, ?, ?, ?)
	`, g.GameID, g.PlayerID, string(g.Letter), correct, formatTime(g.GuessedAt))
	if isUniqueViolation(err) {
		return wordgame.ErrAlreadyGuessed
	}
	return err
}

func (t *gameTx) Player(ctx context.Context, id int64) (wordgame.Player, error) {
	return getPlayer(ctx, t.tx, id)
}

func (t *gameTx) SavePlayer(ctx context.Context, p wordgame.Player) error {
	result, err := t.tx.ExecContext(ctx,
		`UPDATE players SET score = ?, xp = ?, level = ? WHERE id = ?`,
		p.Score, p.XP, p.Level, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating player %d: %w", p.ID, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return wordgame.ErrPlayerNotFound
	}
	return nil
}

func (t *gameTx) DeleteGame(ctx context.Context, id int64) error {
	result, err := t.tx.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return wordgame.ErrGameNotFound
	}
	t.deleted = true
	return nil
}
