package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zarahshmi/backend-guesswordd/internal/database"
	"github.com/zarahshmi/backend-guesswordd/internal/game"
	"github.com/zarahshmi/backend-guesswordd/internal/migrations"
	"github.com/zarahshmi/backend-guesswordd/internal/wordgame"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Run(ctx, db))
	return New(db)
}

func mustPlayer(t *testing.T, s *Store, name string) wordgame.Player {
	t.Helper()
	p, err := s.CreatePlayer(context.Background(), name, "hash-"+name)
	require.NoError(t, err)
	return p
}

var created = time.Date(2025, 5, 4, 10, 30, 0, 0, time.UTC)

func TestPlayers(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	alice := mustPlayer(t, s, "alice")
	assert.Equal(t, 1, alice.Level)
	assert.Zero(t, alice.Score)

	_, err := s.CreatePlayer(ctx, "alice", "other")
	assert.ErrorIs(t, err, wordgame.ErrUsernameTaken)

	id, hash, err := s.Credentials(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, id)
	assert.Equal(t, "hash-alice", hash)

	_, _, err = s.Credentials(ctx, "nobody")
	assert.ErrorIs(t, err, wordgame.ErrPlayerNotFound)

	_, err = s.Player(ctx, 999)
	assert.ErrorIs(t, err, wordgame.ErrPlayerNotFound)

	got, err := s.Player(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestRankingOrder(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	a := mustPlayer(t, s, "a")
	b := mustPlayer(t, s, "b")
	c := mustPlayer(t, s, "c")
	_, err := s.db.ExecContext(ctx, `UPDATE players SET score = 100, xp = 10 WHERE id IN (?, ?)`, a.ID, c.ID)
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `UPDATE players SET score = 100, xp = 50 WHERE id = ?`, b.ID)
	require.NoError(t, err)

	all, err := s.Players(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{b.ID, a.ID, c.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})

	top, err := s.TopPlayers(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
	assert.Equal(t, b.ID, top[0].ID)
}

func TestWords(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	words := []wordgame.Word{
		{Text: "cat", Difficulty: wordgame.DifficultyEasy},
		{Text: "dog", Difficulty: wordgame.DifficultyEasy},
		{Text: "rhythm", Difficulty: wordgame.DifficultyHard},
	}
	require.NoError(t, s.AddWords(ctx, words))
	require.NoError(t, s.AddWords(ctx, words[:1]))

	n, err := s.CountWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	easy, err := s.Words(ctx, wordgame.DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, words[:2], easy)

	medium, err := s.Words(ctx, wordgame.DifficultyMedium)
	require.NoError(t, err)
	assert.Empty(t, medium)
}

func newGame(t *testing.T, s *Store, creator wordgame.Player, word string) wordgame.Game {
	t.Helper()
	w, err := wordgame.NewWord(word, wordgame.DifficultyEasy)
	require.NoError(t, err)
	g := wordgame.NewGame(wordgame.PlayerRef{ID: creator.ID, Username: creator.Username}, w, created)
	id, err := s.CreateGame(context.Background(), g)
	require.NoError(t, err)
	g.ID = id
	return g
}

type firstRoll struct{}

func (firstRoll) IntN(int) int { return 0 }

func TestGameRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	alice := mustPlayer(t, s, "alice")
	bob := mustPlayer(t, s, "bob")

	g := newGame(t, s, alice, "cat")

	got, err := s.Game(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "cat", got.Word)
	assert.Equal(t, "___", got.Masked)
	assert.Equal(t, wordgame.StatusWaiting, got.Status)
	assert.Equal(t, created, got.CreatedAt)
	assert.Nil(t, got.Player2)
	assert.Equal(t, alice.ID, *got.Turn)

	started := created.Add(time.Minute)
	err = s.ModifyGame(ctx, g.ID, func(_ game.Tx, g *wordgame.Game) error {
		return g.Join(wordgame.PlayerRef{ID: bob.ID, Username: bob.Username}, started, firstRoll{})
	})
	require.NoError(t, err)

	got, err = s.Game(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, wordgame.StatusActive, got.Status)
	require.NotNil(t, got.Player2)
	assert.Equal(t, "bob", got.Player2.Username)
	assert.Equal(t, started, *got.StartedAt)
	assert.Equal(t, 1, got.Version)

	_, err = s.Game(ctx, 12345)
	assert.ErrorIs(t, err, wordgame.ErrGameNotFound)
}

func TestTimestampsRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	alice := mustPlayer(t, s, "alice")
	bob := mustPlayer(t, s, "bob")

	tests := []struct {
		name string
		at   time.Time
	}{
		{name: "whole second", at: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
		{name: "trailing zero millis", at: time.Date(2025, 6, 1, 9, 0, 0, 870*int(time.Millisecond), time.UTC)},
		{name: "full millis", at: time.Date(2025, 6, 1, 9, 0, 0, 123*int(time.Millisecond), time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := wordgame.NewWord("cat", wordgame.DifficultyEasy)
			require.NoError(t, err)
			id, err := s.CreateGame(ctx, wordgame.NewGame(wordgame.PlayerRef{ID: alice.ID, Username: alice.Username}, w, tt.at))
			require.NoError(t, err)

			err = s.ModifyGame(ctx, id, func(_ game.Tx, g *wordgame.Game) error {
				return g.Join(wordgame.PlayerRef{ID: bob.ID, Username: bob.Username}, tt.at, firstRoll{})
			})
			require.NoError(t, err)

			got, err := s.Game(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, tt.at, got.CreatedAt)
			require.NotNil(t, got.StartedAt)
			assert.Equal(t, tt.at, *got.StartedAt)

			_, err = s.db.ExecContext(ctx, `UPDATE players SET created_at = ? WHERE id = ?`, formatTime(tt.at), alice.ID)
			require.NoError(t, err)
			p, err := s.Player(ctx, alice.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.at, p.CreatedAt)

			games, err := s.GamesFor(ctx, bob.ID)
			require.NoError(t, err)
			assert.NotEmpty(t, games)
		})
	}
}

func TestModifyGameRollsBack(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	alice := mustPlayer(t, s, "alice")
	g := newGame(t, s, alice, "cat")

	boom := errors.New("boom")
	err := s.ModifyGame(ctx, g.ID, func(tx game.Tx, g *wordgame.Game) error {
		g.Masked = "c__"
		if err := tx.SavePlayer(ctx, alice.Credit(500)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Game(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "___", got.Masked)
	p, err := s.Player(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, p.Score)

	err = s.ModifyGame(ctx, 999, func(game.Tx, *wordgame.Game) error { return nil })
	assert.ErrorIs(t, err, wordgame.ErrGameNotFound)
}

func TestModifyGameVersionConflict(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	alice := mustPlayer(t, s, "alice")
	g := newGame(t, s, alice, "cat")

	// Simulate another process bumping the version.
	err := s.ModifyGame(ctx, g.ID, func(tx game.Tx, g *wordgame.Game) error {
		_, err := tx.(*gameTx).tx.ExecContext(ctx, `UPDATE games SET version = version + 1 WHERE id = ?`, g.ID)
		return err
	})
	assert.ErrorIs(t, err, wordgame.ErrConcurrentWrite)
	assert.Equal(t, wordgame.KindConflict, wordgame.KindOf(err))
}

func TestGuessesAndDelete(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	alice := mustPlayer(t, s, "alice")
	g := newGame(t, s, alice, "cat")

	err := s.ModifyGame(ctx, g.ID, func(tx game.Tx, g *wordgame.Game) error {
		if err := tx.AddGuess(ctx, wordgame.Guess{GameID: g.ID, PlayerID: alice.ID, Letter: 'c', Correct: true, GuessedAt: created}); err != nil {
			return err
		}
		if err := tx.AddGuess(ctx, wordgame.Guess{GameID: g.ID, PlayerID: alice.ID, Letter: 'é', GuessedAt: created}); err != nil {
			return err
		}
		guessed, err := tx.GuessedLetters(ctx, g.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, map[rune]bool{'c': true, 'é': true}, guessed)

		return tx.AddGuess(ctx, wordgame.Guess{GameID: g.ID, PlayerID: alice.ID, Letter: 'c', GuessedAt: created})
	})
	assert.ErrorIs(t, err, wordgame.ErrAlreadyGuessed)

	err = s.ModifyGame(ctx, g.ID, func(tx game.Tx, g *wordgame.Game) error {
		return tx.DeleteGame(ctx, g.ID)
	})
	require.NoError(t, err)

	_, err = s.Game(ctx, g.ID)
	assert.ErrorIs(t, err, wordgame.ErrGameNotFound)
}

func TestGameQueries(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	alice := mustPlayer(t, s, "alice")
	bob := mustPlayer(t, s, "bob")
	carol := mustPlayer(t, s, "carol")

	waiting := newGame(t, s, alice, "cat")
	active := newGame(t, s, bob, "dog")
	finished := newGame(t, s, carol, "sun")

	join := func(id int64, p wordgame.Player, at time.Time) {
		t.Helper()
		err := s.ModifyGame(ctx, id, func(_ game.Tx, g *wordgame.Game) error {
			return g.Join(wordgame.PlayerRef{ID: p.ID, Username: p.Username}, at, firstRoll{})
		})
		require.NoError(t, err)
	}
	join(active.ID, carol, created.Add(2*time.Hour))
	join(finished.ID, bob, created.Add(time.Hour))
	_, err := s.db.ExecContext(ctx, `UPDATE games SET status = 'finished' WHERE id = ?`, finished.ID)
	require.NoError(t, err)

	open, err := s.OpenGames(ctx, carol.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{waiting.ID, active.ID}, ids(open))

	open, err = s.OpenGames(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{waiting.ID}, ids(open))

	fin, err := s.FinishedGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{finished.ID}, ids(fin))

	bobs, err := s.GamesFor(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{active.ID, finished.ID}, ids(bobs))

	alices, err := s.GamesFor(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{waiting.ID}, ids(alices))
}

func ids(games []wordgame.Game) []int64 {
	out := make([]int64, len(games))
	for i, g := range games {
		out[i] = g.ID
	}
	return out
}
