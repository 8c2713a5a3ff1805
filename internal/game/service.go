// Package game runs game operations against persistent state. Each
// operation is one transaction; the rules themselves live in wordgame.
package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/zarahshmi/backend-guesswordd/internal/wordgame"
)

// Store is the persistence port used by Service.
type Store interface {
	Player(ctx context.Context, id int64) (wordgame.Player, error)
	// Players returns every player in ranking order.
	Players(ctx context.Context) ([]wordgame.Player, error)
	TopPlayers(ctx context.Context, limit int) ([]wordgame.Player, error)

	CreateGame(ctx context.Context, g wordgame.Game) (int64, error)
	Game(ctx context.Context, id int64) (wordgame.Game, error)
	// ModifyGame loads a game, applies fn, and saves it in one
	// transaction. An error from fn rolls everything back.
	ModifyGame(ctx context.Context, id int64, fn func(tx Tx, g *wordgame.Game) error) error

	// GamesFor returns every game playerID takes part in, most recently
	// started first.
	GamesFor(ctx context.Context, playerID int64) ([]wordgame.Game, error)
	FinishedGames(ctx context.Context) ([]wordgame.Game, error)
	// OpenGames returns joinable games plus active games of playerID.
	OpenGames(ctx context.Context, playerID int64) ([]wordgame.Game, error)
}

// Tx is the part of the store reachable from inside ModifyGame.
type Tx interface {
	GuessedLetters(ctx context.Context, gameID int64) (map[rune]bool, error)
	AddGuess(ctx context.Context, g wordgame.Guess) error
	Player(ctx context.Context, id int64) (wordgame.Player, error)
	SavePlayer(ctx context.Context, p wordgame.Player) error
	// DeleteGame removes the game being modified; it is not saved back.
	DeleteGame(ctx context.Context, id int64) error
}

type WordPicker interface {
	Pick(ctx context.Context, d wordgame.Difficulty) (wordgame.Word, error)
}

type Service struct {
	store  Store
	words  WordPicker
	rnd    wordgame.Rand
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, words WordPicker, rnd wordgame.Rand, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		words:  words,
		rnd:    rnd,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Created struct {
	GameID     int64
	WordLength int
	Difficulty wordgame.Difficulty
}

// Create starts a waiting game for actor on a random word.
func (s *Service) Create(ctx context.Context, actor int64, difficulty string) (Created, error) {
	d, err := wordgame.ParseDifficulty(difficulty)
	if err != nil {
		return Created{}, err
	}

	p, err := s.store.Player(ctx, actor)
	if err != nil {
		return Created{}, err
	}

	w, err := s.words.Pick(ctx, d)
	if err != nil {
		return Created{}, err
	}

	g := wordgame.NewGame(wordgame.PlayerRef{ID: p.ID, Username: p.Username}, w, s.now())
	id, err := s.store.CreateGame(ctx, g)
	if err != nil {
		return Created{}, err
	}

	s.logger.Info("game created", "game_id", id, "player_id", actor, "difficulty", d)
	return Created{GameID: id, WordLength: g.WordLength(), Difficulty: d}, nil
}

// Join seats actor as the second player.
func (s *Service) Join(ctx context.Context, actor, gameID int64) (wordgame.Game, error) {
	var joined wordgame.Game
	err := s.store.ModifyGame(ctx, gameID, func(tx Tx, g *wordgame.Game) error {
		p, err := tx.Player(ctx, actor)
		if err != nil {
			return err
		}
		if err := g.Join(wordgame.PlayerRef{ID: p.ID, Username: p.Username}, s.now(), s.rnd); err != nil {
			return err
		}
		joined = *g
		return nil
	})
	if err != nil {
		return wordgame.Game{}, err
	}

	s.logger.Info("game joined", "game_id", gameID, "player_id", actor, "turn", *joined.Turn)
	return joined, nil
}

func (s *Service) Pause(ctx context.Context, actor, gameID int64) error {
	return s.store.ModifyGame(ctx, gameID, func(_ Tx, g *wordgame.Game) error {
		return g.Pause(actor)
	})
}

func (s *Service) Resume(ctx context.Context, actor, gameID int64) error {
	return s.store.ModifyGame(ctx, gameID, func(_ Tx, g *wordgame.Game) error {
		return g.Resume(actor)
	})
}

// Cancel deletes a waiting game on behalf of its creator.
func (s *Service) Cancel(ctx context.Context, actor, gameID int64) error {
	err := s.store.ModifyGame(ctx, gameID, func(tx Tx, g *wordgame.Game) error {
		if err := g.CheckCancel(actor); err != nil {
			return err
		}
		return tx.DeleteGame(ctx, g.ID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("game cancelled", "game_id", gameID, "player_id", actor)
	return nil
}

// Status returns a game to one of its participants.
func (s *Service) Status(ctx context.Context, actor, gameID int64) (wordgame.Game, error) {
	g, err := s.store.Game(ctx, gameID)
	if err != nil {
		return wordgame.Game{}, err
	}
	if !g.IsParticipant(actor) {
		return wordgame.Game{}, wordgame.ErrNotParticipant
	}
	return g, nil
}

// Waiting lists games actor can join or is currently playing.
func (s *Service) Waiting(ctx context.Context, actor int64) ([]wordgame.Game, error) {
	return s.store.OpenGames(ctx, actor)
}

type GuessOutcome struct {
	Masked    string
	Correct   bool
	NextTurn  *string
	Status    wordgame.Status
	YourScore int
}

// Guess submits a letter for actor. Completing the word finishes the game
// and credits both players in the same transaction.
func (s *Service) Guess(ctx context.Context, actor, gameID int64, letter string) (GuessOutcome, error) {
	l, err := wordgame.ParseLetter(letter)
	if err != nil {
		return GuessOutcome{}, err
	}

	var (
		out    GuessOutcome
		result wordgame.GuessResult
	)
	err = s.store.ModifyGame(ctx, gameID, func(tx Tx, g *wordgame.Game) error {
		guessed, err := tx.GuessedLetters(ctx, g.ID)
		if err != nil {
			return err
		}

		result, err = g.Guess(actor, l, guessed, s.now())
		if err != nil {
			return err
		}
		if err := tx.AddGuess(ctx, result.Guess); err != nil {
			return err
		}

		if result.Finished {
			if err := credit(ctx, tx, g); err != nil {
				return err
			}
		}

		out = GuessOutcome{
			Masked:    g.Masked,
			Correct:   result.Guess.Correct,
			Status:    g.Status,
			YourScore: g.ScoreOf(actor),
		}
		if !result.Finished {
			out.NextTurn = g.TurnUsername()
		}
		return nil
	})
	if err != nil {
		return GuessOutcome{}, err
	}

	s.logger.Debug("guess accepted", "game_id", gameID, "player_id", actor, "correct", out.Correct)
	if result.Finished {
		s.logger.Info("game finished", "game_id", gameID, "draw", result.Winner == nil)
	}
	return out, nil
}

// credit adds each player's per-game score to their progression.
func credit(ctx context.Context, tx Tx, g *wordgame.Game) error {
	ids := []int64{g.Player1.ID}
	if g.Player2 != nil {
		ids = append(ids, g.Player2.ID)
	}
	for _, id := range ids {
		p, err := tx.Player(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.SavePlayer(ctx, p.Credit(g.ScoreOf(id))); err != nil {
			return err
		}
	}
	return nil
}
