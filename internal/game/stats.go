package game

import (
	"context"

	"github.com/zarahshmi/backend-guesswordd/internal/wordgame"
)

// DefaultLeaderboardSize is used when a non-positive limit is requested.
const DefaultLeaderboardSize = 10

type LeaderboardEntry struct {
	Player  wordgame.Player
	WinRate string
	Rank    int
}

// Leaderboard returns the top limit players by score, then XP.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	top, err := s.store.TopPlayers(ctx, limit)
	if err != nil {
		return nil, err
	}
	finished, err := s.store.FinishedGames(ctx)
	if err != nil {
		return nil, err
	}

	// The top slice is a prefix of the full ranking, so position is rank.
	wordgame.SortRanking(top)
	entries := make([]LeaderboardEntry, len(top))
	for i, p := range top {
		entries[i] = LeaderboardEntry{
			Player:  p,
			WinRate: wordgame.Tally(finished, p.ID).WinRate(),
			Rank:    i + 1,
		}
	}
	return entries, nil
}

func (s *Service) Profile(ctx context.Context, playerID int64) (wordgame.Profile, error) {
	p, err := s.store.Player(ctx, playerID)
	if err != nil {
		return wordgame.Profile{}, err
	}
	games, err := s.store.GamesFor(ctx, playerID)
	if err != nil {
		return wordgame.Profile{}, err
	}
	players, err := s.store.Players(ctx)
	if err != nil {
		return wordgame.Profile{}, err
	}
	return wordgame.NewProfile(p, games, players), nil
}

// History returns every game of playerID from their side.
func (s *Service) History(ctx context.Context, playerID int64) ([]wordgame.HistoryEntry, error) {
	games, err := s.store.GamesFor(ctx, playerID)
	if err != nil {
		return nil, err
	}
	entries := make([]wordgame.HistoryEntry, len(games))
	for i, g := range games {
		entries[i] = wordgame.NewHistoryEntry(g, playerID)
	}
	return entries, nil
}
