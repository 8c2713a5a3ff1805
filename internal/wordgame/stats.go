package wordgame

import (
	"cmp"
	"math"
	"slices"
	"strconv"
)

type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "lose"
	OutcomeDraw Outcome = "draw"
)

// OutcomeFor returns how a finished game ended for playerID. Unfinished
// games and non-participants yield OutcomeNone.
func (g *Game) OutcomeFor(playerID int64) Outcome {
	if g.Status != StatusFinished || !g.IsParticipant(playerID) {
		return OutcomeNone
	}
	mine := g.ScoreOf(playerID)
	theirs := g.Player1Score
	if g.Player1.ID == playerID {
		theirs = g.Player2Score
	}
	switch {
	case mine > theirs:
		return OutcomeWin
	case mine < theirs:
		return OutcomeLoss
	}
	return OutcomeDraw
}

// Record is a player's tally over finished games.
type Record struct {
	Played int
	Wins   int
	Losses int
	Draws  int
}

// Tally counts outcomes for playerID over games. Unfinished games are
// skipped; draws count as played but neither won nor lost.
func Tally(games []Game, playerID int64) Record {
	var r Record
	for i := range games {
		switch games[i].OutcomeFor(playerID) {
		case OutcomeWin:
			r.Wins++
		case OutcomeLoss:
			r.Losses++
		case OutcomeDraw:
			r.Draws++
		default:
			continue
		}
		r.Played++
	}
	return r
}

// WinRate is wins over played as a percentage string rounded to two
// decimals, e.g. "0%", "50%", "66.67%".
func (r Record) WinRate() string {
	if r.Played == 0 {
		return "0%"
	}
	pct := float64(r.Wins) / float64(r.Played) * 100
	pct = math.Round(pct*100) / 100
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

func compareRanking(a, b Player) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(b.XP, a.XP); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortRanking orders players by score desc, then XP desc, then ID asc.
func SortRanking(players []Player) {
	slices.SortFunc(players, compareRanking)
}

// Rank is the 1-based position of playerID in the ranking order, or 0 if
// the player is absent.
func Rank(players []Player, playerID int64) int {
	sorted := slices.Clone(players)
	SortRanking(sorted)
	for i, p := range sorted {
		if p.ID == playerID {
			return i + 1
		}
	}
	return 0
}

// Profile is a read-only view of a player's progression and record.
type Profile struct {
	Player  Player
	Record  Record
	WinRate string
	Rank    int
}

// NewProfile builds the profile of p from its games and the full player
// set used for ranking.
func NewProfile(p Player, games []Game, players []Player) Profile {
	rec := Tally(games, p.ID)
	return Profile{
		Player:  p,
		Record:  rec,
		WinRate: rec.WinRate(),
		Rank:    Rank(players, p.ID),
	}
}

// HistoryEntry is a game seen from one participant's side.
type HistoryEntry struct {
	Game          Game
	Opponent      *PlayerRef
	Result        Outcome
	YourScore     int
	OpponentScore int
}

func NewHistoryEntry(g Game, playerID int64) HistoryEntry {
	e := HistoryEntry{
		Game:      g,
		Opponent:  g.Opponent(playerID),
		Result:    g.OutcomeFor(playerID),
		YourScore: g.ScoreOf(playerID),
	}
	if e.Opponent != nil {
		e.OpponentScore = g.ScoreOf(e.Opponent.ID)
	}
	return e
}
