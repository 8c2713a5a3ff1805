package wordgame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name              string
		xp, level, gained int
		wantXP, wantLevel int
	}{
		{name: "no gain", xp: 10, level: 1, gained: 0, wantXP: 10, wantLevel: 1},
		{name: "below threshold", xp: 40, level: 2, gained: 40, wantXP: 80, wantLevel: 2},
		{name: "exact threshold", xp: 60, level: 1, gained: 40, wantXP: 0, wantLevel: 2},
		{name: "crosses a level", xp: 95, level: 1, gained: 30, wantXP: 25, wantLevel: 2},
		{name: "multiple levels", xp: 50, level: 3, gained: 260, wantXP: 10, wantLevel: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xp, level := Progress(tt.xp, tt.level, tt.gained)
			assert.Equal(t, tt.wantXP, xp)
			assert.Equal(t, tt.wantLevel, level)
			assert.Less(t, xp, XPPerLevel)
			assert.Equal(t, tt.level+(tt.xp+tt.gained)/XPPerLevel, level)
		})
	}
}

func TestCredit(t *testing.T) {
	p := Player{ID: 1, Score: 300, XP: 95, Level: 4}

	got := p.Credit(30)

	assert.Equal(t, Player{ID: 1, Score: 330, XP: 25, Level: 5}, got)
	assert.Equal(t, 300, p.Score, "Credit must not mutate the receiver")
}

func finished(p1, p2 int64, s1, s2 int) Game {
	return Game{
		Player1:      PlayerRef{ID: p1},
		Player2:      &PlayerRef{ID: p2},
		Player1Score: s1,
		Player2Score: s2,
		Status:       StatusFinished,
	}
}

func TestOutcomeFor(t *testing.T) {
	g := finished(1, 2, 40, 20)
	assert.Equal(t, OutcomeWin, g.OutcomeFor(1))
	assert.Equal(t, OutcomeLoss, g.OutcomeFor(2))
	assert.Equal(t, OutcomeNone, g.OutcomeFor(3))

	draw := finished(1, 2, 20, 20)
	assert.Equal(t, OutcomeDraw, draw.OutcomeFor(1))

	active := finished(1, 2, 40, 0)
	active.Status = StatusActive
	assert.Equal(t, OutcomeNone, active.OutcomeFor(1))
}

func TestTallyAndWinRate(t *testing.T) {
	tests := []struct {
		name  string
		games []Game
		want  Record
		rate  string
	}{
		{name: "no games", want: Record{}, rate: "0%"},
		{
			name:  "all wins",
			games: []Game{finished(1, 2, 40, 0), finished(3, 1, 0, 20)},
			want:  Record{Played: 2, Wins: 2},
			rate:  "100%",
		},
		{
			name:  "one win one loss",
			games: []Game{finished(1, 2, 40, 0), finished(1, 2, 0, 40)},
			want:  Record{Played: 2, Wins: 1, Losses: 1},
			rate:  "50%",
		},
		{
			name:  "draw counts as played only",
			games: []Game{finished(1, 2, 40, 0), finished(1, 2, 20, 20), finished(2, 1, 60, 0)},
			want:  Record{Played: 3, Wins: 1, Losses: 1, Draws: 1},
			rate:  "33.33%",
		},
		{
			name: "unfinished games ignored",
			games: func() []Game {
				g := finished(1, 2, 40, 0)
				g.Status = StatusPaused
				return []Game{g, finished(1, 2, 20, 0)}
			}(),
			want: Record{Played: 1, Wins: 1},
			rate: "100%",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Tally(tt.games, 1)
			assert.Equal(t, tt.want, rec)
			assert.Equal(t, tt.rate, rec.WinRate())
		})
	}

	assert.Equal(t, "66.67%", Record{Played: 3, Wins: 2}.WinRate())
}

func TestRanking(t *testing.T) {
	players := []Player{
		{ID: 1, Score: 100, XP: 0},
		{ID: 2, Score: 300, XP: 10},
		{ID: 3, Score: 100, XP: 50},
		{ID: 4, Score: 100, XP: 50},
	}

	assert.Equal(t, 1, Rank(players, 2))
	assert.Equal(t, 2, Rank(players, 3))
	assert.Equal(t, 3, Rank(players, 4))
	assert.Equal(t, 4, Rank(players, 1))
	assert.Equal(t, 0, Rank(players, 42))
	assert.Equal(t, int64(1), players[0].ID, "Rank must not reorder its input")

	SortRanking(players)
	ids := make([]int64, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	assert.Equal(t, []int64{2, 3, 4, 1}, ids)
}

func TestNewProfile(t *testing.T) {
	me := Player{ID: 1, Username: "alice", Score: 60, XP: 60, Level: 1}
	players := []Player{me, {ID: 2, Score: 90}}
	games := []Game{finished(1, 2, 40, 0), finished(2, 1, 60, 20)}

	p := NewProfile(me, games, players)

	assert.Equal(t, me, p.Player)
	assert.Equal(t, Record{Played: 2, Wins: 1, Losses: 1}, p.Record)
	assert.Equal(t, "50%", p.WinRate)
	assert.Equal(t, 2, p.Rank)
}

func TestNewHistoryEntry(t *testing.T) {
	g := finished(1, 2, 40, 20)
	g.Player1.Username = "alice"
	g.Player2.Username = "bob"

	e := NewHistoryEntry(g, 2)
	assert.Equal(t, &PlayerRef{ID: 1, Username: "alice"}, e.Opponent)
	assert.Equal(t, OutcomeLoss, e.Result)
	assert.Equal(t, 20, e.YourScore)
	assert.Equal(t, 40, e.OpponentScore)

	waiting := Game{Player1: PlayerRef{ID: 1}, Status: StatusWaiting}
	e = NewHistoryEntry(waiting, 1)
	assert.Nil(t, e.Opponent)
	assert.Equal(t, OutcomeNone, e.Result)
	assert.Zero(t, e.OpponentScore)
}
