package wordgame

// XPPerLevel is the XP needed to gain one level.
const XPPerLevel = 100

// Progress adds gained XP and converts every full XPPerLevel into a level.
func Progress(xp, level, gained int) (newXP, newLevel int) {
	total := xp + gained
	return total % XPPerLevel, level + total/XPPerLevel
}

// Credit returns p after a game completion worth perGame points: the
// points go to the cumulative score and to XP.
func (p Player) Credit(perGame int) Player {
	p.Score += perGame
	p.XP, p.Level = Progress(p.XP, p.Level, perGame)
	return p
}
