package catalog

import "github.com/zarahshmi/backend-guesswordd/internal/wordgame"

// defaultWords is the built-in list loaded into an empty catalog.
var defaultWords = map[wordgame.Difficulty][]string{
	wordgame.DifficultyEasy: {
		"cat", "dog", "sun", "tree", "fish",
		"book", "milk", "rain", "star", "ship",
		"cake", "lamp", "frog", "moon", "bird",
	},
	wordgame.DifficultyMedium: {
		"garden", "pencil", "rocket", "silver", "window",
		"castle", "dragon", "planet", "basket", "bridge",
		"coffee", "jungle", "lantern", "harbor", "tunnel",
	},
	wordgame.DifficultyHard: {
		"labyrinth", "xylophone", "quarantine", "hieroglyph", "rhythm",
		"zeppelin", "avalanche", "kaleidoscope", "mnemonic", "pharaoh",
		"juxtapose", "whirlpool", "sphinx", "quicksand", "awkward",
	},
}
