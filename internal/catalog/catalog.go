// Package catalog supplies words for new games.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zarahshmi/backend-guesswordd/internal/wordgame"
)

// Source reads and seeds the stored word list.
type Source interface {
	Words(ctx context.Context, d wordgame.Difficulty) ([]wordgame.Word, error)
	CountWords(ctx context.Context) (int, error)
	AddWords(ctx context.Context, words []wordgame.Word) error
}

type Catalog struct {
	src Source
	rnd wordgame.Rand
}

func New(src Source, rnd wordgame.Rand) *Catalog {
	return &Catalog{src: src, rnd: rnd}
}

// Pick returns a uniformly random word of difficulty d.
func (c *Catalog) Pick(ctx context.Context, d wordgame.Difficulty) (wordgame.Word, error) {
	words, err := c.src.Words(ctx, d)
	if err != nil {
		return wordgame.Word{}, fmt.Errorf("listing %s words: %w", d, err)
	}
	if len(words) == 0 {
		return wordgame.Word{}, wordgame.ErrNoWords
	}
	return words[c.rnd.IntN(len(words))], nil
}

// Seed stores the default word list when the catalog is empty.
// Idempotent: does nothing if any word exists.
func (c *Catalog) Seed(ctx context.Context, logger *slog.Logger) error {
	n, err := c.src.CountWords(ctx)
	if err != nil {
		return fmt.Errorf("counting words: %w", err)
	}
	if n > 0 {
		return nil
	}

	var words []wordgame.Word
	for _, d := range wordgame.Difficulties {
		for _, text := range defaultWords[d] {
			w, err := wordgame.NewWord(text, d)
			if err != nil {
				return err
			}
			words = append(words, w)
		}
	}
	if err := c.src.AddWords(ctx, words); err != nil {
		return fmt.Errorf("seeding words: %w", err)
	}
	logger.Info("word catalog seeded", "words", len(words))
	return nil
}
