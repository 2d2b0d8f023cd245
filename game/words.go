package game

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"arcade/meta"
	"arcade/utils"
)

// DefaultWords is the corpus the word guessing target is drawn from.
var DefaultWords = []string{"python", "apple", "banana", "computer", "sunshine", "programming"}

// WordGuess hides a word drawn at Start. Each letter reveals every matching
// position; a letter absent from the word costs an attempt.
func WordGuess(opts ...Option) Definition {
	o := newOptions(opts)
	words := DefaultWords
	if len(o.words) > 0 {
		words = o.words
	}
	attempts := meta.MaxMisses
	if o.maxAttempts > 0 {
		attempts = o.maxAttempts
	}
	return Definition{
		Name:        "words",
		Title:       "Word Guessing",
		Domain:      LetterDomain("Guess a letter"),
		MaxAttempts: attempts,
		Setup: func(rng RandomSource) Board {
			return &wordBoard{target: words[rng.Intn(len(words))]}
		},
	}
}

// LoadWords reads one word per line, lowercased. Blank lines and words with
// characters outside a-z are skipped.
func LoadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if w == "" || !isLower(w) {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read words: %w", err)
	}
	return words, nil
}

func isLower(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// WordView shows the revealed pattern, e.g. "p _ t h _ n".
type WordView struct {
	Pattern string
	Guessed []rune
}

func (v WordView) String() string {
	return v.Pattern
}

type wordBoard struct {
	target  string
	guessed []rune
	missed  bool
}

func (b *wordBoard) Legal(m Move) error { return nil }

func (b *wordBoard) Play(m Move) {
	b.guessed = append(b.guessed, m.Letter)
	b.missed = !strings.ContainsRune(b.target, m.Letter)
}

func (b *wordBoard) Won() bool {
	for _, r := range b.target {
		if !utils.Contains(b.guessed, r) {
			return false
		}
	}
	return true
}

func (b *wordBoard) Lost() bool   { return false }
func (b *wordBoard) Missed() bool { return b.missed }
func (b *wordBoard) Tied() bool   { return false }

func (b *wordBoard) View() View {
	cells := make([]string, 0, len(b.target))
	for _, r := range b.target {
		if utils.Contains(b.guessed, r) {
			cells = append(cells, string(r))
		} else {
			cells = append(cells, "_")
		}
	}
	guessed := make([]rune, len(b.guessed))
	copy(guessed, b.guessed)
	return WordView{Pattern: strings.Join(cells, " "), Guessed: guessed}
}

func (b *wordBoard) Verdict(s Status) (string, string) {
	if s == Won {
		return PlayerName, fmt.Sprintf("guessed %s", b.target)
	}
	return ComputerName, fmt.Sprintf("the word was %s", b.target)
}
