package game

import "github.com/rs/zerolog"

// Domain is the set of values a Move may take for a game. Quit belongs to
// every Domain.
type Domain struct {
	Kind    MoveKind
	Min     int      // IntegerMove, inclusive
	Max     int      // IntegerMove, inclusive
	Size    int      // CoordinateMove, rows and columns in [0, Size)
	Symbols []string // SymbolMove
	Prompt  string   // shown by interactive providers
	// BlankYes lets interactive providers read an empty answer as yes.
	BlankYes bool
}

func LetterDomain(prompt string) Domain {
	return Domain{Kind: LetterMove, Prompt: prompt}
}

func IntegerDomain(min, max int, prompt string) Domain {
	return Domain{Kind: IntegerMove, Min: min, Max: max, Prompt: prompt}
}

func CoordinateDomain(size int, prompt string) Domain {
	return Domain{Kind: CoordinateMove, Size: size, Prompt: prompt}
}

func SymbolDomain(symbols []string, prompt string) Domain {
	return Domain{Kind: SymbolMove, Symbols: symbols, Prompt: prompt}
}

func YesNoDomain(prompt string) Domain {
	return Domain{Kind: YesNoMove, Prompt: prompt}
}

// PressEnterDomain is a YesNoDomain answered by pressing enter.
func PressEnterDomain(prompt string) Domain {
	return Domain{Kind: YesNoMove, Prompt: prompt, BlankYes: true}
}

// Contains reports whether m is a member of the domain.
func (d Domain) Contains(m Move) bool {
	if m.IsQuit() {
		return true
	}
	if m.Kind != d.Kind {
		return false
	}
	switch d.Kind {
	case LetterMove:
		return m.Letter >= 'a' && m.Letter <= 'z'
	case IntegerMove:
		return m.Number >= d.Min && m.Number <= d.Max
	case CoordinateMove:
		return m.Row >= 0 && m.Row < d.Size && m.Col >= 0 && m.Col < d.Size
	case SymbolMove:
		for _, s := range d.Symbols {
			if s == m.Symbol {
				return true
			}
		}
		return false
	case YesNoMove:
		return true
	}
	return false
}

// Enumerate lists every non-quit move of the domain. Letter, integer,
// coordinate and symbol domains are finite; yes/no yields both answers.
func (d Domain) Enumerate() []Move {
	var moves []Move
	switch d.Kind {
	case LetterMove:
		for r := 'a'; r <= 'z'; r++ {
			moves = append(moves, Letter(r))
		}
	case IntegerMove:
		for n := d.Min; n <= d.Max; n++ {
			moves = append(moves, Integer(n))
		}
	case CoordinateMove:
		for row := 0; row < d.Size; row++ {
			for col := 0; col < d.Size; col++ {
				moves = append(moves, Coordinate(row, col))
			}
		}
	case SymbolMove:
		for _, s := range d.Symbols {
			moves = append(moves, Symbol(s))
		}
	case YesNoMove:
		moves = append(moves, YesNo(true), YesNo(false))
	}
	return moves
}

func (d Domain) MarshalZerologObject(e *zerolog.Event) {
	e.Stringer("kind", d.Kind)
	switch d.Kind {
	case IntegerMove:
		e.Int("min", d.Min).Int("max", d.Max)
	case CoordinateMove:
		e.Int("size", d.Size)
	case SymbolMove:
		e.Strs("symbols", d.Symbols)
	}
}
