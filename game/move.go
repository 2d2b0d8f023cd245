package game

import "fmt"

// MoveKind tags the shape of a Move.
type MoveKind int

const (
	LetterMove MoveKind = iota
	IntegerMove
	CoordinateMove
	YesNoMove
	SymbolMove
	QuitMove
)

var moveKindNames = map[MoveKind]string{
	LetterMove:     "letter",
	IntegerMove:    "integer",
	CoordinateMove: "coordinate",
	YesNoMove:      "yesno",
	SymbolMove:     "symbol",
	QuitMove:       "quit",
}

func (k MoveKind) String() string {
	if name, ok := moveKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("MoveKind(%d)", int(k))
}

// ParseMoveKind is the inverse of MoveKind.String.
func ParseMoveKind(s string) (MoveKind, error) {
	for k, name := range moveKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown move kind %q", s)
}

// Move is a single input event. Only the fields that belong to Kind are set,
// which keeps Move comparable with == for duplicate detection.
type Move struct {
	Kind   MoveKind
	Letter rune
	Number int
	Row    int // 0-based
	Col    int // 0-based
	Yes    bool
	Symbol string
}

func Letter(r rune) Move {
	return Move{Kind: LetterMove, Letter: r}
}

func Integer(n int) Move {
	return Move{Kind: IntegerMove, Number: n}
}

func Coordinate(row, col int) Move {
	return Move{Kind: CoordinateMove, Row: row, Col: col}
}

func YesNo(yes bool) Move {
	return Move{Kind: YesNoMove, Yes: yes}
}

func Symbol(s string) Move {
	return Move{Kind: SymbolMove, Symbol: s}
}

func Quit() Move {
	return Move{Kind: QuitMove}
}

func (m Move) IsQuit() bool {
	return m.Kind == QuitMove
}

func (m Move) String() string {
	switch m.Kind {
	case LetterMove:
		return fmt.Sprintf("letter(%c)", m.Letter)
	case IntegerMove:
		return fmt.Sprintf("integer(%d)", m.Number)
	case CoordinateMove:
		return fmt.Sprintf("coordinate(%d,%d)", m.Row, m.Col)
	case YesNoMove:
		if m.Yes {
			return "yes"
		}
		return "no"
	case SymbolMove:
		return fmt.Sprintf("symbol(%s)", m.Symbol)
	case QuitMove:
		return "quit"
	default:
		return m.Kind.String()
	}
}
