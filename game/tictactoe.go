package game

import (
	"errors"
	"fmt"
	"strings"

	"arcade/meta"
)

// Mark is the content of a tic-tac-toe cell.
type Mark byte

const (
	Empty Mark = ' '
	X     Mark = 'X'
	O     Mark = 'O'
)

type Grid [meta.BoardSize][meta.BoardSize]Mark

// lines lists the 3 rows, 3 columns and 2 diagonals as cell coordinates.
var lines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// TicTacToe is played hot-seat by X and O, or by X against a computer. The
// computer answers with its Strategy, or a uniformly drawn free cell.
func TicTacToe(opts ...Option) Definition {
	o := newOptions(opts)
	return Definition{
		Name:   "tictactoe",
		Title:  "Tic Tac Toe",
		Domain: CoordinateDomain(meta.BoardSize, "Enter row and column (1-3)"),
		Setup: func(rng RandomSource) Board {
			return &tttBoard{
				rng:      rng,
				computer: o.vsComputer || o.strategy != nil,
				strategy: o.strategy,
				pos:      NewPosition(),
			}
		},
	}
}

// Strategy picks the computer's reply. Picks that are not a free cell are
// replaced by a random one.
type Strategy func(p Position) Move

// Position is a grid and the mark to play next.
type Position struct {
	Cells Grid
	Turn  Mark
}

// NewPosition is the empty grid with X to play.
func NewPosition() Position {
	p := Position{Turn: X}
	for i := range p.Cells {
		for j := range p.Cells[i] {
			p.Cells[i][j] = Empty
		}
	}
	return p
}

// Place puts the current mark on m. The turn passes unless the mark
// completed a line.
func (p Position) Place(m Move) Position {
	p.Cells[m.Row][m.Col] = p.Turn
	if !p.hasLine(p.Turn) {
		p.Turn = p.Turn.Other()
	}
	return p
}

// Winner is the mark owning a line, or 0.
func (p Position) Winner() Mark {
	switch {
	case p.hasLine(X):
		return X
	case p.hasLine(O):
		return O
	}
	return 0
}

// Free lists the empty cells in row-major order.
func (p Position) Free() []Move {
	var free []Move
	for i, row := range p.Cells {
		for j, c := range row {
			if c == Empty {
				free = append(free, Coordinate(i, j))
			}
		}
	}
	return free
}

func (p Position) Full() bool {
	return len(p.Free()) == 0
}

// Open reports whether m is a free cell of the grid.
func (p Position) Open(m Move) bool {
	return m.Kind == CoordinateMove &&
		m.Row >= 0 && m.Row < len(p.Cells) && m.Col >= 0 && m.Col < len(p.Cells) &&
		p.Cells[m.Row][m.Col] == Empty
}

func (p Position) hasLine(mark Mark) bool {
	for _, line := range lines {
		if p.Cells[line[0][0]][line[0][1]] == mark &&
			p.Cells[line[1][0]][line[1][1]] == mark &&
			p.Cells[line[2][0]][line[2][1]] == mark {
			return true
		}
	}
	return false
}

func (m Mark) Other() Mark {
	if m == X {
		return O
	}
	return X
}

// BoardView is a copy of the grid and the mark to play next.
type BoardView struct {
	Cells Grid
	Next  Mark
}

func (v BoardView) String() string {
	rows := make([]string, len(v.Cells))
	for i, row := range v.Cells {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = string(rune(c))
		}
		rows[i] = strings.Join(cells, "|")
	}
	return strings.Join(rows, "/")
}

type tttBoard struct {
	rng      RandomSource
	computer bool
	strategy Strategy
	pos      Position
	winner   Mark
}

func (b *tttBoard) Legal(m Move) error {
	if !b.pos.Open(m) {
		return errors.New("position already taken")
	}
	return nil
}

func (b *tttBoard) Play(m Move) {
	if b.place(m) || !b.computer || b.pos.Full() {
		return
	}
	b.place(b.reply())
}

// place reports whether the move completed a line.
func (b *tttBoard) place(m Move) bool {
	b.pos = b.pos.Place(m)
	b.winner = b.pos.Winner()
	return b.winner != 0
}

func (b *tttBoard) reply() Move {
	if b.strategy != nil {
		if m := b.strategy(b.pos); b.pos.Open(m) {
			return m
		}
	}
	free := b.pos.Free()
	return free[b.rng.Intn(len(free))]
}

// Against the computer only X winning counts as Won; hot-seat, either mark does.
func (b *tttBoard) Won() bool {
	if b.computer {
		return b.winner == X
	}
	return b.winner != 0
}

func (b *tttBoard) Lost() bool   { return b.computer && b.winner == O }
func (b *tttBoard) Missed() bool { return false }
func (b *tttBoard) Tied() bool   { return b.winner == 0 && b.pos.Full() }

func (b *tttBoard) View() View {
	return BoardView{Cells: b.pos.Cells, Next: b.pos.Turn}
}

func (b *tttBoard) Verdict(s Status) (string, string) {
	switch s {
	case Won:
		if b.computer {
			return PlayerName, "three in a row"
		}
		return string(rune(b.winner)), fmt.Sprintf("player %c wins", b.winner)
	case Lost:
		return ComputerName, "computer made three in a row"
	default:
		return "", "board full"
	}
}
