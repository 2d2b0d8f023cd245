// Package communication holds the JSON shapes exchanged between the HTTP
// server and its clients.
package communication

import (
	"fmt"
	"unicode/utf8"

	"arcade/game"
)

type NewSessionRequest struct {
	Game       string `json:"game"`
	Seed       uint64 `json:"seed,omitempty"` // 0 seeds from the clock
	Attempts   int    `json:"attempts,omitempty"`
	VsComputer bool   `json:"vs_computer,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type GameInfo struct {
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	MaxAttempts int       `json:"max_attempts,omitempty"`
	Domain      DomainDTO `json:"domain"`
}

// MoveDTO carries a game.Move. Only the fields of Kind are read.
type MoveDTO struct {
	Kind   string `json:"kind"`
	Letter string `json:"letter,omitempty"`
	Number int    `json:"number"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Yes    bool   `json:"yes"`
	Symbol string `json:"symbol,omitempty"`
}

func EncodeMove(m game.Move) MoveDTO {
	d := MoveDTO{Kind: m.Kind.String()}
	switch m.Kind {
	case game.LetterMove:
		d.Letter = string(m.Letter)
	case game.IntegerMove:
		d.Number = m.Number
	case game.CoordinateMove:
		d.Row, d.Col = m.Row, m.Col
	case game.YesNoMove:
		d.Yes = m.Yes
	case game.SymbolMove:
		d.Symbol = m.Symbol
	}
	return d
}

func (d MoveDTO) Move() (game.Move, error) {
	kind, err := game.ParseMoveKind(d.Kind)
	if err != nil {
		return game.Move{}, err
	}
	switch kind {
	case game.LetterMove:
		r, size := utf8.DecodeRuneInString(d.Letter)
		if size == 0 || size != len(d.Letter) {
			return game.Move{}, fmt.Errorf("letter must be a single character, got %q", d.Letter)
		}
		return game.Letter(r), nil
	case game.IntegerMove:
		return game.Integer(d.Number), nil
	case game.CoordinateMove:
		return game.Coordinate(d.Row, d.Col), nil
	case game.YesNoMove:
		return game.YesNo(d.Yes), nil
	case game.SymbolMove:
		return game.Symbol(d.Symbol), nil
	default:
		return game.Quit(), nil
	}
}

type DomainDTO struct {
	Kind     string   `json:"kind"`
	Min      int      `json:"min,omitempty"`
	Max      int      `json:"max,omitempty"`
	Size     int      `json:"size,omitempty"`
	Symbols  []string `json:"symbols,omitempty"`
	Prompt   string   `json:"prompt"`
	BlankYes bool     `json:"blank_yes,omitempty"`
}

func EncodeDomain(d game.Domain) DomainDTO {
	return DomainDTO{
		Kind:     d.Kind.String(),
		Min:      d.Min,
		Max:      d.Max,
		Size:     d.Size,
		Symbols:  d.Symbols,
		Prompt:   d.Prompt,
		BlankYes: d.BlankYes,
	}
}

func (d DomainDTO) Domain() (game.Domain, error) {
	kind, err := game.ParseMoveKind(d.Kind)
	if err != nil {
		return game.Domain{}, err
	}
	return game.Domain{
		Kind:     kind,
		Min:      d.Min,
		Max:      d.Max,
		Size:     d.Size,
		Symbols:  d.Symbols,
		Prompt:   d.Prompt,
		BlankYes: d.BlankYes,
	}, nil
}

type OutcomeDTO struct {
	Status game.Status `json:"status"`
	Winner string      `json:"winner,omitempty"`
	Reason string      `json:"reason,omitempty"`
	Moves  int         `json:"moves"`
}

// SessionDTO is the observable state of a session. Board is the plain text
// rendering of View.
type SessionDTO struct {
	ID                string      `json:"id"`
	Game              string      `json:"game"`
	Title             string      `json:"title"`
	Status            game.Status `json:"status"`
	AttemptsRemaining int         `json:"attempts_remaining"`
	Unbounded         bool        `json:"unbounded"`
	Moves             []MoveDTO   `json:"moves"`
	Board             string      `json:"board"`
	View              ViewDTO     `json:"view"`
	Domain            DomainDTO   `json:"domain"`
	Outcome           *OutcomeDTO `json:"outcome,omitempty"`
}

func EncodeSession(s *game.Session) SessionDTO {
	snap := s.Snapshot()
	d := SessionDTO{
		ID:                s.ID,
		Game:              s.Definition.Name,
		Title:             s.Definition.Title,
		Status:            s.Status,
		AttemptsRemaining: s.AttemptsRemaining,
		Unbounded:         s.Unbounded,
		Moves:             make([]MoveDTO, len(s.MovesMade)),
		Board:             snap.View.String(),
		View:              EncodeView(snap.View),
		Domain:            EncodeDomain(s.Definition.Domain),
	}
	for i, m := range s.MovesMade {
		d.Moves[i] = EncodeMove(m)
	}
	if out := s.Outcome(); out != nil {
		d.Outcome = &OutcomeDTO{Status: out.Status, Winner: out.Winner, Reason: out.Reason, Moves: out.Moves}
	}
	return d
}

// ViewDTO is a tagged union of the per-game views; Type selects the fields
// that are set.
type ViewDTO struct {
	Type string `json:"type"`

	Cells []string `json:"cells,omitempty"`
	Next  string   `json:"next,omitempty"`

	Pattern string `json:"pattern,omitempty"`
	Guessed string `json:"guessed,omitempty"`

	Low  int    `json:"low,omitempty"`
	High int    `json:"high,omitempty"`
	Hint string `json:"hint,omitempty"`

	PlayerChoice   string `json:"player_choice,omitempty"`
	ComputerChoice string `json:"computer_choice,omitempty"`

	PlayerRoll   int `json:"player_roll,omitempty"`
	ComputerRoll int `json:"computer_roll,omitempty"`

	Text string `json:"text,omitempty"`
}

func EncodeView(v game.View) ViewDTO {
	switch v := v.(type) {
	case game.BoardView:
		rows := make([]string, len(v.Cells))
		for i, row := range v.Cells {
			cells := make([]rune, len(row))
			for j, c := range row {
				cells[j] = rune(c)
			}
			rows[i] = string(cells)
		}
		return ViewDTO{Type: "board", Cells: rows, Next: string(rune(v.Next))}
	case game.WordView:
		return ViewDTO{Type: "word", Pattern: v.Pattern, Guessed: string(v.Guessed)}
	case game.BombView:
		return ViewDTO{Type: "bomb", Low: v.Low, High: v.High, Hint: v.Hint}
	case game.RoundView:
		return ViewDTO{Type: "round", PlayerChoice: v.Player, ComputerChoice: v.Computer}
	case game.DiceView:
		return ViewDTO{Type: "dice", PlayerRoll: v.Player, ComputerRoll: v.Computer}
	case nil:
		return ViewDTO{}
	default:
		return ViewDTO{Type: "text", Text: v.String()}
	}
}

// View rebuilds the game view. Unknown types come back as plain text.
func (d ViewDTO) View() game.View {
	switch d.Type {
	case "board":
		var v game.BoardView
		for i, row := range d.Cells {
			for j, c := range []rune(row) {
				if i < len(v.Cells) && j < len(v.Cells[i]) {
					v.Cells[i][j] = game.Mark(c)
				}
			}
		}
		if d.Next != "" {
			v.Next = game.Mark(d.Next[0])
		}
		return v
	case "word":
		return game.WordView{Pattern: d.Pattern, Guessed: []rune(d.Guessed)}
	case "bomb":
		return game.BombView{Low: d.Low, High: d.High, Hint: d.Hint}
	case "round":
		return game.RoundView{Player: d.PlayerChoice, Computer: d.ComputerChoice}
	case "dice":
		return game.DiceView{Player: d.PlayerRoll, Computer: d.ComputerRoll}
	case "":
		return nil
	default:
		return TextView(d.Text)
	}
}

type TextView string

func (v TextView) String() string { return string(v) }
