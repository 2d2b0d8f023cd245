package game

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDomainContains(t *testing.T) {
	cases := []struct {
		name   string
		domain Domain
		move   Move
		want   bool
	}{
		{"lowercase letter", LetterDomain(""), Letter('k'), true},
		{"uppercase letter", LetterDomain(""), Letter('K'), false},
		{"digit as letter", LetterDomain(""), Letter('7'), false},
		{"integer in range", IntegerDomain(1, 100, ""), Integer(100), true},
		{"integer below range", IntegerDomain(1, 100, ""), Integer(0), false},
		{"coordinate on board", CoordinateDomain(3, ""), Coordinate(2, 0), true},
		{"coordinate off board", CoordinateDomain(3, ""), Coordinate(0, -1), false},
		{"known symbol", SymbolDomain(rpsChoices, ""), Symbol("paper"), true},
		{"unknown symbol", SymbolDomain(rpsChoices, ""), Symbol("lizard"), false},
		{"yes", YesNoDomain(""), YesNo(true), true},
		{"kind mismatch", YesNoDomain(""), Letter('y'), false},
		{"quit in letters", LetterDomain(""), Quit(), true},
		{"quit in integers", IntegerDomain(1, 2, ""), Quit(), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, c.domain.Contains(c.move))
		})
	}
}

func TestDomainEnumerate(t *testing.T) {
	t.Run("every enumerated move is contained", func(t *testing.T) {
		domains := []Domain{
			LetterDomain(""),
			IntegerDomain(1, 100, ""),
			CoordinateDomain(3, ""),
			SymbolDomain(rpsChoices, ""),
			YesNoDomain(""),
		}
		for _, d := range domains {
			for _, m := range d.Enumerate() {
				require.True(t, d.Contains(m), "%s should contain %s", d.Kind, m)
			}
		}
	})

	t.Run("sizes", func(t *testing.T) {
		require.Len(t, LetterDomain("").Enumerate(), 26)
		require.Len(t, IntegerDomain(1, 100, "").Enumerate(), 100)
		require.Len(t, CoordinateDomain(3, "").Enumerate(), 9)
		require.Len(t, YesNoDomain("").Enumerate(), 2)
	})
}

func TestMoveKind(t *testing.T) {
	for _, k := range []MoveKind{LetterMove, IntegerMove, CoordinateMove, YesNoMove, SymbolMove, QuitMove} {
		got, err := ParseMoveKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}
	_, err := ParseMoveKind("gesture")
	require.Error(t, err)
}

func TestDomainLogObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logger.Info().Object("domain", IntegerDomain(1, 100, "")).Msg("")
	require.Contains(t, buf.String(), `"domain":{"kind":"integer","min":1,"max":100}`)

	buf.Reset()
	logger.Info().Object("domain", CoordinateDomain(3, "")).Msg("")
	require.Contains(t, buf.String(), `"domain":{"kind":"coordinate","size":3}`)
}
