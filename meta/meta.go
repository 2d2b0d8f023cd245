// meta/meta.go
package meta

// MaxMisses is the attempt budget of the word guessing game.
const MaxMisses = 6

// BombLow and BombHigh bound the secret of the number bomb game.
const BombLow = 1
const BombHigh = 100

// DiceFaces is the number of faces on each die.
const DiceFaces = 6

// BoardSize is the width and height of the tic-tac-toe grid.
const BoardSize = 3

// MaxMoves caps the moves a single session may take before the engine aborts it.
const MaxMoves = 500

// Search episodes per computer move when no budget is configured
const SearchEpisodes = 2000
