package game

// Piece is the content of a single cell.
type Piece int8

const (
	O     Piece = -1
	Empty Piece = 0
	X     Piece = 1
)

func (p Piece) String() string {
	switch p {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "."
	}
}

// PlayerSymbol identifies a side. X always moves first.
type PlayerSymbol int8

const (
	PlayerO PlayerSymbol = -1
	PlayerX PlayerSymbol = 1
)

// Other returns the opponent's symbol.
func (p PlayerSymbol) Other() PlayerSymbol {
	return -p
}

// Sign is +1 for X and -1 for O. Scores are always from X's perspective,
// so multiplying by Sign turns them into the perspective of p.
func (p PlayerSymbol) Sign() int {
	return int(p)
}

func (p PlayerSymbol) Piece() Piece {
	return Piece(p)
}

func (p PlayerSymbol) String() string {
	if p == PlayerX {
		return "X"
	}
	return "O"
}

// GameStatus is the outcome of a sub-board or of the whole game.
type GameStatus int

const (
	InProgress GameStatus = iota
	XWins
	OWins
	Draw
)

// WinStatus returns the status reached when p completes a line.
func WinStatus(p PlayerSymbol) GameStatus {
	if p == PlayerX {
		return XWins
	}
	return OWins
}

func (s GameStatus) IsTerminal() bool {
	return s != InProgress
}

func (s GameStatus) String() string {
	switch s {
	case XWins:
		return "X wins"
	case OWins:
		return "O wins"
	case Draw:
		return "Draw"
	default:
		return "In progress"
	}
}
