package searcher

import (
	"math"

	"uttt/game"
)

// Score is always from X's perspective unless weighted: higher is better for X.
type Score int32

// Sentinels stay one inside the int32 range so negating them cannot overflow.
const (
	MaxScore Score = math.MaxInt32 - 1
	MinScore Score = math.MinInt32 + 1

	SubBoardWinScore Score = 50
)

// SingleBoardStaticAnalysis scores a 3x3 grid by line control. Every line
// held only by X adds its X count, every line held only by O subtracts its
// O count. Contested and empty lines add nothing.
func SingleBoardStaticAnalysis(cells [9]game.Piece) Score {
	var score Score
	for _, line := range game.Lines() {
		var xCount, oCount Score
		for _, i := range line {
			switch cells[i] {
			case game.X:
				xCount++
			case game.O:
				oCount++
			}
		}
		switch {
		case oCount == 0:
			score += xCount
		case xCount == 0:
			score -= oCount
		}
	}
	return score
}

// CalcStaticAnalysis evaluates a board without consulting any cache.
func CalcStaticAnalysis(board game.Board) Score {
	var score Score
	for i := 0; i < game.NumSubBoards; i++ {
		switch board.SubStatus(i) {
		case game.XWins:
			score += SubBoardWinScore
		case game.OWins:
			score -= SubBoardWinScore
		case game.Draw:
		default:
			score += SingleBoardStaticAnalysis(board.SubBoard(i))
		}
	}
	return score
}

// terminalScore maps a finished game to its sentinel.
func terminalScore(status game.GameStatus) Score {
	switch status {
	case game.XWins:
		return MaxScore
	case game.OWins:
		return MinScore
	default:
		return 0
	}
}
