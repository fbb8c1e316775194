package tictactoe

import "github.com/rocketscienceinc/tictactoe-env/internal/entity"

// WinCombos lists the winning lines in evaluation order: rows, columns, diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// evaluationOrder - O's lines are checked before X's lines.
var evaluationOrder = [2]entity.Mark{entity.MarkO, entity.MarkX}

// CheckGameStatus - returns the status of the board. It has no side effects.
func CheckGameStatus(board entity.Board) entity.GameStatus {
	for _, mark := range evaluationOrder {
		if hasLine(board, mark.Cell()) {
			return entity.WonBy(mark)
		}
	}

	if board.IsFull() {
		return entity.Draw()
	}

	return entity.InProgress()
}

func hasLine(board entity.Board, cell entity.Cell) bool {
	for _, combo := range WinCombos {
		if board[combo[0]] == cell && board[combo[1]] == cell && board[combo[2]] == cell {
			return true
		}
	}

	return false
}
