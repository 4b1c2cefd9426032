package tictactoe

import (
	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

// MakeTurn - applies a move for mark and returns the next game state.
// The input game is never modified; invalid moves return it unchanged with false.
func MakeTurn(game entity.Game, mark string, cell int) (entity.Game, bool) {
	if !validateMove(game, mark, cell) {
		return game, false
	}

	next := game
	next.Board[cell] = mark
	updateGameStatus(&next, mark)

	return next, true
}

// PlayerMove - applies the human player's move at (row, col).
func PlayerMove(game entity.Game, row, col int) (entity.Game, bool) {
	cell, ok := entity.CellIndex(row, col)
	if !ok {
		return game, false
	}

	return MakeTurn(game, entity.PlayerMark, cell)
}

// validateMove - checks if the move is valid.
func validateMove(game entity.Game, mark string, cell int) bool {
	if !game.IsPlaying() {
		return false
	}

	if cell < 0 || cell >= len(game.Board) {
		return false
	}

	if game.Turn != mark {
		return false
	}

	return game.Board[cell] == entity.EmptyCell
}

// updateGameStatus - checks the game status after a move, winner before draw.
func updateGameStatus(game *entity.Game, mark string) {
	if winner := entity.CheckWinner(game.Board); winner != entity.EmptyCell {
		game.Winner = winner
		game.Status = entity.StatusWon
		return
	}

	if entity.IsFull(game.Board) {
		game.Status = entity.StatusDraw
		return
	}

	game.Turn = toggleMark(mark)
}

func toggleMark(currentMark string) string {
	if currentMark == entity.PlayerMark {
		return entity.OpponentMark
	}
	return entity.PlayerMark
}
