package service

import (
	"errors"
	"math/rand/v2"

	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

const centerCell = 4

var (
	ErrNoAvailableMoves = errors.New("no available moves")

	cornerCells = []int{0, 2, 6, 8}
)

type BotService interface {
	SelectMove(board [9]string) (int, error)
}

type botService struct {
	rnd *rand.Rand
}

// NewBotService - rnd is not safe for concurrent use; callers serialise SelectMove.
func NewBotService(rnd *rand.Rand) BotService {
	return &botService{rnd: rnd}
}

// SelectMove - win if possible, else block, else center, else a random corner, else any cell.
func (that *botService) SelectMove(board [9]string) (int, error) {
	availableCells := entity.EmptyCells(board)
	if len(availableCells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	if cell, ok := findLineCompletion(board, entity.OpponentMark); ok {
		return cell, nil
	}

	if cell, ok := findLineCompletion(board, entity.PlayerMark); ok {
		return cell, nil
	}

	if board[centerCell] == entity.EmptyCell {
		return centerCell, nil
	}

	freeCorners := make([]int, 0, len(cornerCells))
	for _, cell := range cornerCells {
		if board[cell] == entity.EmptyCell {
			freeCorners = append(freeCorners, cell)
		}
	}

	if len(freeCorners) > 0 {
		return freeCorners[that.rnd.IntN(len(freeCorners))], nil //nolint: gosec // it's ok
	}

	return availableCells[that.rnd.IntN(len(availableCells))], nil //nolint: gosec // it's ok
}

// findLineCompletion - lowest empty cell that would give mark a full line.
func findLineCompletion(board [9]string, mark string) (int, bool) {
	for _, cell := range entity.EmptyCells(board) {
		next := board
		next[cell] = mark

		if entity.CheckWinner(next) == mark {
			return cell, true
		}
	}

	return 0, false
}
