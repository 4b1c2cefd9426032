package service

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

const (
	x = entity.PlayerMark
	o = entity.OpponentMark
	e = entity.EmptyCell
)

func newTestBot(seed uint64) BotService {
	return NewBotService(rand.New(rand.NewPCG(seed, seed+1))) //nolint: gosec // it's ok
}

func TestBotService_SelectMove(t *testing.T) {
	t.Run("Prefers winning over blocking", func(t *testing.T) {
		// Given: both sides have an open two-in-a-row
		board := [9]string{
			x, x, e,
			o, o, e,
			e, e, e,
		}

		// When: the bot selects a move
		cell, err := newTestBot(1).SelectMove(board)

		// Then: it completes its own row instead of blocking
		require.NoError(t, err)
		assert.Equal(t, 5, cell)
	})

	t.Run("Blocks the player's line", func(t *testing.T) {
		// Given: the player threatens the left column
		board := [9]string{
			x, e, e,
			x, o, e,
			e, e, e,
		}

		// When: the bot selects a move
		cell, err := newTestBot(1).SelectMove(board)

		// Then: it blocks at the bottom-left
		require.NoError(t, err)
		assert.Equal(t, 6, cell)
	})

	t.Run("Takes the lowest winning cell when two win", func(t *testing.T) {
		// Given: the bot can win at 0 (left column) or 5 (middle row)
		board := [9]string{
			e, x, x,
			o, o, e,
			o, x, x,
		}

		// When: the bot selects a move
		cell, err := newTestBot(1).SelectMove(board)

		// Then: the lowest index wins
		require.NoError(t, err)
		assert.Equal(t, 0, cell)
	})

	t.Run("Blocks the lowest cell when the player has two threats", func(t *testing.T) {
		// Given: the player threatens 0 (left column) and 5 (middle row)
		board := [9]string{
			e, o, e,
			x, x, e,
			x, o, e,
		}

		// When: the bot selects a move
		cell, err := newTestBot(1).SelectMove(board)

		// Then: it blocks at the lowest index
		require.NoError(t, err)
		assert.Equal(t, 0, cell)
	})

	t.Run("Takes the center when free", func(t *testing.T) {
		// Given: the player opened in a corner
		board := [9]string{x, e, e, e, e, e, e, e, e}

		// When: the bot selects a move
		cell, err := newTestBot(1).SelectMove(board)

		// Then: it takes the center
		require.NoError(t, err)
		assert.Equal(t, 4, cell)
	})

	t.Run("Picks a free corner when center is taken", func(t *testing.T) {
		// Given: the player took the center
		board := [9]string{e, e, e, e, x, e, e, e, e}

		for seed := range uint64(20) {
			// When: the bot selects a move
			cell, err := newTestBot(seed).SelectMove(board)

			// Then: the move is always a corner
			require.NoError(t, err)
			assert.Contains(t, []int{0, 2, 6, 8}, cell)
		}
	})

	t.Run("Never picks an occupied corner", func(t *testing.T) {
		// Given: center and two corners taken, no threats
		board := [9]string{
			x, e, e,
			e, o, e,
			e, e, x,
		}

		for seed := range uint64(20) {
			cell, err := newTestBot(seed).SelectMove(board)

			require.NoError(t, err)
			assert.Contains(t, []int{2, 6}, cell)
		}
	})

	t.Run("Falls back to any free cell", func(t *testing.T) {
		// Given: center and corners taken without threats
		board := [9]string{
			x, e, o,
			e, o, e,
			x, e, x,
		}
		// X threatens 3 and 7; the lower cell is blocked.
		cell, err := newTestBot(1).SelectMove(board)
		require.NoError(t, err)
		assert.Equal(t, 3, cell)

		// Given: only edges 1 and 7 remain and nobody threatens
		board = [9]string{
			x, e, o,
			o, x, x,
			x, e, o,
		}
		for seed := range uint64(20) {
			cell, err = newTestBot(seed).SelectMove(board)

			require.NoError(t, err)
			assert.Contains(t, []int{1, 7}, cell)
		}
	})

	t.Run("Returns error on full board", func(t *testing.T) {
		board := [9]string{x, o, x, o, x, o, o, x, o}

		_, err := newTestBot(1).SelectMove(board)

		require.ErrorIs(t, err, ErrNoAvailableMoves)
	})

	t.Run("Always returns an empty cell", func(t *testing.T) {
		rnd := rand.New(rand.NewPCG(7, 8)) //nolint: gosec // it's ok

		for range 200 {
			// Given: a random partially filled board
			var board [9]string
			for i := range board {
				switch rnd.IntN(3) {
				case 1:
					board[i] = x
				case 2:
					board[i] = o
				}
			}
			if entity.IsFull(board) {
				continue
			}

			// When: the bot selects a move
			cell, err := newTestBot(rnd.Uint64()).SelectMove(board)

			// Then: the cell is free
			require.NoError(t, err)
			assert.Equal(t, e, board[cell])
		}
	})
}
