package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
)

const (
	insertResultSQL = `INSERT INTO game_results (id, profile_id, outcome, board, moves, finished_at) VALUES (?, ?, ?, ?, ?, ?)`
	listResultsSQL  = `SELECT id, profile_id, outcome, board, moves, finished_at FROM game_results WHERE profile_id = ? ORDER BY finished_at DESC LIMIT ?`

	// boardSeparator - cells are stored as "X,O,,X,..." with empty cells left blank.
	boardSeparator = ","
)

type HistoryRepository interface {
	Save(ctx context.Context, result entity.GameResult) error
	ListRecent(ctx context.Context, profileID string, limit int) ([]entity.GameResult, error)
}

type historyRepository struct {
	conn *sql.DB
}

func NewHistoryRepository(conn *sql.DB) HistoryRepository {
	return &historyRepository{
		conn: conn,
	}
}

func (that *historyRepository) Save(ctx context.Context, result entity.GameResult) error {
	_, err := that.conn.ExecContext(ctx, insertResultSQL,
		result.ID,
		result.ProfileID,
		result.Outcome,
		encodeBoard(result.Board),
		result.Moves,
		result.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("can't save game result: %w", err)
	}

	return nil
}

func (that *historyRepository) ListRecent(ctx context.Context, profileID string, limit int) ([]entity.GameResult, error) {
	rows, err := that.conn.QueryContext(ctx, listResultsSQL, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list game results: %w", err)
	}
	defer rows.Close()

	results := make([]entity.GameResult, 0, limit)
	for rows.Next() {
		var (
			result     entity.GameResult
			board      string
			finishedAt string
		)

		if err = rows.Scan(&result.ID, &result.ProfileID, &result.Outcome, &board, &result.Moves, &finishedAt); err != nil {
			return nil, fmt.Errorf("can't scan game result: %w", err)
		}

		result.Board = decodeBoard(board)

		result.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt)
		if err != nil {
			return nil, fmt.Errorf("can't parse finish time %q: %w", finishedAt, err)
		}

		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate game results: %w", err)
	}

	return results, nil
}

func encodeBoard(board [9]string) string {
	return strings.Join(board[:], boardSeparator)
}

func decodeBoard(value string) [9]string {
	var board [9]string
	copy(board[:], strings.Split(value, boardSeparator))

	return board
}
