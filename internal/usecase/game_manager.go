package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/homeboard-backend/internal/apperror"
	"github.com/rocketscienceinc/homeboard-backend/internal/entity"
	"github.com/rocketscienceinc/homeboard-backend/internal/scheduler"
	"github.com/rocketscienceinc/homeboard-backend/internal/tictactoe"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100

	storageTimeout = 5 * time.Second
)

type statsRepo interface {
	Get(ctx context.Context, profileID string) (entity.PlayerStats, error)
	Save(ctx context.Context, profileID string, stats entity.PlayerStats) error
}

type historyRepo interface {
	Save(ctx context.Context, result entity.GameResult) error
	ListRecent(ctx context.Context, profileID string, limit int) ([]entity.GameResult, error)
}

type botService interface {
	SelectMove(board [9]string) (int, error)
}

type notifier interface {
	AddNotification(ctx context.Context, title, message string, severity entity.Severity) []entity.Notification
}

type GameSettings struct {
	ProfileID     string
	OpponentDelay time.Duration
}

// GameManager - owns the single game, the player's stats and the pending opponent move.
type GameManager struct {
	logger *slog.Logger

	mu         sync.Mutex
	game       entity.Game
	stats      entity.PlayerStats
	generation uint64
	pending    scheduler.Task
	closed     bool

	settings    GameSettings
	bot         botService
	scheduler   scheduler.Scheduler
	statsRepo   statsRepo
	historyRepo historyRepo
	notifier    notifier
	now         func() time.Time
}

func NewGameManager(
	logger *slog.Logger,
	settings GameSettings,
	bot botService,
	sched scheduler.Scheduler,
	statsRepo statsRepo,
	historyRepo historyRepo,
	notifier notifier,
) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game"),

		game: entity.NewGame(),

		settings:    settings,
		bot:         bot,
		scheduler:   sched,
		statsRepo:   statsRepo,
		historyRepo: historyRepo,
		notifier:    notifier,
		now:         time.Now,
	}
}

// LoadStats - seeds the counters from storage; a missing record keeps zero stats.
func (that *GameManager) LoadStats(ctx context.Context) error {
	stats, err := that.statsRepo.Get(ctx, that.settings.ProfileID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	that.mu.Lock()
	that.stats = stats
	that.mu.Unlock()

	return nil
}

func (that *GameManager) State() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot(false)
}

// MakeMove - the player's move at (row, col). Invalid moves leave the state unchanged
// and report Applied=false.
func (that *GameManager) MakeMove(ctx context.Context, row, col int) entity.Snapshot {
	snapshot, finished := that.applyPlayerMove(row, col)
	that.record(ctx, finished)

	return snapshot
}

func (that *GameManager) applyPlayerMove(row, col int) (entity.Snapshot, *finishedGame) {
	log := that.logger.With("method", "applyPlayerMove")

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return that.snapshot(false), nil
	}

	next, ok := tictactoe.PlayerMove(that.game, row, col)
	if !ok {
		log.Debug("move ignored", "row", row, "col", col, "status", that.game.Status, "turn", that.game.Turn)
		return that.snapshot(false), nil
	}

	finished := that.commit(next)

	if that.game.IsPlaying() {
		that.scheduleOpponentMove()
	}

	return that.snapshot(true), finished
}

// Reset - starts a fresh game; stats are kept and a pending opponent move is dropped.
func (that *GameManager) Reset(_ context.Context) entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelPending()
	that.game = entity.NewGame()

	that.logger.Info("game reset", "generation", that.generation)

	return that.snapshot(true)
}

// History - recently finished games, newest first.
func (that *GameManager) History(ctx context.Context, limit int) ([]entity.GameResult, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	limit = min(limit, maxHistoryLimit)

	results, err := that.historyRepo.ListRecent(ctx, that.settings.ProfileID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list game history: %w", err)
	}

	return results, nil
}

// Close - cancels the pending opponent move; later moves are ignored.
func (that *GameManager) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
	that.cancelPending()
}

// scheduleOpponentMove - caller holds mu.
func (that *GameManager) scheduleOpponentMove() {
	generation := that.generation
	that.pending = that.scheduler.AfterFunc(that.settings.OpponentDelay, func() {
		that.opponentMove(generation)
	})
}

func (that *GameManager) opponentMove(generation uint64) {
	finished := that.applyOpponentMove(generation)
	if finished == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	that.record(ctx, finished)
}

func (that *GameManager) applyOpponentMove(generation uint64) *finishedGame {
	log := that.logger.With("method", "applyOpponentMove")

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed || generation != that.generation {
		log.Debug("stale opponent move dropped", "scheduled", generation, "current", that.generation)
		return nil
	}

	if !that.game.IsPlaying() || that.game.Turn != entity.OpponentMark {
		return nil
	}

	that.pending = nil

	cell, err := that.bot.SelectMove(that.game.Board)
	if err != nil {
		log.Error("failed to select opponent move", "error", err)
		return nil
	}

	next, ok := tictactoe.MakeTurn(that.game, entity.OpponentMark, cell)
	if !ok {
		log.Error("opponent selected an invalid cell", "cell", cell)
		return nil
	}

	return that.commit(next)
}

// finishedGame - a completed game and the stats it produced, recorded outside mu.
type finishedGame struct {
	game  entity.Game
	stats entity.PlayerStats
}

// commit - stores the new game and counts it once if it just finished. Caller holds mu.
func (that *GameManager) commit(next entity.Game) *finishedGame {
	that.game = next

	if !next.IsFinished() {
		return nil
	}

	that.stats = that.stats.Record(next)
	that.logger.Info("game finished", "outcome", next.Outcome(), "stats", that.stats)

	return &finishedGame{game: next, stats: that.stats}
}

// record - persists and announces a finished game. Caller must not hold mu.
func (that *GameManager) record(ctx context.Context, finished *finishedGame) {
	if finished == nil {
		return
	}

	that.persistResult(ctx, finished)
	that.announce(ctx, finished.game)
}

func (that *GameManager) persistResult(ctx context.Context, finished *finishedGame) {
	log := that.logger.With("method", "persistResult")

	game := finished.game

	if err := that.statsRepo.Save(ctx, that.settings.ProfileID, finished.stats); err != nil {
		log.Warn("failed to save stats", "error", err)
	}

	result := entity.GameResult{
		ID:         uuid.NewString(),
		ProfileID:  that.settings.ProfileID,
		Outcome:    game.Outcome(),
		Board:      game.Board,
		Moves:      game.MovesCount(),
		FinishedAt: that.now().UTC(),
	}

	if err := that.historyRepo.Save(ctx, result); err != nil {
		log.Warn("failed to save game result", "error", err)
	}
}

func (that *GameManager) announce(ctx context.Context, game entity.Game) {
	if that.notifier == nil {
		return
	}

	switch game.Outcome() {
	case entity.OutcomePlayerWin:
		that.notifier.AddNotification(ctx, "Game Over", "You won the game!", entity.SeveritySuccess)
	case entity.OutcomeOpponentWin:
		that.notifier.AddNotification(ctx, "Game Over", "AI won the game", entity.SeverityWarning)
	case entity.OutcomeDraw:
		that.notifier.AddNotification(ctx, "Game Over", "The game ended in a draw", entity.SeverityInfo)
	}
}

// cancelPending - caller holds mu.
func (that *GameManager) cancelPending() {
	if that.pending != nil {
		that.pending.Stop()
		that.pending = nil
	}

	that.generation++
}

func (that *GameManager) snapshot(applied bool) entity.Snapshot {
	return entity.Snapshot{
		Game:    that.game,
		Stats:   that.stats,
		Applied: applied,
	}
}
