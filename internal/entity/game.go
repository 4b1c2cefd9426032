package entity

import "time"

const (
	StatusPlaying = "playing"
	StatusWon     = "won"
	StatusDraw    = "draw"

	PlayerMark   = "X"
	OpponentMark = "O"

	EmptyCell = ""

	BoardSide = 3
)

const (
	OutcomePlayerWin   = "player_win"
	OutcomeOpponentWin = "opponent_win"
	OutcomeDraw        = "draw"
)

// WinCombos - the eight lines that decide a game: rows, columns, diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Game struct {
	Board  [9]string `json:"board"`
	Turn   string    `json:"turn"`
	Status string    `json:"status"`
	Winner string    `json:"winner,omitempty"`
}

func NewGame() Game {
	return Game{
		Turn:   PlayerMark,
		Status: StatusPlaying,
	}
}

// CheckWinner - returns the mark owning a complete line, or EmptyCell.
func CheckWinner(board [9]string) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func IsFull(board [9]string) bool {
	for _, cell := range board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func EmptyCells(board [9]string) []int {
	cells := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// CellIndex - maps a (row, col) pair to a board index.
func CellIndex(row, col int) (int, bool) {
	if row < 0 || row >= BoardSide || col < 0 || col >= BoardSide {
		return 0, false
	}

	return row*BoardSide + col, true
}

func (that Game) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

// Outcome - result of a finished game from the player's side.
func (that Game) Outcome() string {
	switch {
	case that.Status == StatusDraw:
		return OutcomeDraw
	case that.Status == StatusWon && that.Winner == PlayerMark:
		return OutcomePlayerWin
	case that.Status == StatusWon && that.Winner == OpponentMark:
		return OutcomeOpponentWin
	default:
		return ""
	}
}

func (that Game) MovesCount() int {
	return len(that.Board) - len(EmptyCells(that.Board))
}

type PlayerStats struct {
	Wins         int `json:"wins"`
	OpponentWins int `json:"opponent_wins"`
	Draws        int `json:"draws"`
}

// Record - counts a finished game. Unfinished games are ignored.
func (that PlayerStats) Record(game Game) PlayerStats {
	switch game.Outcome() {
	case OutcomePlayerWin:
		that.Wins++
	case OutcomeOpponentWin:
		that.OpponentWins++
	case OutcomeDraw:
		that.Draws++
	}

	return that
}

type Snapshot struct {
	Game    Game        `json:"game"`
	Stats   PlayerStats `json:"stats"`
	Applied bool        `json:"applied"`
}

type GameResult struct {
	ID         string    `json:"id"`
	ProfileID  string    `json:"profile_id"`
	Outcome    string    `json:"outcome"`
	Board      [9]string `json:"board"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}
