package model

import "fmt"

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusTerminal   Status = "terminal"
)

// Game drives one board through move attempts until a king is captured.
// It is not safe for concurrent use; callers serialise access per game.
type Game struct {
	board   *BoardState
	status  Status
	winner  Color
	history []Ply
}

// MoveResult describes an accepted move.
type MoveResult struct {
	From          Square `json:"from"`
	To            Square `json:"to"`
	Mover         Color  `json:"mover"`
	Captured      *Piece `json:"captured"`
	CurrentPlayer Color  `json:"current_player"`
	Check         bool   `json:"check"`
	GameOver      bool   `json:"game_over"`
	Winner        Color  `json:"winner,omitempty"`
	Notation      string `json:"notation"`
}

// GameState is a read-only snapshot for rendering and transport.
type GameState struct {
	Board         [][]*Piece `json:"board"`
	CurrentPlayer Color      `json:"current_player"`
	Status        Status     `json:"status"`
	Winner        Color      `json:"winner,omitempty"`
	IsCheck       bool       `json:"isCheck"`
	MoveHistory   []Ply      `json:"moveHistory"`
}

func NewGame() *Game {
	return NewGameFromBoard(NewBoard())
}

// NewGameFromBoard starts an in-progress game on an arbitrary position.
func NewGameFromBoard(board *BoardState) *Game {
	return &Game{
		board:   board,
		status:  StatusInProgress,
		history: make([]Ply, 0),
	}
}

// AttemptMove validates and, if legal, plays from -> to. A rejected move
// leaves the game untouched. Once a king has been captured every attempt
// fails with ErrGameOver until Reset.
func (g *Game) AttemptMove(from, to Square) (MoveResult, error) {
	if g.status == StatusTerminal {
		return MoveResult{}, fmt.Errorf("move %s -> %s: %w", from, to, ErrGameOver)
	}
	if reason := g.board.Validate(from, to); reason != ReasonOK {
		return MoveResult{}, &MoveError{From: from, To: to, Reason: reason}
	}

	mover := g.board.ActiveColor
	piece := *g.board.OccupantAt(from)
	var captured *Piece
	if target := g.board.OccupantAt(to); target != nil {
		cp := *target
		captured = &cp
	}

	g.board.ApplyMove(from, to)
	ply := makePly(piece, from, to, captured)
	g.history = append(g.history, ply)

	result := MoveResult{
		From:          from,
		To:            to,
		Mover:         mover,
		Captured:      captured,
		CurrentPlayer: g.board.ActiveColor,
		Notation:      ply.Notation,
	}
	if captured != nil && captured.Type == King {
		g.status = StatusTerminal
		g.winner = mover
		result.GameOver = true
		result.Winner = mover
		return result, nil
	}
	result.Check = IsInCheck(g.board, g.board.ActiveColor)
	return result, nil
}

// Move is AttemptMove collapsed to accepted or not.
func (g *Game) Move(from, to Square) bool {
	_, err := g.AttemptMove(from, to)
	return err == nil
}

func (g *Game) Reset() {
	g.board.Reset()
	g.status = StatusInProgress
	g.winner = ""
	g.history = make([]Ply, 0)
}

func (g *Game) ActiveColor() Color {
	return g.board.ActiveColor
}

func (g *Game) Terminal() bool {
	return g.status == StatusTerminal
}

// Winner returns the winning color once the game is terminal.
func (g *Game) Winner() (Color, bool) {
	if g.status != StatusTerminal {
		return "", false
	}
	return g.winner, true
}

// Board exposes the live board. Mutating it bypasses move validation.
func (g *Game) Board() *BoardState {
	return g.board
}

// LegalDestinations is empty for every square once the game is over.
func (g *Game) LegalDestinations(from Square) []Square {
	if g.status == StatusTerminal {
		return []Square{}
	}
	return g.board.LegalDestinations(from)
}

func (g *Game) History() []Ply {
	history := make([]Ply, len(g.history))
	copy(history, g.history)
	return history
}

func (g *Game) GetState() GameState {
	state := GameState{
		Board:         g.board.Grid(),
		CurrentPlayer: g.board.ActiveColor,
		Status:        g.status,
		MoveHistory:   g.History(),
	}
	if g.status == StatusTerminal {
		state.Winner = g.winner
	} else {
		state.IsCheck = IsInCheck(g.board, g.board.ActiveColor)
	}
	return state
}
