package model

import (
	"errors"
	"testing"
	"time"
)

func mustMove(t *testing.T, g *Game, from, to Square) MoveResult {
	t.Helper()
	result, err := g.AttemptMove(from, to)
	if err != nil {
		t.Fatalf("move %s -> %s: %v", from, to, err)
	}
	return result
}

func TestOpeningMoves(t *testing.T) {
	g := NewGame()

	result := mustMove(t, g, sq(1, 4), sq(3, 4))
	if result.CurrentPlayer != Black || g.ActiveColor() != Black {
		t.Fatalf("expected black to move after white's push, got %s", g.ActiveColor())
	}
	if result.Mover != White || result.Captured != nil || result.GameOver {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Notation != "e4" {
		t.Errorf("expected notation e4, got %q", result.Notation)
	}

	mustMove(t, g, sq(6, 4), sq(4, 4))
	if g.ActiveColor() != White {
		t.Fatalf("expected white to move, got %s", g.ActiveColor())
	}

	pawn := g.Board().OccupantAt(sq(3, 4))
	if pawn == nil || !pawn.HasMoved {
		t.Fatal("moved pawn should be marked as moved")
	}
	if g.Move(sq(3, 4), sq(5, 4)) {
		t.Fatal("moved pawn must not double step")
	}
	if len(g.History()) != 2 {
		t.Fatalf("expected 2 plies, got %d", len(g.History()))
	}
}

func TestRejectedMoveLeavesGameUntouched(t *testing.T) {
	attempts := []struct {
		name     string
		from, to Square
		reason   Reason
	}{
		{"off board", sq(1, 0), sq(-1, 0), ReasonOutOfRange},
		{"wrong turn", sq(6, 0), sq(5, 0), ReasonWrongTurn},
		{"empty", sq(3, 3), sq(4, 3), ReasonEmptySource},
		{"own piece", sq(0, 3), sq(1, 3), ReasonOwnPieceAtTarget},
		{"knight onto own pawn", sq(0, 1), sq(1, 3), ReasonOwnPieceAtTarget},
		{"blocked", sq(0, 0), sq(4, 0), ReasonPathBlocked},
		{"knight straight", sq(0, 6), sq(2, 6), ReasonIllegalShape},
	}
	for _, tt := range attempts {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame()
			before := g.Board().Clone()

			_, err := g.AttemptMove(tt.from, tt.to)
			if !errors.Is(err, ErrIllegalMove) {
				t.Fatalf("expected ErrIllegalMove, got %v", err)
			}
			var moveErr *MoveError
			if !errors.As(err, &moveErr) || moveErr.Reason != tt.reason {
				t.Fatalf("expected reason %s, got %v", tt.reason, err)
			}
			if !g.Board().Equal(before) {
				t.Fatal("board changed after a rejected move")
			}
			if g.ActiveColor() != White || len(g.History()) != 0 {
				t.Fatal("turn or history changed after a rejected move")
			}
		})
	}
}

func TestTurnAlternatesOnlyOnSuccess(t *testing.T) {
	g := NewGame()
	sequence := []struct {
		from, to Square
		ok       bool
		next     Color
	}{
		{sq(1, 0), sq(3, 0), true, Black},
		{sq(1, 1), sq(3, 1), false, Black},
		{sq(6, 0), sq(4, 0), true, White},
		{sq(4, 0), sq(3, 0), false, White},
		{sq(0, 0), sq(2, 0), true, Black},
		{sq(6, 7), sq(5, 7), true, White},
	}
	for i, step := range sequence {
		if got := g.Move(step.from, step.to); got != step.ok {
			t.Fatalf("step %d %s -> %s: accepted=%v, want %v", i, step.from, step.to, got, step.ok)
		}
		if g.ActiveColor() != step.next {
			t.Fatalf("step %d: expected %s to move, got %s", i, step.next, g.ActiveColor())
		}
	}
}

func TestCheckIsReportedButNotEnforced(t *testing.T) {
	b := emptyBoard(Black)
	b.Place(sq(0, 4), &Piece{Type: King, Color: White})
	b.Place(sq(7, 7), &Piece{Type: King, Color: Black})
	b.Place(sq(7, 0), &Piece{Type: Rook, Color: Black})
	b.Place(sq(1, 0), &Piece{Type: Pawn, Color: White})
	g := NewGameFromBoard(b)

	result := mustMove(t, g, sq(7, 0), sq(7, 4))
	if !result.Check {
		t.Fatal("expected check on the white king")
	}
	if !g.GetState().IsCheck {
		t.Fatal("state should report check")
	}

	// White ignores the check; nothing stops it.
	result = mustMove(t, g, sq(1, 0), sq(2, 0))
	if result.Check {
		t.Fatal("black king is not in check")
	}

	// Black takes the king.
	result = mustMove(t, g, sq(7, 4), sq(0, 4))
	if !result.GameOver || result.Winner != Black {
		t.Fatalf("expected black to win by king capture, got %+v", result)
	}
	if result.Captured == nil || result.Captured.Type != King {
		t.Fatalf("expected captured king, got %+v", result.Captured)
	}
}

func TestKingCaptureEndsGame(t *testing.T) {
	g := NewGame()
	// Open the e-file and walk the queen up to the black king.
	mustMove(t, g, sq(1, 4), sq(3, 4))
	mustMove(t, g, sq(6, 5), sq(5, 5))
	mustMove(t, g, sq(0, 3), sq(4, 7))
	mustMove(t, g, sq(6, 0), sq(5, 0))

	result := mustMove(t, g, sq(4, 7), sq(7, 4))
	if !result.GameOver || result.Winner != White {
		t.Fatalf("expected white win, got %+v", result)
	}
	if !g.Terminal() {
		t.Fatal("game should be terminal")
	}
	winner, ok := g.Winner()
	if !ok || winner != White {
		t.Fatalf("Winner() = %s, %v", winner, ok)
	}
	if last := g.History()[len(g.History())-1]; last.Notation != "Qxe8#" {
		t.Errorf("expected Qxe8#, got %q", last.Notation)
	}

	state := g.GetState()
	if state.Status != StatusTerminal || state.Winner != White {
		t.Errorf("state does not report the win: %+v", state.Status)
	}
}

func TestMovesAfterTerminalRequireReset(t *testing.T) {
	b := emptyBoard(White)
	b.Place(sq(0, 0), &Piece{Type: Rook, Color: White})
	b.Place(sq(0, 4), &Piece{Type: King, Color: White})
	b.Place(sq(5, 0), &Piece{Type: King, Color: Black})
	b.Place(sq(6, 6), &Piece{Type: Pawn, Color: Black})
	g := NewGameFromBoard(b)

	mustMove(t, g, sq(0, 0), sq(5, 0))
	before := g.Board().Clone()

	// Black's pawn move would be legal on the board, but the game is over.
	_, err := g.AttemptMove(sq(6, 6), sq(5, 6))
	if !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if !g.Board().Equal(before) {
		t.Fatal("board changed after the game ended")
	}
	if moves := g.LegalDestinations(sq(6, 6)); len(moves) != 0 {
		t.Fatalf("expected no legal moves after the game ended, got %v", moves)
	}

	g.Reset()
	if g.Terminal() {
		t.Fatal("reset should return the game to in progress")
	}
	if _, ok := g.Winner(); ok {
		t.Fatal("reset should clear the winner")
	}
	if !g.Board().Equal(NewBoard()) || len(g.History()) != 0 {
		t.Fatal("reset should restore the initial layout and clear history")
	}
	mustMove(t, g, sq(1, 4), sq(3, 4))
}

func TestGameStateSnapshot(t *testing.T) {
	g := NewGame()
	mustMove(t, g, sq(0, 6), sq(2, 5))

	state := g.GetState()
	if state.CurrentPlayer != Black || state.Status != StatusInProgress {
		t.Fatalf("unexpected state header %s/%s", state.CurrentPlayer, state.Status)
	}
	if state.Board[2][5] == nil || state.Board[2][5].Type != Knight {
		t.Fatal("snapshot should show the knight on (2,5)")
	}
	if len(state.MoveHistory) != 1 || state.MoveHistory[0].Notation != "Nf3" {
		t.Fatalf("unexpected history %+v", state.MoveHistory)
	}
}

func TestClockAccumulates(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewClock()
	c.now = func() time.Time { return now }

	c.Start()
	now = now.Add(3 * time.Second)
	if got := c.Elapsed(); got != 3*time.Second {
		t.Fatalf("running clock: got %v", got)
	}
	c.Stop()
	now = now.Add(time.Minute)
	if got := c.Elapsed(); got != 3*time.Second {
		t.Fatalf("stopped clock kept running: %v", got)
	}

	c.Start()
	now = now.Add(2 * time.Second)
	client := c.Client()
	if client.Elapsed != 5000 || !client.Running {
		t.Fatalf("unexpected client clock %+v", client)
	}

	c.Reset()
	if c.Elapsed() != 0 {
		t.Fatal("reset should zero the clock")
	}
}
