package model

import (
	"encoding/json"
	"fmt"
)

type PieceType string

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

const BoardSize = 8

var backRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
}

// Square is a (row, col) pair on the board's own coordinates: rows 0 and 1
// hold white's back rank and pawns.
type Square struct {
	Row int
	Col int
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

func (s Square) getSquareNotation() string {
	return fmt.Sprintf("%c%d", s.Col+'a', s.Row+1)
}

func (s Square) getFileNotation() string {
	return fmt.Sprintf("%c", s.Col+'a')
}

// Squares travel over the wire as two-element [row, col] arrays.
func (s Square) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Row, s.Col})
}

func (s *Square) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("square: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("square: expected [row, col], got %d elements", len(pair))
	}
	s.Row, s.Col = pair[0], pair[1]
	return nil
}

type BoardState struct {
	grid        [BoardSize][BoardSize]*Piece
	ActiveColor Color
}

func NewBoard() *BoardState {
	board := &BoardState{}
	board.Reset()
	return board
}

// Reset restores the starting layout with white to move.
func (b *BoardState) Reset() {
	b.grid = [BoardSize][BoardSize]*Piece{}
	for col := 0; col < BoardSize; col++ {
		b.grid[0][col] = &Piece{Type: backRank[col], Color: White}
		b.grid[1][col] = &Piece{Type: Pawn, Color: White}
		b.grid[6][col] = &Piece{Type: Pawn, Color: Black}
		b.grid[7][col] = &Piece{Type: backRank[col], Color: Black}
	}
	b.ActiveColor = White
}

// OccupantAt returns the piece on sq or nil. sq must be in bounds.
func (b *BoardState) OccupantAt(sq Square) *Piece {
	return b.grid[sq.Row][sq.Col]
}

// Place puts p on sq, replacing whatever was there. Used to set up positions.
func (b *BoardState) Place(sq Square, p *Piece) {
	b.grid[sq.Row][sq.Col] = p
}

// Clear empties every square without touching the active color.
func (b *BoardState) Clear() {
	b.grid = [BoardSize][BoardSize]*Piece{}
}

// ApplyMove relocates the piece on from to to and passes the turn. It does
// no legality checking.
func (b *BoardState) ApplyMove(from, to Square) {
	piece := b.grid[from.Row][from.Col]
	b.grid[from.Row][from.Col] = nil
	b.grid[to.Row][to.Col] = piece
	if piece != nil {
		piece.HasMoved = true
	}
	b.ActiveColor = b.ActiveColor.Opponent()
}

// Grid returns a copy of the board for rendering. Pieces are copied too so
// callers cannot mutate the live board.
func (b *BoardState) Grid() [][]*Piece {
	rows := make([][]*Piece, BoardSize)
	for r := 0; r < BoardSize; r++ {
		rows[r] = make([]*Piece, BoardSize)
		for c := 0; c < BoardSize; c++ {
			if p := b.grid[r][c]; p != nil {
				cp := *p
				rows[r][c] = &cp
			}
		}
	}
	return rows
}

func (b *BoardState) Clone() *BoardState {
	clone := &BoardState{ActiveColor: b.ActiveColor}
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if p := b.grid[r][c]; p != nil {
				cp := *p
				clone.grid[r][c] = &cp
			}
		}
	}
	return clone
}

// Equal reports whether both boards hold the same pieces and side to move.
func (b *BoardState) Equal(other *BoardState) bool {
	if b.ActiveColor != other.ActiveColor {
		return false
	}
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			p, q := b.grid[r][c], other.grid[r][c]
			if (p == nil) != (q == nil) {
				return false
			}
			if p != nil && *p != *q {
				return false
			}
		}
	}
	return true
}
