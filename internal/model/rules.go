package model

// Reason explains why a move was rejected. Callers outside the engine only
// ever see the collapsed legal/illegal answer; reasons exist for diagnostics.
type Reason int

const (
	ReasonOK Reason = iota
	ReasonOutOfRange
	ReasonEmptySource
	ReasonWrongTurn
	ReasonOwnPieceAtTarget
	ReasonIllegalShape
	ReasonPathBlocked
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonOutOfRange:
		return "square out of range"
	case ReasonEmptySource:
		return "no piece on source square"
	case ReasonWrongTurn:
		return "not your turn"
	case ReasonOwnPieceAtTarget:
		return "destination holds own piece"
	case ReasonIllegalShape:
		return "piece cannot move that way"
	case ReasonPathBlocked:
		return "path is blocked"
	}
	return "unknown"
}

// Validate runs the full legality check for the side to move.
func (b *BoardState) Validate(from, to Square) Reason {
	if !from.InBounds() || !to.InBounds() {
		return ReasonOutOfRange
	}
	piece := b.OccupantAt(from)
	if piece == nil {
		return ReasonEmptySource
	}
	if piece.Color != b.ActiveColor {
		return ReasonWrongTurn
	}
	return b.checkGeometry(piece, from, to)
}

func (b *BoardState) IsLegal(from, to Square) bool {
	return b.Validate(from, to) == ReasonOK
}

// CanAttack reports whether the piece on from could legally move to to if it
// were its side's turn. The board's active color is not consulted.
func (b *BoardState) CanAttack(from, to Square) bool {
	if !from.InBounds() || !to.InBounds() {
		return false
	}
	piece := b.OccupantAt(from)
	if piece == nil {
		return false
	}
	return b.checkGeometry(piece, from, to) == ReasonOK
}

// LegalDestinations lists every square the piece on from may move to, in
// row-major order.
func (b *BoardState) LegalDestinations(from Square) []Square {
	moves := []Square{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			to := Square{Row: row, Col: col}
			if b.IsLegal(from, to) {
				moves = append(moves, to)
			}
		}
	}
	return moves
}

func (b *BoardState) checkGeometry(piece *Piece, from, to Square) Reason {
	target := b.OccupantAt(to)
	if target != nil && target.Color == piece.Color {
		return ReasonOwnPieceAtTarget
	}

	dRow := to.Row - from.Row
	dCol := to.Col - from.Col

	switch piece.Type {
	case Pawn:
		if !pawnShape(piece, target != nil, dRow, dCol) {
			return ReasonIllegalShape
		}
		return ReasonOK
	case Knight:
		if !knightShape(dRow, dCol) {
			return ReasonIllegalShape
		}
		return ReasonOK
	case King:
		if !kingShape(dRow, dCol) {
			return ReasonIllegalShape
		}
		return ReasonOK
	case Rook:
		if !straightShape(dRow, dCol) {
			return ReasonIllegalShape
		}
	case Bishop:
		if !diagonalShape(dRow, dCol) {
			return ReasonIllegalShape
		}
	case Queen:
		if !straightShape(dRow, dCol) && !diagonalShape(dRow, dCol) {
			return ReasonIllegalShape
		}
	default:
		return ReasonIllegalShape
	}

	if !PathClear(b, from, to) {
		return ReasonPathBlocked
	}
	return ReasonOK
}

// pawnShape: an occupied destination is only reachable diagonally forward,
// whatever the straight-ahead rule would have said.
func pawnShape(piece *Piece, capture bool, dRow, dCol int) bool {
	fwd := piece.Color.forward()
	if capture {
		return abs(dCol) == 1 && dRow == fwd
	}
	if dCol != 0 {
		return false
	}
	return dRow == fwd || (!piece.HasMoved && dRow == 2*fwd)
}

func knightShape(dRow, dCol int) bool {
	r, c := abs(dRow), abs(dCol)
	return (r == 2 && c == 1) || (r == 1 && c == 2)
}

// kingShape excludes the null move.
func kingShape(dRow, dCol int) bool {
	if dRow == 0 && dCol == 0 {
		return false
	}
	return abs(dRow) <= 1 && abs(dCol) <= 1
}

func straightShape(dRow, dCol int) bool {
	return (dRow == 0) != (dCol == 0)
}

func diagonalShape(dRow, dCol int) bool {
	return dRow != 0 && abs(dRow) == abs(dCol)
}
