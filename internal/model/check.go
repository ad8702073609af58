package model

// IsInCheck reports whether any opposing piece could capture the king of
// color. A side without a king on the board is never in check.
func IsInCheck(board *BoardState, color Color) bool {
	kingSquare, found := findKing(board, color)
	if !found {
		return false
	}
	return isSquareAttacked(board, color.Opponent(), kingSquare)
}

func findKing(board *BoardState, color Color) (Square, bool) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			sq := Square{Row: row, Col: col}
			p := board.OccupantAt(sq)
			if p != nil && p.Color == color && p.Type == King {
				return sq, true
			}
		}
	}
	return Square{}, false
}

func isSquareAttacked(board *BoardState, attackingColor Color, target Square) bool {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			sq := Square{Row: row, Col: col}
			p := board.OccupantAt(sq)
			if p == nil || p.Color != attackingColor {
				continue
			}
			if board.CanAttack(sq, target) {
				return true
			}
		}
	}
	return false
}
