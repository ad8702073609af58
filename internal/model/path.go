package model

// PathClear reports whether every square strictly between from and to is
// empty. from and to must be distinct and share a row, column or diagonal.
func PathClear(board *BoardState, from, to Square) bool {
	rowDir := sign(to.Row - from.Row)
	colDir := sign(to.Col - from.Col)

	cur := Square{Row: from.Row + rowDir, Col: from.Col + colDir}
	for cur != to {
		if board.OccupantAt(cur) != nil {
			return false
		}
		cur = Square{Row: cur.Row + rowDir, Col: cur.Col + colDir}
	}
	return true
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
