package model

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the row step a pawn of this color advances by. White starts on
// the low rows and moves toward row 7.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}
