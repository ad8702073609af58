package model

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)

// MoveError carries the reason a move was rejected. It matches
// ErrIllegalMove under errors.Is.
type MoveError struct {
	From   Square
	To     Square
	Reason Reason
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("illegal move %s -> %s: %s", e.From, e.To, e.Reason)
}

func (e *MoveError) Is(target error) bool {
	return target == ErrIllegalMove
}
