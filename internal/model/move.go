package model

import "fmt"

type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Ply is one accepted half-move as recorded in the game history.
type Ply struct {
	Piece         Piece  `json:"piece"`
	From          Square `json:"from"`
	To            Square `json:"to"`
	CapturedPiece *Piece `json:"capturedPiece"`
	Notation      string `json:"notation"`
}

func makePly(piece Piece, from, to Square, captured *Piece) Ply {
	return Ply{
		Piece:         piece,
		From:          from,
		To:            to,
		CapturedPiece: captured,
		Notation:      notation(piece, from, to, captured),
	}
}

func notation(piece Piece, from, to Square, captured *Piece) string {
	prefix := piece.Type.getPieceNotation()
	pawnFile := ""
	capture := ""
	if captured != nil {
		capture = "x"
		if piece.Type == Pawn {
			pawnFile = from.getFileNotation()
		}
	}
	suffix := ""
	if captured != nil && captured.Type == King {
		suffix = "#"
	}
	return fmt.Sprintf("%s%s%s%s%s", prefix, pawnFile, capture, to.getSquareNotation(), suffix)
}
