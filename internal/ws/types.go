package ws

import (
	"github.com/benbeisheim/chessrelay/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeGameOver   MessageType = "game_over"
	MessageTypeLog        MessageType = "log"
	MessageTypeReset      MessageType = "reset"
	MessageTypeGameState  MessageType = "state"
	MessageTypeLegalMoves MessageType = "legal_moves"
	MessageTypeError      MessageType = "error"
)

// Message is the flat envelope shared by every frame on the socket. Only the
// fields relevant to Type are set.
type Message struct {
	Type          MessageType      `json:"type"`
	From          *model.Square    `json:"from,omitempty"`
	To            *model.Square    `json:"to,omitempty"`
	CurrentPlayer model.Color      `json:"current_player,omitempty"`
	Check         bool             `json:"check,omitempty"`
	Winner        model.Color      `json:"winner,omitempty"`
	Message       string           `json:"message,omitempty"`
	Moves         []model.Square   `json:"moves,omitempty"`
	State         *model.GameState `json:"state,omitempty"`
}

func NewMoveMessage(result model.MoveResult) Message {
	from, to := result.From, result.To
	return Message{
		Type:          MessageTypeMove,
		From:          &from,
		To:            &to,
		CurrentPlayer: result.CurrentPlayer,
		Check:         result.Check,
	}
}

func NewGameOverMessage(winner model.Color) Message {
	return Message{Type: MessageTypeGameOver, Winner: winner}
}

func NewLogMessage(text string) Message {
	return Message{Type: MessageTypeLog, Message: text}
}

func NewErrorMessage(text string) Message {
	return Message{Type: MessageTypeError, Message: text}
}

func NewStateMessage(state model.GameState) Message {
	return Message{Type: MessageTypeGameState, State: &state, CurrentPlayer: state.CurrentPlayer, Winner: state.Winner}
}

func NewLegalMovesMessage(from model.Square, moves []model.Square) Message {
	return Message{Type: MessageTypeLegalMoves, From: &from, Moves: moves}
}
