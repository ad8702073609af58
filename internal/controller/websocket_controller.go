package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/chessrelay/internal/model"
	"github.com/benbeisheim/chessrelay/internal/service"
	"github.com/benbeisheim/chessrelay/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

var errMissingSquares = errors.New("move requires from and to as [row, col]")

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established.
// The game is created on first contact and dropped when its last observer
// disconnects.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	playerID, _ := c.Locals("wsPlayerID").(string)
	if gameID == "" || playerID == "" {
		log.Warnf("websocket opened without game or player id")
		c.Close()
		return
	}

	log.Infof("websocket connected: game %s player %s", gameID, playerID)
	wsc.gameService.RegisterConnection(gameID, playerID, c)
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("game %s player %s: read ended: %v", gameID, playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.gameService.SendTo(gameID, playerID, ws.NewErrorMessage(fmt.Sprintf("malformed message: %v", err)))
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.gameService.SendTo(gameID, playerID, ws.NewErrorMessage(err.Error()))
		}
	}
}

// Handle different types of incoming messages. Successful moves and resets
// are broadcast by the session itself.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		if msg.From == nil || msg.To == nil {
			return errMissingSquares
		}
		_, err := wsc.gameService.HandleMove(gameID, model.Move{From: *msg.From, To: *msg.To})
		return err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.ResetGame(gameID)
		return err

	case ws.MessageTypeLegalMoves:
		if msg.From == nil {
			return errMissingSquares
		}
		moves, err := wsc.gameService.LegalMoves(gameID, *msg.From)
		if err != nil {
			return err
		}
		wsc.gameService.SendTo(gameID, playerID, ws.NewLegalMovesMessage(*msg.From, moves))
		return nil

	case ws.MessageTypeLog:
		log.Debugf("game %s player %s: client log: %s", gameID, playerID, msg.Message)
		return nil

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
