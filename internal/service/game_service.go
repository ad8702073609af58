package service

import (
	"fmt"
	"time"

	"github.com/benbeisheim/chessrelay/internal/model"
	"github.com/benbeisheim/chessrelay/internal/storage"
	"github.com/benbeisheim/chessrelay/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// ResultStore archives finished games.
type ResultStore interface {
	Save(result storage.GameResult) error
	Load(gameID string) (storage.GameResult, error)
	List() ([]storage.GameResult, error)
	Wins() (map[model.Color]int, error)
}

type GameService struct {
	gameManager *GameManager
	results     ResultStore
	now         func() time.Time
}

func NewGameService(gameManager *GameManager, results ResultStore) *GameService {
	return &GameService{
		gameManager: gameManager,
		results:     results,
		now:         time.Now,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if _, err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (SessionState, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return SessionState{}, err
	}
	return session.state(), nil
}

// HandleMove plays a move for gameID and archives the game if it ended.
func (gs *GameService) HandleMove(gameID string, move model.Move) (model.MoveResult, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.MoveResult{}, err
	}

	result, err := session.move(move.From, move.To)
	if err != nil {
		log.Debugf("game %s: rejected %s -> %s: %v", gameID, move.From, move.To, err)
		return result, err
	}
	log.Infof("game %s: %s played %s", gameID, result.Mover, result.Notation)

	if result.GameOver {
		gs.archive(session, result.Winner)
	}
	return result, nil
}

func (gs *GameService) ResetGame(gameID string) (model.GameState, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	log.Infof("game %s: reset", gameID)
	return session.reset(), nil
}

func (gs *GameService) LegalMoves(gameID string, from model.Square) ([]model.Square, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.legalMoves(from), nil
}

func (gs *GameService) GetResult(gameID string) (storage.GameResult, error) {
	if gs.results == nil {
		return storage.GameResult{}, storage.ErrResultNotFound
	}
	return gs.results.Load(gameID)
}

// Results lists every archived game with a win tally per color.
func (gs *GameService) Results() ([]storage.GameResult, map[model.Color]int, error) {
	if gs.results == nil {
		return []storage.GameResult{}, map[model.Color]int{model.White: 0, model.Black: 0}, nil
	}
	results, err := gs.results.List()
	if err != nil {
		return nil, nil, fmt.Errorf("list results: %w", err)
	}
	wins, err := gs.results.Wins()
	if err != nil {
		return nil, nil, fmt.Errorf("count wins: %w", err)
	}
	return results, wins, nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, obs Observer) {
	gs.gameManager.Join(gameID, playerID, obs)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, obs Observer) {
	gs.gameManager.Leave(gameID, playerID, obs)
}

// SendTo delivers a frame to one player of a game, if connected.
func (gs *GameService) SendTo(gameID string, playerID string, msg ws.Message) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	session.send(playerID, msg)
}

func (gs *GameService) archive(session *Session, winner model.Color) {
	if gs.results == nil {
		return
	}
	result := storage.GameResult{
		GameID:     session.ID,
		Winner:     winner,
		Plies:      session.history(),
		FinishedAt: gs.now().UTC(),
	}
	if err := gs.results.Save(result); err != nil {
		log.Errorf("game %s: failed to archive result: %v", session.ID, err)
	}
}
