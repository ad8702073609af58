package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/benbeisheim/chessrelay/internal/model"
	"github.com/benbeisheim/chessrelay/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Observer receives every frame broadcast for a game. *websocket.Conn
// satisfies it.
type Observer interface {
	WriteJSON(v interface{}) error
}

// Session is one game plus the observers watching it. All access to the game
// goes through the session mutex, which also orders writes to observers.
// Once retired a session accepts no new observers; the registry drops it.
type Session struct {
	ID         string
	mu         sync.Mutex
	game       *model.Game
	observers  map[string]Observer // playerID -> observer
	whiteClock *model.Clock
	blackClock *model.Clock
	lastActive time.Time
	retired    bool
}

// SessionState is what clients get when they ask for a game's state.
type SessionState struct {
	model.GameState
	Clocks struct {
		White model.ClientClock `json:"white"`
		Black model.ClientClock `json:"black"`
	} `json:"clocks"`
	Observers []string `json:"observers"`
}

func newSession(id string) *Session {
	s := &Session{
		ID:         id,
		game:       model.NewGame(),
		observers:  make(map[string]Observer),
		whiteClock: model.NewClock(),
		blackClock: model.NewClock(),
		lastActive: time.Now(),
	}
	s.whiteClock.Start()
	return s
}

// addObserver reports false if the session was retired before obs got in.
func (s *Session) addObserver(playerID string, obs Observer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.retired {
		return false
	}
	s.lastActive = time.Now()
	if _, exists := s.observers[playerID]; exists {
		log.Warnf("game %s: replacing connection for player %s", s.ID, playerID)
	}
	s.observers[playerID] = obs
	s.sendLocked(obs, playerID, ws.NewStateMessage(s.game.GetState()))
	s.broadcastLocked(ws.NewLogMessage(fmt.Sprintf("%s joined", playerID)))
	return true
}

// removeObserver drops playerID only if obs is still its current observer and
// reports how many observers remain.
func (s *Session) removeObserver(playerID string, obs Observer) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, exists := s.observers[playerID]; exists && current == obs {
		delete(s.observers, playerID)
		s.lastActive = time.Now()
		s.broadcastLocked(ws.NewLogMessage(fmt.Sprintf("%s left", playerID)))
	} else {
		log.Debugf("game %s: ignoring unregister for stale connection of %s", s.ID, playerID)
	}
	return len(s.observers)
}

// retireIfEmpty retires the session if its last observer is gone.
func (s *Session) retireIfEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.observers) == 0 {
		s.retired = true
	}
	return s.retired
}

// retireIfIdle retires the session when nobody watches it and nothing has
// touched it since cutoff.
func (s *Session) retireIfIdle(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.observers) == 0 && !s.lastActive.After(cutoff) {
		s.retired = true
	}
	return s.retired
}

func (s *Session) observerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

// move plays one move and fans the outcome out to every observer.
func (s *Session) move(from, to model.Square) (model.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.game.AttemptMove(from, to)
	if err != nil {
		return result, err
	}
	s.lastActive = time.Now()

	s.clockFor(result.Mover).Stop()
	if !result.GameOver {
		s.clockFor(result.CurrentPlayer).Start()
	}

	s.broadcastLocked(ws.NewMoveMessage(result))
	switch {
	case result.GameOver:
		s.broadcastLocked(ws.NewGameOverMessage(result.Winner))
	case result.Check:
		s.broadcastLocked(ws.NewLogMessage(fmt.Sprintf("%s king is in check", result.CurrentPlayer)))
	}
	return result, nil
}

func (s *Session) reset() model.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.game.Reset()
	s.lastActive = time.Now()
	s.whiteClock.Reset()
	s.blackClock.Reset()
	s.whiteClock.Start()

	state := s.game.GetState()
	s.broadcastLocked(ws.NewStateMessage(state))
	return state
}

func (s *Session) state() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	var state SessionState
	state.GameState = s.game.GetState()
	state.Clocks.White = s.whiteClock.Client()
	state.Clocks.Black = s.blackClock.Client()
	state.Observers = make([]string, 0, len(s.observers))
	for playerID := range s.observers {
		state.Observers = append(state.Observers, playerID)
	}
	sort.Strings(state.Observers)
	return state
}

func (s *Session) legalMoves(from model.Square) []model.Square {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LegalDestinations(from)
}

func (s *Session) history() []model.Ply {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.History()
}

// send writes a frame to a single player.
func (s *Session) send(playerID string, msg ws.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if obs, ok := s.observers[playerID]; ok {
		s.sendLocked(obs, playerID, msg)
	}
}

func (s *Session) sendLocked(obs Observer, playerID string, msg ws.Message) {
	if err := obs.WriteJSON(msg); err != nil {
		log.Errorf("game %s: failed to send %s to %s: %v", s.ID, msg.Type, playerID, err)
		if s.observers[playerID] == obs {
			delete(s.observers, playerID)
		}
	}
}

func (s *Session) broadcastLocked(msg ws.Message) {
	// Copy first: sendLocked may drop failed observers from the map.
	targets := make(map[string]Observer, len(s.observers))
	for playerID, obs := range s.observers {
		targets[playerID] = obs
	}
	for playerID, obs := range targets {
		s.sendLocked(obs, playerID, msg)
	}
}

func (s *Session) clockFor(color model.Color) *model.Clock {
	if color == model.White {
		return s.whiteClock
	}
	return s.blackClock
}
