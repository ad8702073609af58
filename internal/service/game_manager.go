// service/game_manager.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager is the process-wide registry of live sessions. A session is
// created on first contact for its id and destroyed when its last observer
// disconnects. gm.mu only guards the map; it is never held while a session
// lock is taken, so a stalled connection cannot stall other games.
type GameManager struct {
	games map[string]*Session
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*Session),
	}
}

func (gm *GameManager) CreateGame(gameID string) (*Session, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, fmt.Errorf("create %s: %w", gameID, ErrGameExists)
	}

	session := newSession(gameID)
	gm.games[gameID] = session
	log.Infof("game %s created", gameID)
	return session, nil
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}

	return session, nil
}

// Join attaches an observer to gameID, creating the game if needed.
func (gm *GameManager) Join(gameID, playerID string, obs Observer) *Session {
	for {
		session := gm.getOrCreate(gameID, playerID)
		if session.addObserver(playerID, obs) {
			return session
		}
		// Retired between lookup and join.
		gm.remove(gameID, session)
	}
}

// Leave detaches obs and drops the game once nobody is watching it.
func (gm *GameManager) Leave(gameID, playerID string, obs Observer) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	if remaining := session.removeObserver(playerID, obs); remaining > 0 {
		return
	}
	if session.retireIfEmpty() && gm.remove(gameID, session) {
		log.Infof("game %s closed, last observer left", gameID)
	}
}

// Sweep drops games that nobody has watched or played since cutoff, such as
// games created over REST that no connection ever joined.
func (gm *GameManager) Sweep(cutoff time.Time) int {
	gm.mu.RLock()
	sessions := make([]*Session, 0, len(gm.games))
	for _, session := range gm.games {
		sessions = append(sessions, session)
	}
	gm.mu.RUnlock()

	removed := 0
	for _, session := range sessions {
		if session.retireIfIdle(cutoff) && gm.remove(session.ID, session) {
			log.Infof("game %s closed, idle with no observers", session.ID)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (gm *GameManager) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			gm.Sweep(now.Add(-maxIdle))
		}
	}
}

func (gm *GameManager) Count() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

func (gm *GameManager) getOrCreate(gameID, playerID string) *Session {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	session, exists := gm.games[gameID]
	if !exists {
		session = newSession(gameID)
		gm.games[gameID] = session
		log.Infof("game %s created on first contact by %s", gameID, playerID)
	}
	return session
}

// remove deletes gameID only if it still maps to session.
func (gm *GameManager) remove(gameID string, session *Session) bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if gm.games[gameID] != session {
		return false
	}
	delete(gm.games, gameID)
	return true
}
