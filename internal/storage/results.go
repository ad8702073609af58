// Package storage archives the outcome of finished games in BadgerDB.
// Live game state is never persisted.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/benbeisheim/chessrelay/internal/model"
	"github.com/dgraph-io/badger/v4"
)

const keyPrefixResult = "result/"

var ErrResultNotFound = errors.New("result not found")

// GameResult is the archived record of a game that ended in a king capture.
type GameResult struct {
	GameID     string      `json:"game_id"`
	Winner     model.Color `json:"winner"`
	Plies      []model.Ply `json:"plies"`
	FinishedAt time.Time   `json:"finished_at"`
}

type Results struct {
	db *badger.DB
}

// Open opens the archive in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Results, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open results db: %w", err)
	}
	return &Results{db: db}, nil
}

func (r *Results) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Results) Save(result GameResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefixResult+result.GameID), data)
	})
}

func (r *Results) Load(gameID string) (GameResult, error) {
	var result GameResult

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefixResult + gameID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrResultNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &result)
		})
	})

	return result, err
}

// List returns every archived result ordered by game id.
func (r *Results) List() ([]GameResult, error) {
	results := []GameResult{}

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefixResult)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var result GameResult
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &result)
			}); err != nil {
				return err
			}
			results = append(results, result)
		}
		return nil
	})

	return results, err
}

// Wins counts archived victories per color.
func (r *Results) Wins() (map[model.Color]int, error) {
	results, err := r.List()
	if err != nil {
		return nil, err
	}
	wins := map[model.Color]int{model.White: 0, model.Black: 0}
	for _, result := range results {
		wins[result.Winner]++
	}
	return wins, nil
}
