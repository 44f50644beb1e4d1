// Package jsonstore persists a todo collection as a JSON array in a
// key-value backend.
//
// Reads never fail: missing, unreadable or malformed data yields an empty
// collection. Writes are fire-and-forget; failures are logged only.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/storage"
)

// DefaultKey is where the collection lives unless configured otherwise.
const DefaultKey = "todos"

// Store reads and writes collections through a storage.Backend.
type Store struct {
	backend storage.Backend
	logger  *log.Logger
}

// New returns a Store over backend. A nil logger discards log output.
func New(backend storage.Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{backend: backend, logger: logger}
}

// Read loads the collection stored under key.
func (s *Store) Read(key string) model.Collection {
	raw, err := s.backend.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("read failed, starting empty", "key", key, "err", err)
		}
		return model.Collection{}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return model.Collection{}
	}
	todos, err := Decode(raw)
	if err != nil {
		s.logger.Warn("discarding malformed data", "key", key, "err", err)
		return model.Collection{}
	}
	return todos
}

// Write stores todos under key, replacing whatever was there.
func (s *Store) Write(key string, todos model.Collection) {
	b, err := Encode(todos)
	if err != nil {
		s.logger.Warn("encode failed", "key", key, "err", err)
		return
	}
	if err := s.backend.Set(key, b); err != nil {
		s.logger.Warn("write failed", "key", key, "err", err)
		return
	}
	s.logger.Debug("written", "key", key, "count", len(todos), "bytes", len(b))
}

// Encode renders todos as a JSON array. Nil encodes as [].
func Encode(todos model.Collection) ([]byte, error) {
	if todos == nil {
		todos = model.Collection{}
	}
	return json.Marshal(todos)
}

// Decode parses and validates a JSON array of todos. Records repeating an
// earlier id are dropped.
func Decode(raw []byte) (model.Collection, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &SchemaError{Messages: schemaMessages(err)}
	}
	var todos model.Collection
	if err := json.Unmarshal(raw, &todos); err != nil {
		return nil, err
	}
	seen := make(map[model.ID]bool, len(todos))
	out := make(model.Collection, 0, len(todos))
	for _, t := range todos {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, nil
}
