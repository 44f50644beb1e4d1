// Package actions publishes the todo mutations to UI code.
//
// UIs never reach for a global: they receive an Actions (and, to render, a
// View) through their constructors. Provider is the one implementation; it
// keeps the in-memory store and the persisted copy in step.
package actions

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
)

// Actions is the mutation bundle handed to UI components.
// Unknown ids are ignored.
type Actions interface {
	Add(d model.Draft) model.Todo
	Update(id model.ID, t model.Todo)
	Delete(id model.ID)
	ToggleComplete(id model.ID)
}

// View exposes the current collection for rendering.
type View interface {
	Todos() model.Collection
}

// Persister is the persistence side the Provider writes through.
type Persister interface {
	Read(key string) model.Collection
	Write(key string, todos model.Collection)
}

// Provider binds a todo.Store to a Persister.
type Provider struct {
	mu     sync.Mutex
	store  *todo.Store
	db     Persister
	key    string
	logger *log.Logger
}

var (
	_ Actions = (*Provider)(nil)
	_ View    = (*Provider)(nil)
)

// Provide hydrates store from db under key and returns the bound Provider.
// The read happens here, once, before any caller can render.
func Provide(store *todo.Store, db Persister, key string, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Provider{store: store, db: db, key: key, logger: logger}
	loaded := store.Hydrate(db.Read(key))
	logger.Debug("hydrated", "key", key, "count", len(loaded))
	return p
}

func (p *Provider) Todos() model.Collection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Todos()
}

func (p *Provider) Add(d model.Draft) model.Todo {
	p.mu.Lock()
	defer p.mu.Unlock()
	added, next := p.store.Add(d)
	p.logger.Debug("add", "id", added.ID)
	p.db.Write(p.key, next)
	return added
}

func (p *Provider) Update(id model.ID, t model.Todo) {
	p.apply("update", id, func() model.Collection { return p.store.Update(id, t) })
}

func (p *Provider) Delete(id model.ID) {
	p.apply("delete", id, func() model.Collection { return p.store.Delete(id) })
}

func (p *Provider) ToggleComplete(id model.ID) {
	p.apply("toggle", id, func() model.Collection { return p.store.ToggleComplete(id) })
}

// apply runs one mutation and writes once if the collection changed.
func (p *Provider) apply(op string, id model.ID, mutate func() model.Collection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.store.Todos()
	next := mutate()
	if next.Equal(prev) {
		p.logger.Debug(op+" ignored", "id", id)
		return
	}
	p.logger.Debug(op, "id", id)
	p.db.Write(p.key, next)
}
