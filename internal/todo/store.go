package todo

import "github.com/Makepad-fr/tada/internal/model"

// Store owns the current collection snapshot.
// It is not safe for concurrent use; callers serialize access.
type Store struct {
	todos model.Collection
	ids   *IDSource
}

// NewStore returns an empty store. A nil ids uses a wall-clock IDSource.
func NewStore(ids *IDSource) *Store {
	if ids == nil {
		ids = NewIDSource(nil)
	}
	return &Store{todos: model.Collection{}, ids: ids}
}

// Todos returns a copy of the current snapshot.
func (s *Store) Todos() model.Collection { return s.todos.Clone() }

// Hydrate replaces the whole collection.
func (s *Store) Hydrate(c model.Collection) model.Collection {
	s.ids.Observe(c)
	s.todos = c.Clone()
	return s.Todos()
}

// Add prepends a new record and returns it along with the new snapshot.
func (s *Store) Add(d model.Draft) (model.Todo, model.Collection) {
	id := FreeID(s.todos, s.ids.Next())
	s.todos = Add(s.todos, id, d)
	return s.todos[0], s.Todos()
}

func (s *Store) Update(id model.ID, t model.Todo) model.Collection {
	s.todos = Update(s.todos, id, t)
	return s.Todos()
}

func (s *Store) Delete(id model.ID) model.Collection {
	s.todos = Delete(s.todos, id)
	return s.Todos()
}

func (s *Store) ToggleComplete(id model.ID) model.Collection {
	s.todos = ToggleComplete(s.todos, id)
	return s.Todos()
}
