package model

// ID identifies a Todo. Values are clock-derived and never reused.
type ID int64

// Todo is the domain model for a todo entry.
type Todo struct {
	ID        ID     `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Draft carries the caller-supplied fields of a Todo that does not exist yet.
type Draft struct {
	Text      string
	Completed bool
}

// Collection is an ordered list of todos, newest first, with unique ids.
type Collection []Todo

// Index returns the position of id, or -1.
func (c Collection) Index(id ID) int {
	for i, t := range c {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no backing array with c.
// A nil collection clones to an empty one.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Equal reports whether both collections hold the same records in the same order.
func (c Collection) Equal(other Collection) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}
