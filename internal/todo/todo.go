// Package todo holds the todo collection and its mutations.
//
// The package-level functions are pure: they never modify their input and
// always return a fresh collection. Store keeps the current snapshot and
// swaps it after each call.
package todo

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/Makepad-fr/tada/internal/model"
)

// Add prepends a record built from d under id.
func Add(c model.Collection, id model.ID, d model.Draft) model.Collection {
	out := make(model.Collection, 0, len(c)+1)
	out = append(out, model.Todo{ID: id, Text: CleanText(d.Text), Completed: d.Completed})
	return append(out, c...)
}

// Update replaces the record matching id with t, keeping its position and id.
// Unknown ids leave the collection unchanged.
func Update(c model.Collection, id model.ID, t model.Todo) model.Collection {
	out := c.Clone()
	if i := out.Index(id); i >= 0 {
		t.ID = id
		t.Text = CleanText(t.Text)
		out[i] = t
	}
	return out
}

// Delete drops the record matching id.
func Delete(c model.Collection, id model.ID) model.Collection {
	out := make(model.Collection, 0, len(c))
	for _, t := range c {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// ToggleComplete flips the completed flag of the record matching id.
func ToggleComplete(c model.Collection, id model.ID) model.Collection {
	out := c.Clone()
	if i := out.Index(id); i >= 0 {
		out[i].Completed = !out[i].Completed
	}
	return out
}

// Find returns the record matching id.
func Find(c model.Collection, id model.ID) (model.Todo, bool) {
	if i := c.Index(id); i >= 0 {
		return c[i], true
	}
	return model.Todo{}, false
}

// Stats counts completed and pending records.
func Stats(c model.Collection) (done, pending int) {
	for _, t := range c {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// FreeID returns id if no record in c uses it, otherwise the next unused
// positive id after it, wrapping past math.MaxInt64.
func FreeID(c model.Collection, id model.ID) model.ID {
	if id < 1 {
		id = 1
	}
	for c.Index(id) >= 0 {
		if id == math.MaxInt64 {
			id = 1
		} else {
			id++
		}
	}
	return id
}

// CleanText replaces every byte that is not valid UTF-8 with U+FFFD, one
// replacement per byte, the same way encoding/json writes it out.
func CleanText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.WriteString(s[:size])
		}
		s = s[size:]
	}
	return b.String()
}
