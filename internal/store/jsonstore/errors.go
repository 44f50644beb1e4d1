package jsonstore

import "strings"

// SchemaError reports persisted data that parses as JSON but is not a todo collection.
type SchemaError struct {
	Messages []string
}

func (e *SchemaError) Error() string {
	return "schema: " + strings.Join(e.Messages, "; ")
}
