// Package storage provides byte-oriented key-value backends.
//
// Values are opaque to the backends; encoding lives in the layer above.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Driver names a Backend implementation.
type Driver string

const (
	DriverFile   Driver = "file"   // one JSON file per key (default)
	DriverSQLite Driver = "sqlite" // single-table SQLite database
	DriverMemory Driver = "memory" // process-local, tests
)

var (
	// ErrNotFound is returned by Get when nothing is stored under a key.
	ErrNotFound = errors.New("storage: key not found")
	// ErrUnknownDriver is returned by Open for unsupported driver names.
	ErrUnknownDriver = errors.New("storage: unknown driver")
	// ErrInvalidKey is returned for keys a backend cannot address.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Backend reads and writes raw values by key.
type Backend interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set stores value under key, overwriting any prior value.
	Set(key string, value []byte) error
	Close() error
}

// Options selects and configures a Backend.
type Options struct {
	Driver     Driver
	Dir        string // file driver
	SQLitePath string // sqlite driver
}

// Open builds the backend named by opts.Driver. An empty driver means file.
func Open(opts Options) (Backend, error) {
	switch Driver(strings.ToLower(string(opts.Driver))) {
	case DriverFile, "":
		return NewFile(opts.Dir)
	case DriverSQLite:
		return NewSQLite(opts.SQLitePath)
	case DriverMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	return nil
}
