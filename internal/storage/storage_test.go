package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()

	dir := t.TempDir()
	f, err := NewFile(filepath.Join(dir, "files"))
	require.NoError(t, err)
	s, err := NewSQLite(filepath.Join(dir, "db", "tada.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return map[string]Backend{
		"memory": NewMemory(),
		"file":   f,
		"sqlite": s,
	}
}

func TestBackend_Contract(t *testing.T) {
	t.Parallel()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.Get("todos")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, b.Set("todos", []byte(`[1]`)))
			got, err := b.Get("todos")
			require.NoError(t, err)
			assert.Equal(t, []byte(`[1]`), got)

			require.NoError(t, b.Set("todos", []byte(`[]`)))
			got, err = b.Get("todos")
			require.NoError(t, err)
			assert.Equal(t, []byte(`[]`), got)

			_, err = b.Get("other")
			assert.ErrorIs(t, err, ErrNotFound)

			assert.ErrorIs(t, b.Set("", []byte("x")), ErrInvalidKey)
		})
	}
}

func TestMemory_CopiesValues(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	in := []byte("abc")
	require.NoError(t, m.Set("k", in))
	in[0] = 'z'

	out, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))
	out[0] = 'y'

	again, _ := m.Get("k")
	assert.Equal(t, "abc", string(again))
}

func TestFile_Layout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, f.Set("todos", []byte(`[]`)))

	b, err := os.ReadFile(filepath.Join(dir, "todos.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))
}

func TestFile_RejectsPathKeys(t *testing.T) {
	t.Parallel()

	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	for _, key := range []string{"../escape", "a/b", `a\b`, ".."} {
		assert.ErrorIs(t, f.Set(key, nil), ErrInvalidKey, key)
		_, err := f.Get(key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestSQLite_PersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tada.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("todos", []byte(`[{"id":1}]`)))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get("todos")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		opts    Options
		want    any
		wantErr error
	}{
		{Options{Driver: DriverMemory}, &Memory{}, nil},
		{Options{Driver: "", Dir: dir}, &File{}, nil},
		{Options{Driver: "FILE", Dir: dir}, &File{}, nil},
		{Options{Driver: DriverSQLite, SQLitePath: filepath.Join(dir, "x.db")}, &SQLite{}, nil},
		{Options{Driver: "redis"}, nil, ErrUnknownDriver},
	}
	for _, tt := range tests {
		t.Run(string(tt.opts.Driver), func(t *testing.T) {
			b, err := Open(tt.opts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer b.Close()
			assert.IsType(t, tt.want, b)
		})
	}
}
