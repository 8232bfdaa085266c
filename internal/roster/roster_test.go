package roster

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/storage/jsonfile"
	"github.com/aanand-mishra/student-roster/internal/types"
)

// fakeStorage records every Save so tests can prove when the roster was
// (or was not) persisted.
type fakeStorage struct {
	stored  []types.Student
	saves   [][]types.Student
	loadErr error
	saveErr error
}

func (f *fakeStorage) Load() ([]types.Student, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]types.Student{}, f.stored...), nil
}

func (f *fakeStorage) Save(students []types.Student) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := append([]types.Student{}, students...)
	f.saves = append(f.saves, cp)
	f.stored = cp
	return nil
}

func (f *fakeStorage) Close() error { return nil }

func newTestStore(st storage.Storage) (*Store, *bytes.Buffer) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(st, log), &buf
}

var (
	alice = types.Student{Name: "Alice", Age: 25, Course: "Math"}
	bob   = types.Student{Name: "Bob", Age: 30, Course: "CS"}
)

func TestLoad(t *testing.T) {
	t.Run("returns stored roster", func(t *testing.T) {
		st := &fakeStorage{stored: []types.Student{alice, bob}}
		s, _ := newTestStore(st)

		assert.Equal(t, []types.Student{alice, bob}, s.Load())
	})

	t.Run("corrupt storage degrades to empty", func(t *testing.T) {
		st := &fakeStorage{loadErr: fmt.Errorf("jsonfile.Load: %w", storage.ErrCorrupt)}
		s, logs := newTestStore(st)

		got := s.Load()
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Contains(t, logs.String(), "roster data corrupted")
	})

	t.Run("io failure degrades to empty", func(t *testing.T) {
		st := &fakeStorage{loadErr: errors.New("permission denied")}
		s, logs := newTestStore(st)

		assert.Empty(t, s.Load())
		assert.Contains(t, logs.String(), "unexpected error while loading roster")
		assert.Contains(t, logs.String(), "permission denied")
	})
}

func TestLoad_JSONFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		s, logs := newTestStore(jsonfile.New(filepath.Join(t.TempDir(), "students.json")))

		assert.Empty(t, s.Load())
		assert.Empty(t, logs.String())
		assert.Empty(t, View(s.Load()))
	})

	t.Run("invalid structured text", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "students.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"name": "Alice",`), 0o644))
		s, logs := newTestStore(jsonfile.New(path))

		assert.Empty(t, s.Load())
		assert.Contains(t, logs.String(), "roster data corrupted")
	})

	t.Run("save then load round trip", func(t *testing.T) {
		s, _ := newTestStore(jsonfile.New(filepath.Join(t.TempDir(), "students.json")))
		want := []types.Student{alice, bob, {Name: "alice", Age: 19, Course: "Art"}}

		require.NoError(t, s.Save(want))
		require.NoError(t, s.Save(s.Load()))
		assert.Equal(t, want, s.Load())
	})
}

func TestSave_Failure(t *testing.T) {
	st := &fakeStorage{saveErr: errors.New("disk full")}
	s, logs := newTestStore(st)

	err := s.Save([]types.Student{alice})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSave)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, logs.String(), "error saving roster")
}

func TestAdd(t *testing.T) {
	t.Run("empty roster", func(t *testing.T) {
		st := &fakeStorage{}
		s, _ := newTestStore(st)

		got, err := s.Add([]types.Student{}, "Alice", "25", "Math")
		require.NoError(t, err)

		want := []types.Student{alice}
		assert.Equal(t, want, got)
		require.Len(t, st.saves, 1)
		assert.Equal(t, want, st.saves[0])
	})

	t.Run("appends at the end and allows duplicates", func(t *testing.T) {
		st := &fakeStorage{}
		s, _ := newTestStore(st)
		roster := []types.Student{alice, bob}

		got, err := s.Add(roster, "Alice", "40", "Physics")
		require.NoError(t, err)

		want := []types.Student{alice, bob, {Name: "Alice", Age: 40, Course: "Physics"}}
		assert.Equal(t, want, got)
		assert.Equal(t, want, st.stored)
		assert.Equal(t, []types.Student{alice, bob}, roster)
	})

	t.Run("does not write through caller's spare capacity", func(t *testing.T) {
		st := &fakeStorage{}
		s, _ := newTestStore(st)
		backing := make([]types.Student, 1, 4)
		backing[0] = alice

		_, err := s.Add(backing, "Bob", "30", "CS")
		require.NoError(t, err)
		assert.Equal(t, types.Student{}, backing[:2][1])
	})

	t.Run("zero age is valid", func(t *testing.T) {
		s, _ := newTestStore(&fakeStorage{})

		got, err := s.Add(nil, "Baby", "0", "Nursery")
		require.NoError(t, err)
		assert.Equal(t, 0, got[0].Age)
	})

	t.Run("save failure returns appended roster and error", func(t *testing.T) {
		st := &fakeStorage{saveErr: errors.New("read-only file system")}
		s, _ := newTestStore(st)

		got, err := s.Add([]types.Student{bob}, "Alice", "25", "Math")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSave)
		assert.Equal(t, []types.Student{bob, alice}, got)
	})
}

func TestAdd_InvalidInput(t *testing.T) {
	cases := []struct {
		name    string
		inName  string
		inAge   string
		inCrs   string
		wantErr error
	}{
		{"empty name", "", "25", "Math", ErrMissingFields},
		{"empty age", "Alice", "", "Math", ErrMissingFields},
		{"empty course", "Alice", "25", "", ErrMissingFields},
		{"empty field wins over bad age", "", "abc", "Math", ErrMissingFields},
		{"letters", "Alice", "abc", "Math", ErrInvalidAge},
		{"negative", "Alice", "-5", "Math", ErrInvalidAge},
		{"decimal", "Alice", "2.5", "Math", ErrInvalidAge},
		{"spaces", "Alice", " 25", "Math", ErrInvalidAge},
		{"overflow", "Alice", "99999999999999999999999", "Math", ErrInvalidAge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := &fakeStorage{}
			s, _ := newTestStore(st)
			roster := []types.Student{bob}

			got, err := s.Add(roster, tc.inName, tc.inAge, tc.inCrs)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, []types.Student{bob}, got)
			assert.Empty(t, st.saves)
		})
	}
}

func TestRemove(t *testing.T) {
	t.Run("case-insensitive match", func(t *testing.T) {
		st := &fakeStorage{}
		s, _ := newTestStore(st)

		got, found, err := s.Remove([]types.Student{alice, bob}, "alice")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []types.Student{bob}, got)
		require.Len(t, st.saves, 1)
		assert.Equal(t, []types.Student{bob}, st.saves[0])
	})

	t.Run("removes every match and keeps order", func(t *testing.T) {
		st := &fakeStorage{}
		s, _ := newTestStore(st)
		carol := types.Student{Name: "Carol", Age: 22, Course: "Bio"}
		roster := []types.Student{alice, bob, {Name: "ALICE", Age: 50, Course: "Art"}, carol}

		got, found, err := s.Remove(roster, "Alice")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []types.Student{bob, carol}, got)
		for _, rec := range got {
			assert.False(t, strings.EqualFold(rec.Name, "alice"))
		}
	})

	t.Run("not found does not persist", func(t *testing.T) {
		st := &fakeStorage{}
		s, _ := newTestStore(st)
		roster := []types.Student{alice, bob}

		got, found, err := s.Remove(roster, "Zed")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, roster, got)
		assert.Empty(t, st.saves)
	})

	t.Run("empty roster", func(t *testing.T) {
		st := &fakeStorage{}
		s, _ := newTestStore(st)

		_, found, err := s.Remove(nil, "Alice")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, st.saves)
	})

	t.Run("save failure", func(t *testing.T) {
		st := &fakeStorage{saveErr: errors.New("disk full")}
		s, _ := newTestStore(st)

		got, found, err := s.Remove([]types.Student{alice, bob}, "bob")
		assert.ErrorIs(t, err, ErrSave)
		assert.True(t, found)
		assert.Equal(t, []types.Student{alice}, got)
	})
}

func TestView(t *testing.T) {
	assert.Empty(t, View(nil))

	roster := []types.Student{alice, bob}
	want := []string{
		"1. Alice | Age: 25 | Course: Math",
		"2. Bob | Age: 30 | Course: CS",
	}
	assert.Equal(t, want, View(roster))
	assert.Equal(t, View(roster), View(roster))
}

func TestSearch(t *testing.T) {
	first := types.Student{Name: "Alice", Age: 25, Course: "Math"}
	second := types.Student{Name: "alice", Age: 40, Course: "Art"}
	roster := []types.Student{bob, first, second}

	got, ok := Search(roster, "ALICE")
	assert.True(t, ok)
	assert.Equal(t, first, got)

	_, ok = Search(roster, "Ali")
	assert.False(t, ok)

	_, ok = Search(nil, "Alice")
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, ok := Summarize(nil)
		assert.False(t, ok)
	})

	t.Run("distinct courses and ordered names", func(t *testing.T) {
		roster := []types.Student{
			{Name: "Alice", Age: 25, Course: "Math"},
			{Name: "Bob", Age: 25, Course: "CS"},
		}

		sum, ok := Summarize(roster)
		require.True(t, ok)
		assert.ElementsMatch(t, []string{"Math", "CS"}, sum.Courses)
		assert.Equal(t, []string{"Alice", "Bob"}, sum.Names)
	})

	t.Run("duplicates", func(t *testing.T) {
		roster := []types.Student{alice, bob, {Name: "Alice", Age: 40, Course: "Math"}}

		sum, ok := Summarize(roster)
		require.True(t, ok)
		assert.Equal(t, []string{"CS", "Math"}, sum.Courses)
		assert.Equal(t, []string{"Alice", "Bob", "Alice"}, sum.Names)

		again, _ := Summarize(roster)
		assert.Equal(t, sum, again)
	})
}

func TestNewValidator_DigitsRule(t *testing.T) {
	var v interface{ Struct(any) error }
	require.NotPanics(t, func() { v = newValidator() })

	assert.NoError(t, v.Struct(AddInput{Name: "Alice", Age: "25", Course: "Math"}))
	assert.Error(t, v.Struct(AddInput{Name: "Alice", Age: "2a", Course: "Math"}))
}
