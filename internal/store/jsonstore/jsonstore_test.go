package jsonstore

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idilsaglam/tasklist/internal/logging"
	"github.com/idilsaglam/tasklist/internal/task"
)

func newTestStore(t *testing.T, content *string) (*Store, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	if content != nil {
		if err := os.WriteFile(path, []byte(*content), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	var diag bytes.Buffer
	return New(path, logging.New(&diag, logging.Options{})), &diag
}

func ptr(s string) *string { return &s }

func TestLoadMissingFile(t *testing.T) {
	s, diag := newTestStore(t, nil)

	list, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %+v", list)
	}
	if diag.Len() != 0 {
		t.Errorf("expected no diagnostic, got %q", diag.String())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t, nil)
	want := task.List{
		{ID: 3, Desc: "third <b>&</b>", Completed: true},
		{ID: 1, Desc: "first, with \"quotes\""},
		{ID: 2, Desc: "ünïcödé ✓"},
	}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("task %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSaveFormat(t *testing.T) {
	s, _ := newTestStore(t, nil)
	if err := s.Save(task.List{{ID: 1, Desc: "Test task"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "[\n  {\n    \"id\": 1,\n    \"desc\": \"Test task\",\n    \"completed\": false\n  }\n]\n"
	if string(b) != want {
		t.Errorf("file content:\ngot  %q\nwant %q", b, want)
	}
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	s, _ := newTestStore(t, nil)
	if err := s.Save(nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, _ := os.ReadFile(s.Path())
	if strings.TrimSpace(string(b)) != "[]" {
		t.Errorf("got %q, want []", b)
	}
}

func TestLoadToleratesMissingFields(t *testing.T) {
	s, diag := newTestStore(t, ptr(`[{"desc": "no id"}, {"id": 4}, {}]`))

	list, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diag.Len() != 0 {
		t.Errorf("unexpected diagnostic: %q", diag.String())
	}
	want := []struct {
		hasID bool
		id    int
		desc  string
	}{
		{false, 0, "no id"},
		{true, 4, ""},
		{false, 0, ""},
	}
	if len(list) != len(want) {
		t.Fatalf("length: got %d, want %d", len(list), len(want))
	}
	for i, w := range want {
		got := list[i]
		if got.HasID() != w.hasID || got.ID != w.id || got.Desc != w.desc || got.Completed {
			t.Errorf("task %d: got %+v (HasID %v), want %+v", i, got, got.HasID(), w)
		}
	}
}

func TestLoadToleratesNullFields(t *testing.T) {
	s, diag := newTestStore(t, ptr(`[{"id":1,"desc":"keep me","completed":false},{"id":2,"desc":null},{"id":null,"completed":null}]`))

	list, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diag.Len() != 0 {
		t.Errorf("unexpected diagnostic: %q", diag.String())
	}
	if len(list) != 3 {
		t.Fatalf("length: got %d, want 3", len(list))
	}
	if want := (task.List{{ID: 1, Desc: "keep me"}, {ID: 2}}); list[0] != want[0] || list[1] != want[1] {
		t.Errorf("got %+v, want prefix %+v", list[:2], want)
	}
	if list[2].HasID() {
		t.Errorf("null id should read back as absent, got %+v", list[2])
	}
}

func TestSaveKeepsMissingIDAbsent(t *testing.T) {
	s, _ := newTestStore(t, ptr(`[{"desc": "no id"}]`))

	list, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	list, _ = list.Add("next")
	if err := s.Save(list); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "[\n  {\n    \"desc\": \"no id\",\n    \"completed\": false\n  },\n  {\n    \"id\": 1,\n    \"desc\": \"next\",\n    \"completed\": false\n  }\n]\n"
	if string(b) != want {
		t.Errorf("file content:\ngot  %q\nwant %q", b, want)
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "this is not json"},
		{"empty file", ""},
		{"object", `{"id": 1, "desc": "x"}`},
		{"null", "null"},
		{"array of numbers", "[1, 2, 3]"},
		{"string id", `[{"id": "1", "desc": "x"}]`},
		{"fractional id", `[{"id": 1.5, "desc": "x"}]`},
		{"string completed", `[{"id": 1, "completed": "yes"}]`},
		{"trailing data", `[] []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, diag := newTestStore(t, ptr(tt.content))

			list, err := s.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(list) != 0 {
				t.Errorf("expected empty list, got %+v", list)
			}
			if !strings.Contains(diag.String(), "could not parse tasks file") {
				t.Errorf("expected diagnostic, got %q", diag.String())
			}
			b, _ := os.ReadFile(s.Path())
			if string(b) != tt.content {
				t.Errorf("malformed file was modified: %q", b)
			}
		})
	}
}

func TestSaveQuarantinesMalformedFile(t *testing.T) {
	original := "{ broken"
	s, diag := newTestStore(t, ptr(original))

	list, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	list, _ = list.Add("fresh")
	if err := s.Save(list); err != nil {
		t.Fatalf("Save: %v", err)
	}

	kept, err := os.ReadFile(s.Path() + QuarantineSuffix)
	if err != nil {
		t.Fatalf("read quarantine copy: %v", err)
	}
	if string(kept) != original {
		t.Errorf("quarantine copy: got %q, want %q", kept, original)
	}
	if !strings.Contains(diag.String(), QuarantineSuffix) {
		t.Errorf("expected quarantine warning, got %q", diag.String())
	}

	reloaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(reloaded) != 1 || reloaded[0].Desc != "fresh" {
		t.Errorf("reloaded: got %+v", reloaded)
	}
}

func TestSaveDoesNotQuarantineValidFile(t *testing.T) {
	s, _ := newTestStore(t, ptr(`[{"id": 1, "desc": "ok", "completed": false}]`))

	list, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Save(list); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(s.Path() + QuarantineSuffix); !os.IsNotExist(err) {
		t.Errorf("unexpected quarantine file, stat err = %v", err)
	}
}

func TestLoadReadError(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, logging.Discard())

	if _, err := s.Load(); err == nil {
		t.Fatal("expected error when the path is a directory")
	}
}

func TestSaveWriteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "tasks.json")
	s := New(path, logging.Discard())

	if err := s.Save(task.List{{ID: 1}}); err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}
