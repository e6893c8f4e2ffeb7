// Package task holds the task list domain model.
package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

var (
	// ErrNotFound is returned when no task carries the requested id.
	ErrNotFound = errors.New("task not found")

	// ErrAlreadyCompleted is returned when completing a task that is done.
	ErrAlreadyCompleted = errors.New("task already completed")
)

// Task is one entry of the task file.
type Task struct {
	ID        int    `json:"id" yaml:"id"`
	Desc      string `json:"desc" yaml:"desc"`
	Completed bool   `json:"completed" yaml:"completed"`

	// noID marks a record read without an id (missing or null). Such a
	// task never matches an id lookup and is written back without one.
	noID bool
}

// record is the on-disk shape of a Task.
type record struct {
	ID        *int   `json:"id,omitempty" yaml:"id,omitempty"`
	Desc      string `json:"desc" yaml:"desc"`
	Completed bool   `json:"completed" yaml:"completed"`
}

func (t Task) record() record {
	r := record{Desc: t.Desc, Completed: t.Completed}
	if !t.noID {
		id := t.ID
		r.ID = &id
	}
	return r
}

// HasID reports whether the task carries an id.
func (t Task) HasID() bool { return !t.noID }

// IDLabel renders the id for display, "-" when absent.
func (t Task) IDLabel() string {
	if t.noID {
		return "-"
	}
	return strconv.Itoa(t.ID)
}

func (t Task) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(t.record()); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (t *Task) UnmarshalJSON(b []byte) error {
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	*t = Task{Desc: r.Desc, Completed: r.Completed, noID: r.ID == nil}
	if r.ID != nil {
		t.ID = *r.ID
	}
	return nil
}

func (t Task) MarshalYAML() (any, error) { return t.record(), nil }

// List is the ordered task sequence; order is insertion order.
type List []Task

// NextID returns one more than the highest id in the list, or 1 when empty.
// Tasks without an id count as 0.
func (l List) NextID() int {
	highest := 0
	for _, t := range l {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

// Add appends a new pending task and returns the grown list with the task.
func (l List) Add(desc string) (List, Task) {
	t := Task{ID: l.NextID(), Desc: desc}
	return append(l, t), t
}

// Find returns the index of the first task with the given id.
// Tasks without an id never match.
func (l List) Find(id int) (int, bool) {
	for i, t := range l {
		if t.HasID() && t.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Complete marks the first task with id as completed, in place.
// Completion is one-way: a completed task yields ErrAlreadyCompleted.
func (l List) Complete(id int) error {
	i, ok := l.Find(id)
	if !ok {
		return ErrNotFound
	}
	if l[i].Completed {
		return ErrAlreadyCompleted
	}
	l[i].Completed = true
	return nil
}

// Remove drops every task with the given id. Tasks without an id are
// kept. The bool reports whether anything was removed.
func (l List) Remove(id int) (List, bool) {
	out := make(List, 0, len(l))
	for _, t := range l {
		if !t.HasID() || t.ID != id {
			out = append(out, t)
		}
	}
	return out, len(out) != len(l)
}

// Stats counts completed and pending tasks.
func (l List) Stats() (done, pending int) {
	for _, t := range l {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
