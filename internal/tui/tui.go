// Package tui is the interactive task browser behind `todo list -i`.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tasklist/internal/task"
	"github.com/idilsaglam/tasklist/internal/ui"
)

// item adapts task.Task to bubbles/list.Item.
type item struct{ task.Task }

func (i item) Title() string       { return i.Desc }
func (i item) Description() string { return "" }
func (i item) FilterValue() string { return i.Desc }

// delegate renders one task per line, like the plain list output.
type delegate struct{ styles ui.Styles }

func (d delegate) Height() int                               { return 1 }
func (d delegate) Spacing() int                              { return 0 }
func (d delegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d delegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(item)
	if !ok {
		return
	}
	box := d.styles.Muted.Render("[" + ui.Blank + "]")
	text := it.Desc
	if it.Completed {
		box = d.styles.Success.Render("[" + ui.CheckMark + "]")
		text = d.styles.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.styles.Selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s: %s", prefix, box, it.IDLabel(), text)
}

type keyMap struct {
	complete key.Binding
	remove   key.Binding
	undo     key.Binding
	add      key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		complete: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "complete")),
		remove:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo remove")),
		add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "save & quit")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.complete, k.remove, k.undo, k.add}
}

type removal struct {
	index int
	item  item
}

// Model is the Bubble Tea model of the task browser.
type Model struct {
	list   list.Model
	input  textinput.Model
	styles ui.Styles
	keys   keyMap

	adding bool
	addErr string

	// nextID only grows, so ids removed in this session are not handed
	// out again.
	nextID  int
	changed bool
	undo    *removal
	width   int
	height  int
}

// Result is what the browser hands back on quit.
type Result struct {
	List    task.List
	Changed bool
}

// New builds a browser over tasks.
func New(tasks task.List, styles ui.Styles) Model {
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, item{t})
	}

	keys := newKeyMap()
	l := list.New(items, delegate{styles: styles}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")
	l.Styles.Title = styles.Title
	l.Styles.HelpStyle = styles.Muted
	l.Styles.PaginationStyle = styles.Muted
	l.FilterInput.Prompt = "/ "
	l.AdditionalShortHelpKeys = keys.help
	l.AdditionalFullHelpKeys = keys.help
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New task description..."
	ti.CharLimit = 200

	m := Model{
		list:   l,
		input:  ti,
		styles: styles,
		keys:   keys,
		nextID: tasks.NextID(),
		width:  80,
		height: 24,
	}
	m.refreshTitle()
	return m
}

// Run starts the browser on the terminal and blocks until the user quits.
func Run(tasks task.List) (Result, error) {
	m := New(tasks, ui.NewStyles(os.Stdout))
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return Result{}, err
	}
	fm, ok := final.(Model)
	if !ok {
		return Result{List: tasks}, nil
	}
	return fm.Result(), nil
}

// Result returns the current list in display order.
func (m Model) Result() Result {
	out := make(task.List, 0, len(m.list.Items()))
	for _, li := range m.list.Items() {
		if it, ok := li.(item); ok {
			out = append(out, it.Task)
		}
	}
	return Result{List: out, Changed: m.changed}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	if m.adding {
		return m.updateAdding(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, m.keys.quit):
		if km.String() == "esc" && m.list.FilterState() != list.Unfiltered {
			m.list.ResetFilter()
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(km, m.keys.complete):
		cmd := m.completeSelected()
		return m, cmd
	case key.Matches(km, m.keys.remove):
		cmd := m.removeSelected()
		return m, cmd
	case key.Matches(km, m.keys.undo):
		cmd := m.undoRemove()
		return m, cmd
	case key.Matches(km, m.keys.add):
		m.adding = true
		m.addErr = ""
		m.input.SetValue("")
		m.resize()
		cmd := m.input.Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			desc := strings.TrimSpace(m.input.Value())
			if desc == "" {
				m.addErr = "Description cannot be empty"
				return m, nil
			}
			t := task.Task{ID: m.nextID, Desc: desc}
			m.nextID++
			cmd := m.list.InsertItem(len(m.list.Items()), item{t})
			m.changed = true
			m.stopAdding()
			m.refreshTitle()
			status := m.list.NewStatusMessage(fmt.Sprintf("Added task %d: %s", t.ID, t.Desc))
			return m, tea.Batch(cmd, status)
		case "esc":
			m.stopAdding()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopAdding() {
	m.adding = false
	m.addErr = ""
	m.input.SetValue("")
	m.input.Blur()
	m.resize()
}

func (m *Model) completeSelected() tea.Cmd {
	i := m.list.GlobalIndex()
	it, ok := m.list.SelectedItem().(item)
	if !ok {
		return nil
	}
	if it.Completed {
		return m.list.NewStatusMessage(fmt.Sprintf("Task %s is already completed.", it.IDLabel()))
	}
	it.Completed = true
	m.changed = true
	cmd := m.list.SetItem(i, it)
	m.refreshTitle()
	return tea.Batch(cmd, m.list.NewStatusMessage(fmt.Sprintf("Marked task %s as completed.", it.IDLabel())))
}

func (m *Model) removeSelected() tea.Cmd {
	i := m.list.GlobalIndex()
	it, ok := m.list.SelectedItem().(item)
	if !ok {
		return nil
	}
	m.undo = &removal{index: i, item: it}
	m.list.RemoveItem(i)
	m.changed = true
	m.refreshTitle()
	return m.list.NewStatusMessage(fmt.Sprintf("Removed task %s.", it.IDLabel()))
}

func (m *Model) undoRemove() tea.Cmd {
	if m.undo == nil {
		return nil
	}
	idx := m.undo.index
	if idx > len(m.list.Items()) {
		idx = len(m.list.Items())
	}
	cmd := m.list.InsertItem(idx, m.undo.item)
	m.undo = nil
	m.refreshTitle()
	return cmd
}

func (m *Model) refreshTitle() {
	done, pending := m.Result().List.Stats()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s",
		m.styles.Title.Render("Tasks"),
		m.styles.Success.Render(ui.CheckMark), done,
		m.styles.Pending.Render("•"), pending,
		m.styles.Muted.Render(ui.ProgressBar(done, done+pending, 20)),
	)
}

func (m *Model) resize() {
	h := m.height - 4
	if m.adding {
		h -= 4
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) View() string {
	content := m.list.View()
	if m.adding {
		title := "Add new task"
		if m.addErr != "" {
			title += ": " + m.styles.Error.Render(m.addErr)
		}
		content += "\n" + m.styles.Panel(title, m.input.View())
	}
	return m.styles.Panel(content)
}
