package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every key binding used by the views
type KeyMap struct {
	Quit   key.Binding
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Enter  key.Binding
	Tab    key.Binding
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Toggle key.Binding
	Save   key.Binding
	Help   key.Binding

	// Deadline list filters
	FilterCourse   key.Binding
	FilterStatus   key.Binding
	ClearCompleted key.Binding

	// Page switching
	Dashboard key.Binding
	Deadlines key.Binding
	Courses   key.Binding
	Calendar  key.Binding
	Settings  key.Binding
	Logout    key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "select")),
		Tab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		FilterCourse:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "course")),
		FilterStatus:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		ClearCompleted: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear done")),

		Dashboard: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
		Deadlines: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "deadlines")),
		Courses:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "courses")),
		Calendar:  key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "calendar")),
		Settings:  key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "settings")),
		Logout:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
	}
}
