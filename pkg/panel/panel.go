// Package panel tracks whether a list panel is showing its add form.
package panel

// State is the form state of a panel.
type State int

const (
	// Idle shows the list only.
	Idle State = iota
	// Drafting shows the add form; draft fields are editable.
	Drafting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drafting:
		return "drafting"
	default:
		return "unknown"
	}
}

// Machine is the Idle/Drafting state machine shared by every list panel.
// The zero value is Idle with no close callback.
type Machine struct {
	state   State
	OnClose func()
}

func (m *Machine) State() State { return m.state }

// Open shows the add form.
func (m *Machine) Open() { m.state = Drafting }

// Toggle flips the add form, like pressing the "new" button twice.
func (m *Machine) Toggle() {
	if m.state == Drafting {
		m.state = Idle
		return
	}
	m.state = Drafting
}

// Cancel hides the add form. Draft contents are left alone.
func (m *Machine) Cancel() { m.state = Idle }

// Commit hides the add form after a successful save.
func (m *Machine) Commit() { m.state = Idle }

// Close dismisses the panel and notifies the shell.
func (m *Machine) Close() {
	m.state = Idle
	if m.OnClose != nil {
		m.OnClose()
	}
}
