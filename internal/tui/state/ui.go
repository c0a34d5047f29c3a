package state

// Pane selects what the main area shows.
type Pane int

const (
	EditorPane Pane = iota
	PreviewPane
	DiffPane
)

// UIState holds view-only state used by the status bar and layout.
type UIState struct {
	Pane     Pane
	ShowHelp bool
	Picking  bool // language picker open
	Opening  bool // file path prompt open

	// Layout
	Width  int
	Height int

	// Cursor, 1-based, as reported by the editor
	Line int
	Col  int

	Engine string
	Notice string // ephemeral, non-error messages
}

// TogglePane shows p, or returns to the editor if p is already shown.
func TogglePane(s UIState, p Pane) UIState {
	if s.Pane == p {
		s.Pane = EditorPane
	} else {
		s.Pane = p
	}
	return s
}

// ToggleHelp flips the help overlay.
func ToggleHelp(s UIState) UIState {
	s.ShowHelp = !s.ShowHelp
	return s
}

// Resize records the terminal size; sizes below 1 are ignored.
func Resize(s UIState, width, height int) UIState {
	if width > 0 {
		s.Width = width
	}
	if height > 0 {
		s.Height = height
	}
	return s
}

// SetNotice replaces the ephemeral notice.
func SetNotice(s UIState, n string) UIState {
	s.Notice = n
	return s
}
