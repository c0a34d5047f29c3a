package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"codefmt/internal/clipboard"
	"codefmt/internal/format"
	"codefmt/internal/lang"
	"codefmt/internal/tui/state"
	"codefmt/internal/tui/util"
	"codefmt/internal/tui/widgets/chips"
	"codefmt/internal/tui/widgets/diff"
	"codefmt/internal/tui/widgets/editor"
	"codefmt/internal/tui/widgets/helpoverlay"
	"codefmt/internal/tui/widgets/picker"
	"codefmt/internal/tui/widgets/statusbar"
)

// CopyResetDelay is how long the "Copied!" flag stays up after a copy.
const CopyResetDelay = 2 * time.Second

// Deps are the collaborators the controller calls out to.
type Deps struct {
	Formatter format.Formatter
	Clipboard clipboard.Writer
	Logger    *log.Logger
	Engine    string // shown in the status bar
	Theme     string // chroma style for the preview pane
	NoColor   bool
}

// Options seed the session.
type Options struct {
	Buffer   string
	Language lang.Language
	Filename string
}

// Result is the session state when the user quit.
type Result struct {
	Buffer   string
	Language lang.Language
}

// Run shows the formatter TUI and blocks until the user quits.
func Run(deps Deps, opts Options) (Result, error) {
	if deps.Formatter == nil {
		return Result{}, errors.New("tui: no formatter configured")
	}
	m := newModel(deps, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	m.cancel()
	if err != nil {
		return Result{}, err
	}
	if fm, ok := final.(model); ok {
		m = fm
	}
	return Result{Buffer: m.session.Buffer, Language: m.session.Language}, nil
}

// ===== Messages =====

type formatDoneMsg struct {
	parser lang.Parser
	out    string
	err    error
}

type copyResetMsg struct{ seq int }

type fileLoadedMsg struct {
	path string
	text string
	err  error
}

// ===== Model =====

type model struct {
	session state.Session
	ui      state.UIState
	deps    Deps
	keys    keyMap

	editor  editor.Editor
	picker  picker.Picker
	path    textinput.Model
	help    help.Model
	spinner spinner.Model

	// after schedules a delayed message; tea.Tick outside tests.
	after    func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
	quitting bool

	// ctx is cancelled on quit so a running formatter child is killed.
	ctx    context.Context
	cancel context.CancelFunc
}

func newModel(deps Deps, opts Options) model {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.NewSystem(deps.Logger)
	}
	deps.NoColor = util.NoColor(deps.NoColor)

	buf := opts.Buffer
	if buf == "" && opts.Filename == "" {
		buf = state.InitialBuffer
	}
	s := state.NewSession(buf, opts.Language)

	ti := textinput.New()
	ti.Prompt = "Open file: "
	ti.Placeholder = "path/to/file.ts"

	ctx, cancel := context.WithCancel(context.Background())
	m := model{
		session: s,
		ui:      state.UIState{Engine: deps.Engine, Line: 1, Col: 1},
		deps:    deps,
		keys:    defaultKeyMap(),
		editor:  editor.NewEditor().SetMode(s.Language.EditorMode()),
		picker:  picker.New(s.Language),
		path:    ti,
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		after:   tea.Tick,
		ctx:     ctx,
		cancel:  cancel,
	}
	m = m.loadBuffer(s.Buffer)
	if opts.Filename != "" {
		m.ui = state.SetNotice(m.ui, "Loaded "+filepath.Base(opts.Filename))
	}
	return m
}

func (m model) Init() tea.Cmd { return textarea.Blink }

// Update routes a message, then re-applies layout so the editor always
// scrolls against its real size.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next.relayout(), cmd
}

func (m model) update(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui = state.Resize(m.ui, msg.Width, msg.Height)
		return m, nil
	case formatDoneMsg:
		return m.finishFormat(msg), nil
	case copyResetMsg:
		m.session = state.ResetCopied(m.session, msg.seq)
		return m, nil
	case fileLoadedMsg:
		return m.fileLoaded(msg), nil
	case spinner.TickMsg:
		if !m.session.Formatting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.editor, cmd, _ = m.editor.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	}
	if m.ui.Picking {
		var res picker.Result
		m.picker, res = m.picker.Update(msg)
		if res.Chosen != nil {
			m = m.selectLanguage(*res.Chosen)
		}
		if res.Done {
			m.ui.Picking = false
		}
		return m, nil
	}
	if m.ui.Opening {
		return m.handlePathKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Format):
		return m.startFormat()
	case key.Matches(msg, m.keys.Copy):
		return m.copy()
	case key.Matches(msg, m.keys.Language):
		m.picker = picker.New(m.session.Language)
		m.ui.Picking = true
		return m, nil
	case key.Matches(msg, m.keys.NextLanguage):
		return m.selectLanguage(m.session.Language.Next()), nil
	case key.Matches(msg, m.keys.Preview):
		m.ui = state.TogglePane(m.ui, state.PreviewPane)
		return m, nil
	case key.Matches(msg, m.keys.Diff):
		if m.session.LastFormat == nil {
			m.ui = state.SetNotice(m.ui, "Nothing formatted yet")
			return m, nil
		}
		m.ui = state.TogglePane(m.ui, state.DiffPane)
		return m, nil
	case key.Matches(msg, m.keys.Open):
		m.ui.Opening = true
		m.path.SetValue("")
		return m, m.path.Focus()
	case key.Matches(msg, m.keys.Help):
		m.ui = state.ToggleHelp(m.ui)
		return m, nil
	}

	if m.ui.ShowHelp || m.ui.Pane != state.EditorPane {
		if key.Matches(msg, m.keys.Back) {
			m.ui.ShowHelp = false
			m.ui.Pane = state.EditorPane
		}
		return m, nil
	}

	var cmd tea.Cmd
	var changed *string
	m.editor, cmd, changed = m.editor.Update(msg)
	if changed != nil {
		m.session = state.EditBuffer(m.session, changed)
	}
	return m, cmd
}

func (m model) handlePathKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		p := strings.TrimSpace(m.path.Value())
		m.ui.Opening = false
		m.path.Blur()
		if p == "" {
			return m, nil
		}
		return m, loadFileCmd(p)
	case tea.KeyEsc:
		m.ui.Opening = false
		m.path.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

// ===== Operations =====

func (m model) selectLanguage(l lang.Language) model {
	m.session = state.SelectLanguage(m.session, l)
	m.editor = m.editor.SetMode(m.session.Language.EditorMode())
	m.deps.Logger.Debug("language selected", "language", l, "parser", l.Parser())
	return m
}

// startFormat snapshots the buffer and runs the formatter off the event loop.
// Editor input is dropped until the result arrives, so only that result
// can change the buffer.
func (m model) startFormat() (model, tea.Cmd) {
	if m.session.Formatting {
		return m, nil
	}
	m.session = state.BeginFormat(m.session)
	m.editor = m.editor.SetReadOnly(true)
	src := m.session.Buffer
	parser := m.session.Language.Parser()
	m.deps.Logger.Info("format", "parser", parser, "bytes", len(src))
	return m, tea.Batch(formatCmd(m.ctx, m.deps.Formatter, src, parser), m.spinner.Tick)
}

func formatCmd(ctx context.Context, f format.Formatter, src string, parser lang.Parser) tea.Cmd {
	return func() tea.Msg {
		out, err := f.Format(ctx, src, format.DefaultOptions(parser))
		return formatDoneMsg{parser: parser, out: out, err: err}
	}
}

func (m model) finishFormat(msg formatDoneMsg) model {
	m.editor = m.editor.SetReadOnly(false)
	if msg.err != nil {
		m.session = state.FormatFailed(m.session, format.Message(msg.err))
		m.deps.Logger.Info("format failed", "parser", msg.parser, "err", msg.err)
		return m
	}
	m.session = state.FormatSucceeded(m.session, msg.parser, msg.out)
	m = m.loadBuffer(m.session.Buffer)
	m.session.LastFormat.After = m.session.Buffer
	st := diff.Count(m.session.LastFormat.Before, m.session.LastFormat.After)
	m.ui = state.SetNotice(m.ui, fmt.Sprintf("Formatted (+%d −%d)", st.Added, st.Removed))
	return m
}

// copy writes the buffer to the clipboard and arms a reset timer. Each copy
// gets a fresh timer id, so only the newest timer clears the flag.
func (m model) copy() (model, tea.Cmd) {
	if err := m.deps.Clipboard.WriteText(m.session.Buffer); err != nil {
		m.deps.Logger.Debug("clipboard write failed", "err", err)
	}
	var seq int
	m.session, seq = state.MarkCopied(m.session)
	return m, m.after(CopyResetDelay, func(time.Time) tea.Msg { return copyResetMsg{seq: seq} })
}

// loadBuffer puts text in the editor and takes the buffer back from it. The
// textarea expands tabs, so the buffer must be what the editor holds for
// copy and later edits to agree with the screen.
func (m model) loadBuffer(text string) model {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	m.editor = m.editor.SetValue(text)
	shown := m.editor.Value()
	m.session = state.EditBuffer(m.session, &shown)
	return m
}

func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return fileLoadedMsg{path: path, err: err}
		}
		return fileLoadedMsg{path: path, text: string(data)}
	}
}

func (m model) fileLoaded(msg fileLoadedMsg) model {
	if msg.err != nil {
		m.ui = state.SetNotice(m.ui, "Open failed: "+msg.err.Error())
		return m
	}
	if m.session.Formatting {
		m.ui = state.SetNotice(m.ui, "Busy formatting; try again")
		return m
	}
	m = m.loadBuffer(msg.text)
	notice := "Loaded " + filepath.Base(msg.path)
	if l, ok := lang.Detect(msg.path, []byte(msg.text)); ok {
		m = m.selectLanguage(l)
		notice += " (" + l.Label() + ")"
	}
	m.ui = state.SetNotice(m.ui, notice)
	return m
}

// ===== Layout & views =====

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60A5FA"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#7F1D1D")).Padding(0, 1)
	paneStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#334155"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

const (
	headerLines = 1
	footerLines = 2
	borderLines = 2
	minPane     = 3
)

func (m model) relayout() model {
	m.ui.Line, m.ui.Col = m.editor.Cursor()
	if m.ui.Width <= 0 || m.ui.Height <= 0 {
		return m
	}
	m.editor = m.editor.SetSize(m.ui.Width-borderLines, m.paneHeight())
	m.help.Width = m.ui.Width
	m.path.Width = m.ui.Width - len(m.path.Prompt) - 2
	return m
}

func (m model) paneHeight() int {
	used := headerLines + footerLines + borderLines
	if m.session.Err != "" {
		used += lipgloss.Height(m.errorView())
	}
	if m.ui.Opening {
		used++
	}
	h := m.ui.Height - used
	if h < minPane {
		h = minPane
	}
	return h
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.headerView() + "\n")
	if m.session.Err != "" {
		b.WriteString(m.errorView() + "\n")
	}
	if m.ui.Opening {
		b.WriteString(m.path.View() + "\n")
	}
	b.WriteString(m.paneView() + "\n")
	b.WriteString(statusbar.NewStatusBar().View(m.ui) + "\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) headerView() string {
	title := "Code Formatter"
	if !m.deps.NoColor {
		title = titleStyle.Render("</> " + title)
	}
	cs := chips.View(util.ComputeChips(m.session), m.deps.NoColor)
	if m.session.Formatting {
		cs = m.spinner.View() + " " + cs
	}
	return title + "  " + cs
}

func (m model) errorView() string {
	if m.deps.NoColor {
		return "error: " + m.session.Err
	}
	w := m.ui.Width - borderLines
	if w < 20 {
		w = 20
	}
	return errorStyle.Width(w).Render(m.session.Err)
}

func (m model) paneView() string {
	var body string
	switch {
	case m.ui.ShowHelp:
		body = helpoverlay.NewHelpOverlay().View(m.ui, m.keys.sections())
	case m.ui.Picking:
		body = m.picker.View(m.session.Language)
	case m.ui.Pane == state.PreviewPane:
		body = util.Highlight(m.session.Buffer, m.session.Language.Lexer(), m.deps.Theme, m.deps.NoColor)
	case m.ui.Pane == state.DiffPane && m.session.LastFormat != nil:
		lf := m.session.LastFormat
		body = diff.NewDiffView(m.deps.NoColor).View(lf.Before, lf.After)
	default:
		body = m.editor.View()
	}
	if m.ui.Height > 0 {
		body = clipLines(body, m.paneHeight())
	}
	if m.deps.NoColor {
		return body
	}
	style := paneStyle
	if m.ui.Width > 0 {
		style = style.Width(m.ui.Width - borderLines)
	}
	return style.Render(body)
}

// clipLines keeps at most n lines of s, marking the cut.
func clipLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) <= n {
		return strings.Join(lines, "\n")
	}
	lines = lines[:n]
	lines[n-1] = faintStyle.Render("…")
	return strings.Join(lines, "\n")
}
