package panel

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"gradebook/internal/config"
	"gradebook/internal/i18n"
)

// SectionID is the registry id of the remote gradebook panel
const SectionID = "remote_gradebook"

// Model is the Bubble Tea model of one mounted remote gradebook panel
type Model struct {
	ctx      context.Context
	deps     Deps
	state    *State
	controls []Control

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	styles  *Styles

	width       int
	height      int
	inPagerMode bool

	// Program reference for handing the terminal to the pager
	program *tea.Program
}

// New mounts a panel. Requests made by the panel live as long as ctx.
func New(ctx context.Context, deps Deps, cfg *config.Config) *Model {
	controls := Controls(cfg)
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	styles := NewStyles()
	s.Style = styles.Loading

	return &Model{
		ctx:      ctx,
		deps:     deps,
		state:    NewState(cfg.Endpoints.SectionNames, cfg.Endpoints.AssignmentNames),
		controls: controls,
		keys:     newKeyMap(controls),
		help:     help.New(),
		spinner:  s,
		styles:   styles,
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// State exposes the panel state for inspection
func (m *Model) State() *State {
	return m.state
}

// Init starts the spinner and loads both selection inputs
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		loadOptions(m.ctx, m.state, m.deps, m.state.Section),
		loadOptions(m.ctx, m.state, m.deps, m.state.Assignment),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case optionsLoadedMsg:
		handleOptionsLoaded(m.state, m.deps, msg)

	case actionResultMsg:
		handleActionResult(m.state, m.deps, msg)

	case preflightResultMsg:
		return m, handlePreflight(m.ctx, m.state, m.deps, msg)

	case exportDoneMsg:
		handleExportDone(m.state, m.deps, msg)

	case pagerDoneMsg:
		if msg.err != nil {
			m.deps.log().WithError(msg.err).Warn("pager failed")
			m.state.Status = m.deps.Translator.Tf(i18n.PagerFailed, msg.err)
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return tea.Quit
	}

	// An open overload prompt is modal.
	if m.state.Confirming() != nil {
		switch {
		case key.Matches(msg, m.keys.Accept):
			return decideOverload(m.ctx, m.state, m.deps, true)
		case key.Matches(msg, m.keys.Decline):
			return decideOverload(m.ctx, m.state, m.deps, false)
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Clear):
		clearRegions(m.state)
		return nil
	case key.Matches(msg, m.keys.Pager):
		return m.openPager()
	case key.Matches(msg, m.keys.NextInput):
		if m.state.Focus == SectionInput {
			m.state.Focus = AssignmentInput
		} else {
			m.state.Focus = SectionInput
		}
		return nil
	case key.Matches(msg, m.keys.PrevOpt):
		m.state.FocusedInput().Cycle(-1)
		return nil
	case key.Matches(msg, m.keys.NextOpt):
		m.state.FocusedInput().Cycle(1)
		return nil
	}

	for _, c := range m.controls {
		if key.Matches(msg, c.Key) {
			return press(m.ctx, m.state, m.deps, c)
		}
	}
	return nil
}

// View renders the panel
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	st := m.state
	b := &strings.Builder{}
	b.WriteString(m.styles.Title.Render("Remote Gradebook"))
	b.WriteString("\n")

	for _, in := range []*SelectionInput{st.Section, st.Assignment} {
		b.WriteString(m.renderInput(in))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, c := range m.controls {
		fmt.Fprintf(b, "%s %s\n", m.styles.Key.Render("["+c.Key.Help().Key+"]"), c.Label)
	}
	b.WriteString("\n")

	for range st.IndicatorsAt(AnchorErrors) {
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	}
	if st.Errors != "" {
		b.WriteString(m.styles.Errors.Render(st.Errors))
		b.WriteString("\n")
	}
	if st.Results != "" {
		b.WriteString(m.styles.Results.Render(st.Results))
		b.WriteString("\n")
	}

	if flow := st.Confirming(); flow != nil {
		prompt := m.styles.Confirm.Render(flow.Prompt) + "\n\n" +
			m.help.ShortHelpView(confirmKeys{Accept: m.keys.Accept, Decline: m.keys.Decline}.ShortHelp())
		b.WriteString(m.styles.ConfirmBox.Render(prompt))
		b.WriteString("\n")
	}

	if st.Status != "" {
		b.WriteString(m.styles.Status.Render(st.Status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	return m.styles.Main.Render(b.String())
}

func (m *Model) renderInput(in *SelectionInput) string {
	label := in.Label
	if m.state.Focus == in.ID {
		label = m.styles.Focused.Render("> " + label)
	} else {
		label = "  " + label
	}

	value := m.styles.Dim.Render("(none)")
	if v := in.Value(); v != "" {
		value = m.styles.Option.Render(fmt.Sprintf("‹ %s ›", v))
	}

	parts := []string{m.styles.Label.Render(label), value}
	for _, ind := range m.state.IndicatorsAt(in.anchor()) {
		parts = append(parts, m.spinner.View()+m.styles.Loading.Render(ind.Text))
	}
	if in.Error != "" {
		parts = append(parts, m.styles.InlineError.Render(in.Error))
	}
	return strings.Join(parts, " ")
}
