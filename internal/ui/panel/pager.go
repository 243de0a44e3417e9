package panel

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

var errNoProgram = errors.New("program not set")

// openPager returns a command that shows the results region in ov. Rendering
// is paused while ov owns the terminal.
func (m *Model) openPager() tea.Cmd {
	content := m.state.Results
	if content == "" {
		return nil
	}
	p := m.program
	if p == nil {
		return func() tea.Msg { return pagerDoneMsg{err: errNoProgram} }
	}

	return func() tea.Msg {
		p.Send(pauseRenderingMsg{})
		err := showInPager(p, content)
		p.Send(resumeRenderingMsg{})
		return pagerDoneMsg{err: err}
	}
}

func showInPager(p *tea.Program, content string) error {
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	if err := p.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// give ov a moment to leave the alternate screen
		time.Sleep(100 * time.Millisecond)
		_ = p.RestoreTerminal()
	}()

	return root.Run()
}
