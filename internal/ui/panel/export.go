package panel

import (
	"context"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"gradebook/internal/domain"
	"gradebook/internal/i18n"
)

// exportTarget builds the download link for an assignment's grade sheet
func exportTarget(endpoint, assignment string) string {
	return endpoint + "?assignment_name=" + encodeURIComponent(assignment)
}

// uriComponentUnescapes undoes the escapes QueryEscape adds beyond
// encodeURIComponent, which leaves !*'() alone and writes spaces as %20.
var uriComponentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%2A", "*",
	"%27", "'",
	"%28", "(",
	"%29", ")",
)

// encodeURIComponent escapes s the way a browser's encodeURIComponent does
func encodeURIComponent(s string) string {
	return uriComponentUnescapes.Replace(url.QueryEscape(s))
}

// exportCSV validates the assignment selection and navigates to the grade
// sheet download. No request is made without an assignment.
func exportCSV(ctx context.Context, st *State, deps Deps, c Control) tea.Cmd {
	assignment := st.Assignment.Value()
	if assignment == "" {
		showErrors(st, deps.Translator.T(i18n.AssignmentRequired))
		return nil
	}

	target := exportTarget(c.Endpoint, assignment)
	st.Status = deps.Translator.Tf(i18n.Downloading, assignment)
	return func() tea.Msg {
		path, err := deps.Navigator.Navigate(ctx, target)
		return exportDoneMsg{target: target, path: path, err: err}
	}
}

func handleExportDone(st *State, deps Deps, msg exportDoneMsg) {
	deps.publish(domain.ExportSavedEvent{Target: msg.target, Path: msg.path, Err: msg.err})
	if msg.err != nil {
		deps.log().WithError(msg.err).WithField("target", msg.target).Warn("grade export failed")
		st.Status = deps.Translator.Tf(i18n.ExportFailed, msg.err)
		return
	}
	deps.log().WithField("path", msg.path).Info("grade export saved")
	st.Status = deps.Translator.Tf(i18n.Saved, msg.path)
}
