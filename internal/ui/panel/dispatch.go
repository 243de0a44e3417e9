package panel

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"gradebook/internal/domain"
	"gradebook/internal/i18n"
)

// press runs the handler bound to a command control
func press(ctx context.Context, st *State, deps Deps, c Control) tea.Cmd {
	switch c.ID {
	case ExportAssignmentGradesCSV:
		// File download; the result renderer is not involved.
		return exportCSV(ctx, st, deps, c)
	case OverloadEnrolledStudentsInSection:
		return startOverload(ctx, st, deps, c)
	default:
		return dispatch(ctx, st, deps, c, c.request(st), 0)
	}
}

// dispatch inserts a loading indicator before the errors region and returns
// the command posting data to the control's endpoint. Nothing tracks
// in-flight requests: pressing a control again sends another request.
func dispatch(ctx context.Context, st *State, deps Deps, c Control, data domain.RequestData, flow int) tea.Cmd {
	if data == nil {
		data = domain.RequestData{}
	}
	id := st.insertIndicator(AnchorErrors, "")
	control, endpoint := c.ID, c.Endpoint

	deps.publish(domain.RequestStartedEvent{Control: string(control), Endpoint: endpoint, Payload: data})

	return func() tea.Msg {
		body, err := deps.Backend.Post(ctx, endpoint, data)
		if err != nil {
			return actionResultMsg{control: control, indicator: id, flow: flow, err: err}
		}
		resp, err := domain.DecodeActionResponse(body)
		return actionResultMsg{control: control, indicator: id, flow: flow, resp: resp, err: err}
	}
}

// handleActionResult renders the response into exactly one region and
// removes the request's indicator
func handleActionResult(st *State, deps Deps, msg actionResultMsg) {
	defer st.removeIndicator(msg.indicator)
	if msg.flow != 0 {
		defer st.dropFlow(msg.flow)
	}

	var outcome string
	if msg.err != nil {
		deps.log().WithError(msg.err).WithField("control", msg.control).Warn("control request failed")
		showErrors(st, deps.Translator.T(i18n.RequestFailed))
		outcome = domain.OutcomeFailed
	} else {
		outcome = renderResponse(st, deps, msg.resp)
	}

	deps.log().WithFields(logrus.Fields{"control": msg.control, "outcome": outcome}).Info("control request finished")
	deps.publish(domain.RequestFinishedEvent{Control: string(msg.control), Outcome: outcome, Err: msg.err})
}
