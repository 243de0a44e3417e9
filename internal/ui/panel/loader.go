package panel

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"gradebook/internal/domain"
	"gradebook/internal/i18n"
)

// loadOptions shows a loading indicator next to the input and returns the
// command fetching its options. The input stays disabled until the result
// arrives.
func loadOptions(ctx context.Context, st *State, deps Deps, in *SelectionInput) tea.Cmd {
	id := st.insertIndicator(in.anchor(), deps.Translator.T(i18n.LoadingOptions))
	input, endpoint := in.ID, in.Endpoint

	return func() tea.Msg {
		body, err := deps.Backend.Post(ctx, endpoint, nil)
		if err != nil {
			return optionsLoadedMsg{input: input, indicator: id, err: err}
		}
		resp, err := domain.DecodeOptionsResponse(body)
		return optionsLoadedMsg{input: input, indicator: id, resp: resp, err: err}
	}
}

// handleOptionsLoaded fills or fails the input and removes its indicator
func handleOptionsLoaded(st *State, deps Deps, msg optionsLoadedMsg) {
	st.removeIndicator(msg.indicator)
	in := st.Input(msg.input)

	switch {
	case msg.err != nil:
		deps.log().WithError(msg.err).WithField("input", in.Label).Warn("loading options failed")
		in.Error = deps.Translator.T(i18n.RequestFailed)
	case msg.resp.Errors != "":
		in.Error = msg.resp.Errors
	default:
		in.Options = append(in.Options, msg.resp.Data...)
		in.Disabled = false
		deps.log().WithFields(logrus.Fields{"input": in.Label, "options": len(msg.resp.Data)}).Debug("options loaded")
	}
}
