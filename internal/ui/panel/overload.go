package panel

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"gradebook/internal/domain"
	"gradebook/internal/i18n"
)

// OverloadPhase is the state of one overload flow. A flow that returns to
// idle is removed from the panel state.
type OverloadPhase int

const (
	PhaseIdle OverloadPhase = iota
	PhasePreflightPending
	PhaseConfirming
	PhaseProceeding
)

func (p OverloadPhase) String() string {
	switch p {
	case PhasePreflightPending:
		return "preflight-pending"
	case PhaseConfirming:
		return "confirming"
	case PhaseProceeding:
		return "proceeding"
	default:
		return "idle"
	}
}

// OverloadFlow tracks one press of the overload control. Payload is taken
// when the control is pressed so the request sent is the one the user
// confirmed.
type OverloadFlow struct {
	ID      int
	Phase   OverloadPhase
	Control Control
	Payload domain.RequestData
	Prompt  string
	Count   int

	// confirmSeq orders prompts by the time they were opened
	confirmSeq int
}

// OverloadWarning builds the confirmation prompt text for a pre-flight answer
func OverloadWarning(t Translator, resp domain.PreflightResponse) string {
	var b strings.Builder
	b.WriteString(t.T(i18n.OverloadWarning))
	b.WriteString(t.T(i18n.Users))
	fmt.Fprintf(&b, "(%d): \n", resp.Count)
	b.WriteString(strings.Join(resp.Users, ", "))
	if resp.Count > len(resp.Users) {
		b.WriteString(", ...")
	}
	return b.String()
}

// overloadPrompt names the section the flow would overload below the warning
func overloadPrompt(t Translator, flow *OverloadFlow, resp domain.PreflightResponse) string {
	section := fmt.Sprint(flow.Payload["section_name"])
	return OverloadWarning(t, resp) + "\n\n" + t.Tf(i18n.SectionPrompt, section)
}

// startOverload moves a new flow to PREFLIGHT_PENDING and returns the
// pre-flight request
func startOverload(ctx context.Context, st *State, deps Deps, c Control) tea.Cmd {
	st.nextFlow++
	flow := &OverloadFlow{
		ID:      st.nextFlow,
		Phase:   PhasePreflightPending,
		Control: c,
		Payload: c.request(st),
	}
	st.Flows = append(st.Flows, flow)

	id, endpoint := flow.ID, c.PreflightEndpoint
	return func() tea.Msg {
		body, err := deps.Backend.Post(ctx, endpoint, nil)
		if err != nil {
			return preflightResultMsg{flow: id, err: err}
		}
		resp, err := domain.DecodePreflightResponse(body)
		return preflightResultMsg{flow: id, resp: resp, err: err}
	}
}

// handlePreflight leaves PREFLIGHT_PENDING. A failed pre-flight aborts the
// flow and reports the failure in the errors region; nothing is unenrolled
// on the strength of an unknown count.
func handlePreflight(ctx context.Context, st *State, deps Deps, msg preflightResultMsg) tea.Cmd {
	flow := st.flow(msg.flow)
	if flow == nil || flow.Phase != PhasePreflightPending {
		return nil
	}

	if msg.err != nil {
		st.dropFlow(flow.ID)
		deps.log().WithError(msg.err).Warn("overload pre-flight failed, overload aborted")
		showErrors(st, deps.Translator.T(i18n.RequestFailed))
		deps.publish(domain.OverloadDecidedEvent{Err: msg.err})
		return nil
	}

	flow.Count = msg.resp.Count
	if msg.resp.Count > 0 {
		st.nextConfirm++
		flow.Phase = PhaseConfirming
		flow.confirmSeq = st.nextConfirm
		flow.Prompt = overloadPrompt(deps.Translator, flow, msg.resp)
		return nil
	}

	deps.publish(domain.OverloadDecidedEvent{Accepted: true, Skipped: true})
	return proceedOverload(ctx, st, deps, flow)
}

// decideOverload answers the prompt on screen
func decideOverload(ctx context.Context, st *State, deps Deps, accept bool) tea.Cmd {
	flow := st.Confirming()
	if flow == nil {
		return nil
	}

	deps.log().WithFields(logrus.Fields{"count": flow.Count, "accepted": accept}).Info("overload confirmation answered")
	deps.publish(domain.OverloadDecidedEvent{Count: flow.Count, Accepted: accept})

	if !accept {
		st.dropFlow(flow.ID)
		return nil
	}
	return proceedOverload(ctx, st, deps, flow)
}

func proceedOverload(ctx context.Context, st *State, deps Deps, flow *OverloadFlow) tea.Cmd {
	flow.Phase = PhaseProceeding
	flow.Prompt = ""
	return dispatch(ctx, st, deps, flow.Control, flow.Payload, flow.ID)
}

// Confirming returns the flow whose prompt is on screen. Prompts queue in
// the order they were opened, so an open prompt stays until it is answered.
func (s *State) Confirming() *OverloadFlow {
	var current *OverloadFlow
	for _, f := range s.Flows {
		if f.Phase == PhaseConfirming && (current == nil || f.confirmSeq < current.confirmSeq) {
			current = f
		}
	}
	return current
}

func (s *State) flow(id int) *OverloadFlow {
	for _, f := range s.Flows {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func (s *State) dropFlow(id int) {
	for i, f := range s.Flows {
		if f.ID == id {
			f.Phase = PhaseIdle
			s.Flows = append(s.Flows[:i:i], s.Flows[i+1:]...)
			return
		}
	}
}
