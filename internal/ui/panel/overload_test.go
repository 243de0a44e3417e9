package panel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/internal/domain"
	"gradebook/internal/eventbus"
	"gradebook/internal/i18n"
)

// recordingBus delivers nothing and keeps every published event
type recordingBus struct {
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) { b.events = append(b.events, e) }
func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}
func (b *recordingBus) Close() {}

func (b *recordingBus) decisions() []domain.OverloadDecidedEvent {
	var out []domain.OverloadDecidedEvent
	for _, e := range b.events {
		if d, ok := e.(domain.OverloadDecidedEvent); ok {
			out = append(out, d)
		}
	}
	return out
}

func TestOverloadWarning(t *testing.T) {
	tr := i18n.New("en")

	got := OverloadWarning(tr, domain.PreflightResponse{Count: 3, Users: []string{"x", "y", "z"}})
	assert.Equal(t, "WARNING: This will unenroll non-staff users from the course.\n\nUsers (3): \nx, y, z", got)

	got = OverloadWarning(tr, domain.PreflightResponse{Count: 120, Users: []string{"a", "b"}})
	assert.Contains(t, got, "(120): \na, b, ...")
}

func TestOverloadDeclineSendsNothing(t *testing.T) {
	h := newHarness(t)
	bus := &recordingBus{}
	h.model.deps.Bus = bus
	h.init()
	ep := h.cfg.Endpoints
	h.backend.responses[ep.OverloadEnrolledUsers] = `{"count":3,"users":["x","y","z"]}`

	h.press("4")

	preflight := h.backend.callsTo(ep.OverloadEnrolledUsers)
	require.Len(t, preflight, 1)
	assert.Empty(t, preflight[0].data)

	st := h.model.State()
	flow := st.Confirming()
	require.NotNil(t, flow)
	assert.Equal(t, PhaseConfirming, flow.Phase)
	assert.Contains(t, flow.Prompt, "3")
	assert.Contains(t, flow.Prompt, "x, y, z")
	assert.Contains(t, flow.Prompt, "Section: S1")
	assert.Contains(t, h.model.View(), "x, y, z")

	h.press("n")

	assert.Nil(t, st.Confirming())
	assert.Empty(t, st.Flows)
	assert.Empty(t, h.backend.callsTo(ep.OverloadEnrolledStudentsInSection))
	assert.Empty(t, st.Indicators)

	decisions := bus.decisions()
	require.Len(t, decisions, 1)
	assert.False(t, decisions[0].Accepted)
	assert.Equal(t, 3, decisions[0].Count)
}

func TestOverloadAcceptSendsMergeShapedPayload(t *testing.T) {
	h := newHarness(t)
	h.init()
	ep := h.cfg.Endpoints
	h.backend.responses[ep.OverloadEnrolledUsers] = `{"count":3,"users":["x","y","z"]}`
	h.backend.responses[ep.OverloadEnrolledStudentsInSection] = `{"message":"Overloaded"}`
	h.backend.responses[ep.MergeEnrolledStudentsInSection] = `{"message":"Merged"}`

	h.press("3")
	h.press("4")
	h.press("y")

	st := h.model.State()
	calls := h.backend.callsTo(ep.OverloadEnrolledStudentsInSection)
	require.Len(t, calls, 1)
	assert.Equal(t, domain.RequestData{"unenroll_current": true, "section_name": "S1"}, calls[0].data)

	merge := h.backend.callsTo(ep.MergeEnrolledStudentsInSection)
	require.Len(t, merge, 1)
	assert.ElementsMatch(t, paramNames(merge[0].data), paramNames(calls[0].data))

	assert.Equal(t, "Overloaded", st.Results)
	assert.Empty(t, st.Flows)
	assert.Empty(t, st.Indicators)
}

func TestOverloadSkipsPromptWhenNobodyIsUnenrolled(t *testing.T) {
	h := newHarness(t)
	bus := &recordingBus{}
	h.model.deps.Bus = bus
	h.init()
	ep := h.cfg.Endpoints
	h.backend.responses[ep.OverloadEnrolledUsers] = `{"count":0,"users":[]}`
	h.backend.responses[ep.OverloadEnrolledStudentsInSection] = `{"message":"Overloaded"}`

	h.press("4")

	assert.Len(t, h.backend.callsTo(ep.OverloadEnrolledStudentsInSection), 1)
	assert.Equal(t, "Overloaded", h.model.State().Results)
	assert.Empty(t, h.model.State().Flows)

	decisions := bus.decisions()
	require.Len(t, decisions, 1)
	assert.True(t, decisions[0].Skipped)
}

func TestOverloadPreflightFailureAborts(t *testing.T) {
	for name, setup := range map[string]func(*harness){
		"transport": func(h *harness) {
			h.backend.errs[h.cfg.Endpoints.OverloadEnrolledUsers] = errors.New("connection reset")
		},
		"malformed": func(h *harness) {
			h.backend.responses[h.cfg.Endpoints.OverloadEnrolledUsers] = `{"count":"many"}`
		},
	} {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			h.init()
			setup(h)
			st := h.model.State()
			st.Results = "previous"

			h.press("4")

			assert.Empty(t, h.backend.callsTo(h.cfg.Endpoints.OverloadEnrolledStudentsInSection))
			assert.Empty(t, st.Flows)
			assert.Equal(t, "Request failed.", st.Errors)
			assertExclusive(t, st)
		})
	}
}

func TestOverloadPromptIsModal(t *testing.T) {
	h := newHarness(t)
	h.init()
	ep := h.cfg.Endpoints
	h.backend.responses[ep.OverloadEnrolledUsers] = `{"count":1,"users":["x"]}`
	h.backend.responses[ep.ListRemoteEnrolledStudents] = `{"message":"listed"}`

	h.press("4")
	require.NotNil(t, h.model.State().Confirming())

	h.press("1")
	h.press("c")
	h.press("q")
	assert.Empty(t, h.backend.callsTo(ep.ListRemoteEnrolledStudents))
	assert.NotNil(t, h.model.State().Confirming())

	h.press("esc")
	assert.Nil(t, h.model.State().Confirming())
}

func TestOverloadPayloadTakenAtPress(t *testing.T) {
	h := newHarness(t)
	h.init()
	ep := h.cfg.Endpoints
	h.backend.responses[ep.OverloadEnrolledUsers] = `{"count":2,"users":["x","y"]}`
	h.backend.responses[ep.OverloadEnrolledStudentsInSection] = `{"message":"ok"}`

	preflight := h.key("4")
	h.press("right") // selection moves to S2 while the pre-flight is out
	h.run(preflight)
	h.press("y")

	calls := h.backend.callsTo(ep.OverloadEnrolledStudentsInSection)
	require.Len(t, calls, 1)
	assert.Equal(t, "S1", calls[0].data["section_name"])
}

func TestOverloadPromptsQueue(t *testing.T) {
	h := newHarness(t)
	h.init()
	ep := h.cfg.Endpoints
	h.backend.responses[ep.OverloadEnrolledUsers] = `{"count":2,"users":["x","y"]}`
	h.backend.responses[ep.OverloadEnrolledStudentsInSection] = `{"message":"ok"}`

	first := h.key("4")
	h.press("right")
	second := h.key("4")
	h.run(first)
	h.run(second)

	st := h.model.State()
	require.Len(t, st.Flows, 2)
	assert.Equal(t, st.Flows[0], st.Confirming())

	h.press("y")
	h.press("n")

	calls := h.backend.callsTo(ep.OverloadEnrolledStudentsInSection)
	require.Len(t, calls, 1)
	assert.Equal(t, "S1", calls[0].data["section_name"])
	assert.Empty(t, st.Flows)
}

func TestOpenPromptIsNotReplacedByOlderFlow(t *testing.T) {
	h := newHarness(t)
	h.init()
	ep := h.cfg.Endpoints
	h.backend.responses[ep.OverloadEnrolledUsers] = `{"count":2,"users":["x","y"]}`
	h.backend.responses[ep.OverloadEnrolledStudentsInSection] = `{"message":"ok"}`

	first := h.key("4")
	h.press("right")
	second := h.key("4")

	// the later press gets its answer first
	h.run(second)
	st := h.model.State()
	shown := st.Confirming()
	require.NotNil(t, shown)
	assert.Contains(t, shown.Prompt, "Section: S2")
	view := h.model.View()

	h.run(first)
	assert.Same(t, shown, st.Confirming())
	assert.Equal(t, view, h.model.View())

	h.press("y")
	calls := h.backend.callsTo(ep.OverloadEnrolledStudentsInSection)
	require.Len(t, calls, 1)
	assert.Equal(t, "S2", calls[0].data["section_name"])

	next := st.Confirming()
	require.NotNil(t, next)
	assert.Contains(t, next.Prompt, "Section: S1")
}

func paramNames(d domain.RequestData) []string {
	out := make([]string, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	return out
}
