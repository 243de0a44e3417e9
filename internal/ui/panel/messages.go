package panel

import (
	"gradebook/internal/domain"
)

// optionsLoadedMsg carries the result of a selection input's option fetch
type optionsLoadedMsg struct {
	input     InputID
	indicator int
	resp      domain.OptionsResponse
	err       error
}

// actionResultMsg carries the response to a dispatched control request
type actionResultMsg struct {
	control   ControlID
	indicator int
	flow      int // overload flow that issued the request, 0 if none
	resp      domain.ActionResponse
	err       error
}

// preflightResultMsg carries the overload pre-flight answer
type preflightResultMsg struct {
	flow int
	resp domain.PreflightResponse
	err  error
}

// exportDoneMsg reports the end of a grade sheet download
type exportDoneMsg struct {
	target string
	path   string
	err    error
}

// pagerDoneMsg is sent when the results pager closes
type pagerDoneMsg struct {
	err error
}

// pauseRenderingMsg signals to pause rendering while the pager owns the terminal
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume rendering
type resumeRenderingMsg struct{}
