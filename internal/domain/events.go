package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventRequestStarted  EventType = "RequestStarted"
	EventRequestFinished EventType = "RequestFinished"
	EventOverloadDecided EventType = "OverloadDecided"
	EventExportSaved     EventType = "ExportSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// RequestStartedEvent is emitted when a command control sends its request
type RequestStartedEvent struct {
	Control  string
	Endpoint string
	Payload  RequestData
}

func (e RequestStartedEvent) Type() EventType { return EventRequestStarted }

// Request outcomes reported by RequestFinishedEvent
const (
	OutcomeNoResults = "no_results"
	OutcomeErrors    = "errors"
	OutcomeDatatable = "datatable"
	OutcomeMessage   = "message"
	OutcomeFailed    = "failed"
)

// RequestFinishedEvent is emitted once a control's response has been rendered
type RequestFinishedEvent struct {
	Control string
	Outcome string
	Err     error
}

func (e RequestFinishedEvent) Type() EventType { return EventRequestFinished }

// OverloadDecidedEvent records how an overload flow left the pre-flight stage.
// Skipped is set when nobody would be unenrolled and no prompt was shown.
type OverloadDecidedEvent struct {
	Count    int
	Accepted bool
	Skipped  bool
	Err      error
}

func (e OverloadDecidedEvent) Type() EventType { return EventOverloadDecided }

// ExportSavedEvent is emitted after a grade export download finishes
type ExportSavedEvent struct {
	Target string
	Path   string
	Err    error
}

func (e ExportSavedEvent) Type() EventType { return EventExportSaved }
