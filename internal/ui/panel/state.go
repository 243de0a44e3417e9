package panel

// InputID identifies a selection input
type InputID int

const (
	SectionInput InputID = iota
	AssignmentInput
)

// Anchor is the place a loading indicator is drawn next to
type Anchor int

const (
	// AnchorErrors places the indicator just before the errors region
	AnchorErrors Anchor = iota
	AnchorSection
	AnchorAssignment
)

// Indicator is a transient loading indicator
type Indicator struct {
	ID     int
	Anchor Anchor
	Text   string
}

// SelectionInput offers a closed set of server supplied choices. It starts
// disabled and empty and is enabled only by a successful option load.
type SelectionInput struct {
	ID       InputID
	Label    string
	Endpoint string
	Options  []string
	Selected int
	Disabled bool
	Error    string
}

// Value returns the current selection, or "" when nothing can be selected
func (in *SelectionInput) Value() string {
	if in.Disabled || len(in.Options) == 0 {
		return ""
	}
	return in.Options[in.Selected]
}

// Cycle moves the selection by delta, wrapping around
func (in *SelectionInput) Cycle(delta int) {
	n := len(in.Options)
	if in.Disabled || n == 0 {
		return
	}
	in.Selected = ((in.Selected+delta)%n + n) % n
}

func (in *SelectionInput) anchor() Anchor {
	if in.ID == AssignmentInput {
		return AnchorAssignment
	}
	return AnchorSection
}

// State is everything one mounted panel owns. Handlers receive it explicitly.
type State struct {
	Results    string
	Errors     string
	Indicators []Indicator
	Section    *SelectionInput
	Assignment *SelectionInput
	Focus      InputID
	Flows      []*OverloadFlow
	Status     string

	nextIndicator int
	nextFlow      int
	nextConfirm   int
}

// NewState creates the state of a freshly mounted panel
func NewState(sectionEndpoint, assignmentEndpoint string) *State {
	return &State{
		Section: &SelectionInput{
			ID:       SectionInput,
			Label:    "Section",
			Endpoint: sectionEndpoint,
			Disabled: true,
		},
		Assignment: &SelectionInput{
			ID:       AssignmentInput,
			Label:    "Assignment",
			Endpoint: assignmentEndpoint,
			Disabled: true,
		},
	}
}

// Input returns the selection input with the given id
func (s *State) Input(id InputID) *SelectionInput {
	if id == AssignmentInput {
		return s.Assignment
	}
	return s.Section
}

// FocusedInput returns the input that option cycling applies to
func (s *State) FocusedInput() *SelectionInput {
	return s.Input(s.Focus)
}

func (s *State) insertIndicator(anchor Anchor, text string) int {
	s.nextIndicator++
	s.Indicators = append(s.Indicators, Indicator{ID: s.nextIndicator, Anchor: anchor, Text: text})
	return s.nextIndicator
}

// removeIndicator reports whether the indicator was still present
func (s *State) removeIndicator(id int) bool {
	for i, ind := range s.Indicators {
		if ind.ID == id {
			s.Indicators = append(s.Indicators[:i:i], s.Indicators[i+1:]...)
			return true
		}
	}
	return false
}

// IndicatorsAt lists the indicators drawn next to anchor
func (s *State) IndicatorsAt(anchor Anchor) []Indicator {
	var out []Indicator
	for _, ind := range s.Indicators {
		if ind.Anchor == anchor {
			out = append(out, ind)
		}
	}
	return out
}
