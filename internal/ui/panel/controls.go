package panel

import (
	"github.com/charmbracelet/bubbles/key"

	"gradebook/internal/config"
	"gradebook/internal/domain"
)

// ControlID names a command control
type ControlID string

const (
	ListRemoteEnrolledStudents        ControlID = "list-remote-enrolled-students"
	ListRemoteStudentsInSection       ControlID = "list-remote-students-in-section"
	MergeEnrolledStudentsInSection    ControlID = "merge-enrolled-students-in-section"
	OverloadEnrolledStudentsInSection ControlID = "overload-enrolled-students-in-section"
	ListRemoteAssignments             ControlID = "list-remote-assignments"
	ListCourseAssignments             ControlID = "list-course-assignments"
	DisplayAssignmentGrades           ControlID = "display-assignment-grades"
	ExportAssignmentGradesToRG        ControlID = "export-assignment-grades-to-rg"
	ExportAssignmentGradesCSV         ControlID = "export-assignment-grades-csv"
)

// RequestBuilder derives a request descriptor from the panel state
type RequestBuilder func(st *State, c Control) domain.RequestData

// Control is a command control and its static configuration
type Control struct {
	ID       ControlID
	Label    string
	Endpoint string
	// UnenrollCurrent is the static flag sent by the enrollment controls
	UnenrollCurrent bool
	// PreflightEndpoint reports who an overload would unenroll
	PreflightEndpoint string
	Build             RequestBuilder
	Key               key.Binding
}

func (c Control) request(st *State) domain.RequestData {
	if c.Build == nil {
		return domain.RequestData{}
	}
	return c.Build(st, c)
}

func sectionNameRequest(st *State, _ Control) domain.RequestData {
	return domain.RequestData{"section_name": st.Section.Value()}
}

func enrollmentRequest(st *State, c Control) domain.RequestData {
	return domain.RequestData{
		"unenroll_current": c.UnenrollCurrent,
		"section_name":     st.Section.Value(),
	}
}

func assignmentNameRequest(st *State, _ Control) domain.RequestData {
	return domain.RequestData{"assignment_name": st.Assignment.Value()}
}

func binding(k, help string) key.Binding {
	return key.NewBinding(key.WithKeys(k), key.WithHelp(k, help))
}

// Controls builds the panel's command controls from cfg, in display order
func Controls(cfg *config.Config) []Control {
	ep := cfg.Endpoints
	return []Control{
		{
			ID:       ListRemoteEnrolledStudents,
			Label:    "List enrolled students matching remote gradebook",
			Endpoint: ep.ListRemoteEnrolledStudents,
			Key:      binding("1", "list enrolled"),
		},
		{
			ID:       ListRemoteStudentsInSection,
			Label:    "List students in section in remote gradebook",
			Endpoint: ep.ListRemoteStudentsInSection,
			Build:    sectionNameRequest,
			Key:      binding("2", "list section"),
		},
		{
			ID:              MergeEnrolledStudentsInSection,
			Label:           "Merge enrolled students to section",
			Endpoint:        ep.MergeEnrolledStudentsInSection,
			UnenrollCurrent: cfg.Enrollment.MergeUnenrollCurrent,
			Build:           enrollmentRequest,
			Key:             binding("3", "merge"),
		},
		{
			ID:                OverloadEnrolledStudentsInSection,
			Label:             "Overload enrolled students to section",
			Endpoint:          ep.OverloadEnrolledStudentsInSection,
			UnenrollCurrent:   cfg.Enrollment.OverloadUnenrollCurrent,
			PreflightEndpoint: ep.OverloadEnrolledUsers,
			Build:             enrollmentRequest,
			Key:               binding("4", "overload"),
		},
		{
			ID:       ListRemoteAssignments,
			Label:    "List assignments available in remote gradebook",
			Endpoint: ep.ListRemoteAssignments,
			Key:      binding("5", "remote assignments"),
		},
		{
			ID:       ListCourseAssignments,
			Label:    "List assignments available for this course",
			Endpoint: ep.ListCourseAssignments,
			Key:      binding("6", "course assignments"),
		},
		{
			ID:       DisplayAssignmentGrades,
			Label:    "Display student grades for assignment",
			Endpoint: ep.DisplayAssignmentGrades,
			Build:    assignmentNameRequest,
			Key:      binding("7", "display grades"),
		},
		{
			ID:       ExportAssignmentGradesToRG,
			Label:    "Export grades for assignment to remote gradebook",
			Endpoint: ep.ExportAssignmentGradesToRG,
			Build:    assignmentNameRequest,
			Key:      binding("8", "export to remote"),
		},
		{
			ID:       ExportAssignmentGradesCSV,
			Label:    "Export grades for assignment to CSV",
			Endpoint: ep.ExportAssignmentGradesCSV,
			Key:      binding("9", "export csv"),
		},
	}
}
