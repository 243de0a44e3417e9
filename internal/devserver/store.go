// Package devserver is an in-memory stand-in for the remote gradebook
// endpoints of a course. It exists for local development and integration
// tests; nothing it holds is persisted.
package devserver

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrNoSection    = errors.New("section name is required")
	ErrNoAssignment = errors.New("assignment name is required")
)

// Assignment is a gradable course assignment
type Assignment struct {
	Name   string
	Points float64
}

// Store holds one course and its remote gradebook
type Store struct {
	mu sync.Mutex

	sections          []string
	remoteRosters     map[string][]string // section -> usernames
	remoteAssignments []string
	assignments       []Assignment
	enrolled          map[string]bool
	staff             map[string]bool
	grades            map[string]map[string]float64 // assignment -> username -> grade
	exported          map[string]bool
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		remoteRosters: make(map[string][]string),
		enrolled:      make(map[string]bool),
		staff:         make(map[string]bool),
		grades:        make(map[string]map[string]float64),
		exported:      make(map[string]bool),
	}
}

// NewSeededStore creates a store with a small demo course
func NewSeededStore() *Store {
	s := NewStore()
	s.AddSection("Section A", "ann", "bob", "cid")
	s.AddSection("Section B", "dee", "eve")
	s.AddRemoteAssignment("Quiz 1")
	s.AddRemoteAssignment("Midterm Exam")
	s.AddAssignment(Assignment{Name: "Quiz 1", Points: 10})
	s.AddAssignment(Assignment{Name: "Homework 1", Points: 20})
	s.AddAssignment(Assignment{Name: "Midterm Exam", Points: 100})
	s.Enroll("ann", "bob", "fay", "gus")
	s.AddStaff("prof")
	s.SetGrade("Quiz 1", "ann", 9)
	s.SetGrade("Quiz 1", "bob", 7.5)
	s.SetGrade("Homework 1", "ann", 18)
	return s
}

func (s *Store) AddSection(name string, roster ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.remoteRosters[name]; !ok {
		s.sections = append(s.sections, name)
	}
	s.remoteRosters[name] = append(s.remoteRosters[name], roster...)
}

func (s *Store) AddRemoteAssignment(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remoteAssignments = append(s.remoteAssignments, name)
}

func (s *Store) AddAssignment(a Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments = append(s.assignments, a)
}

func (s *Store) Enroll(users ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.enrolled[u] = true
	}
}

// AddStaff enrolls course staff. Staff are never unenrolled.
func (s *Store) AddStaff(users ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.enrolled[u] = true
		s.staff[u] = true
	}
}

func (s *Store) SetGrade(assignment, user string, grade float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grades[assignment] == nil {
		s.grades[assignment] = make(map[string]float64)
	}
	s.grades[assignment][user] = grade
}

// Sections lists the remote gradebook sections
func (s *Store) Sections() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sections...)
}

// AssignmentNames lists the course assignment names
func (s *Store) AssignmentNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.assignments))
	for i, a := range s.assignments {
		names[i] = a.Name
	}
	return names
}

func (s *Store) Assignments() []Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Assignment(nil), s.assignments...)
}

func (s *Store) RemoteAssignments() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.remoteAssignments...)
}

// RemoteEnrolled lists enrolled students that appear in a remote section,
// as username/section pairs sorted by username
func (s *Store) RemoteEnrolled() [][2]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out [][2]string
	for _, section := range s.sections {
		for _, u := range s.remoteRosters[section] {
			if s.enrolled[u] {
				out = append(out, [2]string{u, section})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// Roster lists the remote roster of a section
func (s *Store) Roster(section string) ([]string, error) {
	if section == "" {
		return nil, ErrNoSection
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	roster, ok := s.remoteRosters[section]
	if !ok {
		return nil, fmt.Errorf("unknown section %q", section)
	}
	return append([]string(nil), roster...), nil
}

// NonRemoteUsers lists enrolled non-staff users missing from every remote
// roster. These are the users an overload would unenroll.
func (s *Store) NonRemoteUsers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	remote := make(map[string]bool)
	for _, roster := range s.remoteRosters {
		for _, u := range roster {
			remote[u] = true
		}
	}
	var out []string
	for u := range s.enrolled {
		if !s.staff[u] && !remote[u] {
			out = append(out, u)
		}
	}
	sort.Strings(out)
	return out
}

// MergeSection enrolls the section's remote roster. With unenrollCurrent,
// enrolled non-staff users missing from the roster are unenrolled.
func (s *Store) MergeSection(section string, unenrollCurrent bool) (enrolled, unenrolled int, err error) {
	if section == "" {
		return 0, 0, ErrNoSection
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	roster, ok := s.remoteRosters[section]
	if !ok {
		return 0, 0, fmt.Errorf("unknown section %q", section)
	}

	inRoster := make(map[string]bool, len(roster))
	for _, u := range roster {
		inRoster[u] = true
		if !s.enrolled[u] {
			s.enrolled[u] = true
			enrolled++
		}
	}
	if unenrollCurrent {
		for u := range s.enrolled {
			if !s.staff[u] && !inRoster[u] {
				delete(s.enrolled, u)
				unenrolled++
			}
		}
	}
	return enrolled, unenrolled, nil
}

func (s *Store) IsEnrolled(user string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enrolled[user]
}

// Grades lists the grades of an assignment sorted by username
func (s *Store) Grades(assignment string) ([][2]any, error) {
	if assignment == "" {
		return nil, ErrNoAssignment
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasAssignment(assignment) {
		return nil, fmt.Errorf("unknown assignment %q", assignment)
	}
	users := make([]string, 0, len(s.grades[assignment]))
	for u := range s.grades[assignment] {
		users = append(users, u)
	}
	sort.Strings(users)
	out := make([][2]any, len(users))
	for i, u := range users {
		out[i] = [2]any{u, s.grades[assignment][u]}
	}
	return out, nil
}

// ExportToRemote marks an assignment's grades as sent to the remote gradebook
func (s *Store) ExportToRemote(assignment string) (int, error) {
	if assignment == "" {
		return 0, ErrNoAssignment
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasAssignment(assignment) {
		return 0, fmt.Errorf("unknown assignment %q", assignment)
	}
	s.exported[assignment] = true
	return len(s.grades[assignment]), nil
}

func (s *Store) Exported(assignment string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exported[assignment]
}

func (s *Store) hasAssignment(name string) bool {
	for _, a := range s.assignments {
		if a.Name == name {
			return true
		}
	}
	return false
}
