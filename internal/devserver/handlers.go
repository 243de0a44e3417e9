package devserver

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PreflightSample is the most users listed in a pre-flight answer
const PreflightSample = 10

// Handler serves the remote gradebook endpoints from a Store
type Handler struct {
	Store *Store
	Log   logrus.FieldLogger
}

// NewHandler creates a new Handler
func NewHandler(store *Store, log logrus.FieldLogger) *Handler {
	return &Handler{Store: store, Log: log}
}

type datatable struct {
	Title  string  `json:"title"`
	Header []any   `json:"header"`
	Data   [][]any `json:"data"`
}

func fail(c *gin.Context, err error) {
	c.JSON(http.StatusOK, gin.H{"errors": err.Error()})
}

// table answers with a datatable, or an empty object when there are no rows
func table(c *gin.Context, dt datatable) {
	if len(dt.Data) == 0 {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, gin.H{"datatable": dt})
}

// SectionNames handles POST section_names
func (h *Handler) SectionNames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"errors": "", "data": h.Store.Sections()})
}

// AssignmentNames handles POST assignment_names
func (h *Handler) AssignmentNames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"errors": "", "data": h.Store.AssignmentNames()})
}

func (h *Handler) ListRemoteEnrolledStudents(c *gin.Context) {
	dt := datatable{Title: "Enrolled students in remote gradebook", Header: []any{"Student", "Section"}}
	for _, row := range h.Store.RemoteEnrolled() {
		dt.Data = append(dt.Data, []any{row[0], row[1]})
	}
	table(c, dt)
}

func (h *Handler) ListRemoteStudentsInSection(c *gin.Context) {
	section := c.PostForm("section_name")
	roster, err := h.Store.Roster(section)
	if err != nil {
		fail(c, err)
		return
	}
	dt := datatable{Title: "Students in " + section, Header: []any{"Student", "Enrolled"}}
	for _, u := range roster {
		dt.Data = append(dt.Data, []any{u, h.Store.IsEnrolled(u)})
	}
	table(c, dt)
}

// MergeEnrolledStudentsInSection handles both the merge and the overload
// endpoint; they differ only in the unenroll_current flag the client sends.
func (h *Handler) MergeEnrolledStudentsInSection(c *gin.Context) {
	unenroll, err := strconv.ParseBool(c.DefaultPostForm("unenroll_current", "false"))
	if err != nil {
		fail(c, fmt.Errorf("invalid unenroll_current: %w", err))
		return
	}
	section := c.PostForm("section_name")
	enrolled, unenrolled, err := h.Store.MergeSection(section, unenroll)
	if err != nil {
		fail(c, err)
		return
	}
	h.Log.WithFields(logrus.Fields{
		"section":    section,
		"enrolled":   enrolled,
		"unenrolled": unenrolled,
	}).Info("section merged")
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Enrolled %d and unenrolled %d students from %s.", enrolled, unenrolled, section),
	})
}

// EnrolledNonRemoteUsers handles the overload pre-flight
func (h *Handler) EnrolledNonRemoteUsers(c *gin.Context) {
	users := h.Store.NonRemoteUsers()
	sample := users
	if len(sample) > PreflightSample {
		sample = sample[:PreflightSample]
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": sample})
}

func (h *Handler) ListRemoteAssignments(c *gin.Context) {
	dt := datatable{Title: "Remote gradebook assignments", Header: []any{"Assignment"}}
	for _, name := range h.Store.RemoteAssignments() {
		dt.Data = append(dt.Data, []any{name})
	}
	table(c, dt)
}

func (h *Handler) ListCourseAssignments(c *gin.Context) {
	dt := datatable{Title: "Course assignments", Header: []any{"Assignment", "Points"}}
	for _, a := range h.Store.Assignments() {
		dt.Data = append(dt.Data, []any{a.Name, a.Points})
	}
	table(c, dt)
}

func (h *Handler) DisplayAssignmentGrades(c *gin.Context) {
	name := c.PostForm("assignment_name")
	grades, err := h.Store.Grades(name)
	if err != nil {
		fail(c, err)
		return
	}
	dt := datatable{Title: "Grades for " + name, Header: []any{"Student", "Grade"}}
	for _, g := range grades {
		dt.Data = append(dt.Data, []any{g[0], g[1]})
	}
	table(c, dt)
}

func (h *Handler) ExportAssignmentGradesToRG(c *gin.Context) {
	name := c.PostForm("assignment_name")
	n, err := h.Store.ExportToRemote(name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Exported %d grades for %s to the remote gradebook.", n, name)})
}

// ExportAssignmentGradesCSV handles the GET download of a grade sheet
func (h *Handler) ExportAssignmentGradesCSV(c *gin.Context) {
	name := c.Query("assignment_name")
	grades, err := h.Store.Grades(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": err.Error()})
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"student", "grade"})
	for _, g := range grades {
		_ = w.Write([]string{fmt.Sprint(g[0]), fmt.Sprint(g[1])})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": err.Error()})
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": name + "_grades.csv",
	}))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
