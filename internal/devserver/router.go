package devserver

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gradebook/internal/config"
)

// NewRouter serves store at the paths in ep
func NewRouter(store *Store, ep config.Endpoints, log logrus.FieldLogger) *gin.Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	h := NewHandler(store, log)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.POST(ep.SectionNames, h.SectionNames)
	router.POST(ep.AssignmentNames, h.AssignmentNames)
	router.POST(ep.ListRemoteEnrolledStudents, h.ListRemoteEnrolledStudents)
	router.POST(ep.ListRemoteStudentsInSection, h.ListRemoteStudentsInSection)
	router.POST(ep.MergeEnrolledStudentsInSection, h.MergeEnrolledStudentsInSection)
	router.POST(ep.OverloadEnrolledStudentsInSection, h.MergeEnrolledStudentsInSection)
	router.POST(ep.OverloadEnrolledUsers, h.EnrolledNonRemoteUsers)
	router.POST(ep.ListRemoteAssignments, h.ListRemoteAssignments)
	router.POST(ep.ListCourseAssignments, h.ListCourseAssignments)
	router.POST(ep.DisplayAssignmentGrades, h.DisplayAssignmentGrades)
	router.POST(ep.ExportAssignmentGradesToRG, h.ExportAssignmentGradesToRG)
	router.GET(ep.ExportAssignmentGradesCSV, h.ExportAssignmentGradesCSV)

	return router
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start),
			"request_id": c.GetHeader("X-Request-ID"),
		}).Info("request served")
	}
}
