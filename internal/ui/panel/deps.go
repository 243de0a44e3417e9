package panel

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"gradebook/internal/domain"
	"gradebook/internal/eventbus"
)

// Backend issues the panel's asynchronous requests
type Backend interface {
	Post(ctx context.Context, endpoint string, data domain.RequestData) ([]byte, error)
}

// Navigator follows a file-download link and returns where the file went
type Navigator interface {
	Navigate(ctx context.Context, target string) (string, error)
}

// Templater turns a datatable payload into renderable text. The payload
// schema belongs to the templater; the panel only passes it through.
type Templater interface {
	Render(datatable json.RawMessage) (string, error)
}

// Translator looks up a user-facing string by its English source text
type Translator interface {
	T(key string) string
	Tf(key string, args ...any) string
}

// Deps are the collaborators a panel is mounted with. Bus and Logger are optional.
type Deps struct {
	Backend    Backend
	Navigator  Navigator
	Templater  Templater
	Translator Translator
	Bus        eventbus.EventBus
	Logger     logrus.FieldLogger
}

func (d Deps) publish(e domain.DomainEvent) {
	if d.Bus != nil {
		d.Bus.Publish(e)
	}
}

func (d Deps) log() logrus.FieldLogger {
	if d.Logger == nil {
		return logrus.StandardLogger()
	}
	return d.Logger
}
