// Package i18n looks up user-facing panel strings. Keys are the literal
// English source strings, so an unknown language prints the key itself.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Source strings used by the panel
const (
	LoadingOptions     = " Loading options..."
	RequestFailed      = "Request failed."
	NoResults          = "No results."
	AssignmentRequired = "Assignment name must be specified."
	OverloadWarning    = "WARNING: This will unenroll non-staff users from the course.\n\n"
	Users              = "Users "
	SectionPrompt      = "Section: %s"
	Downloading        = "Downloading %s"
	Saved              = "Saved %s"
	ExportFailed       = "Export failed: %v"
	PagerFailed        = "Pager failed: %v"
)

var translations = map[language.Tag]map[string]string{
	language.Spanish: {
		LoadingOptions:     " Cargando opciones...",
		RequestFailed:      "La solicitud falló.",
		NoResults:          "Sin resultados.",
		AssignmentRequired: "Debe especificar el nombre de la tarea.",
		OverloadWarning:    "ADVERTENCIA: Esto dará de baja del curso a los usuarios que no son del personal.\n\n",
		Users:              "Usuarios ",
		SectionPrompt:      "Sección: %s",
		Downloading:        "Descargando %s",
		Saved:              "Guardado %s",
		ExportFailed:       "La exportación falló: %v",
		PagerFailed:        "El paginador falló: %v",
	},
}

// Catalog translates source strings for one language
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// New builds a catalog for lang. Unparseable tags fall back to English.
func New(lang string) *Catalog {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for t, entries := range translations {
		for key, msg := range entries {
			// SetString only fails on malformed messages; ours are literals.
			_ = b.SetString(t, key, msg)
		}
	}

	matcher := language.NewMatcher(append([]language.Tag{language.English}, b.Languages()...))
	_, idx, _ := matcher.Match(tag)
	supported := append([]language.Tag{language.English}, b.Languages()...)[idx]

	return &Catalog{
		tag:     supported,
		printer: message.NewPrinter(supported, message.Catalog(b)),
	}
}

// T returns the translation of key, or key itself when none exists
func (c *Catalog) T(key string) string {
	return c.printer.Sprintf(key)
}

// Tf translates key and formats it with args
func (c *Catalog) Tf(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}

// Language returns the language the catalog settled on
func (c *Catalog) Language() language.Tag {
	return c.tag
}
