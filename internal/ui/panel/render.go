package panel

import (
	"gradebook/internal/domain"
	"gradebook/internal/i18n"
)

// showResults fills the results region and clears the errors region
func showResults(st *State, text string) {
	st.Results = text
	st.Errors = ""
}

// showErrors fills the errors region and clears the results region
func showErrors(st *State, text string) {
	st.Results = ""
	st.Errors = text
}

// clearRegions empties both regions, as activating the panel title does
func clearRegions(st *State) {
	st.Results = ""
	st.Errors = ""
}

// renderResponse applies the precedence empty > errors > datatable > message
// and returns the outcome it rendered.
func renderResponse(st *State, deps Deps, resp domain.ActionResponse) string {
	switch {
	case resp.Empty:
		// Empty results deliberately share the errors region.
		showErrors(st, deps.Translator.T(i18n.NoResults))
		return domain.OutcomeNoResults
	case resp.Errors != "":
		showErrors(st, resp.Errors)
		return domain.OutcomeErrors
	case resp.Datatable != nil:
		table, err := deps.Templater.Render(resp.Datatable)
		if err != nil {
			deps.log().WithError(err).Warn("datatable could not be rendered")
			showErrors(st, deps.Translator.T(i18n.RequestFailed))
			return domain.OutcomeFailed
		}
		showResults(st, table)
		return domain.OutcomeDatatable
	default:
		showResults(st, resp.Message)
		return domain.OutcomeMessage
	}
}
