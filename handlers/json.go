package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"agrocost/services"
)

// errorJSON writes a JSON error body with the given status code.
func errorJSON(e *core.RequestEvent, statusCode int, message string) error {
	return e.JSON(statusCode, map[string]string{"error": message})
}

// noDataError maps services.ErrNoData to the 409 response every
// table-dependent route shares; other errors get a 500.
func noDataError(e *core.RequestEvent, err error) error {
	if errors.Is(err, services.ErrNoData) {
		return errorJSON(e, http.StatusConflict, "no quotation data loaded")
	}
	return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
