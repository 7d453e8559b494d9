// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/menuroulette/internal/funnel"
	"github.com/tomtom215/menuroulette/internal/preferences"
)

// apiErrorSpec is how a domain error is presented over HTTP.
type apiErrorSpec struct {
	status  int
	code    string
	message string
}

// funnelErrors is checked in order with errors.Is.
var funnelErrors = []struct {
	target error
	spec   apiErrorSpec
}{
	{funnel.ErrSessionNotFound, apiErrorSpec{http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found or expired"}},
	{funnel.ErrClosed, apiErrorSpec{http.StatusNotFound, "SESSION_NOT_FOUND", "Session has been closed"}},
	{funnel.ErrUnknownCategory, apiErrorSpec{http.StatusNotFound, "CATEGORY_NOT_FOUND", "Unknown category"}},
	{funnel.ErrUnknownMood, apiErrorSpec{http.StatusNotFound, "MOOD_NOT_FOUND", "Unknown mood"}},
	{funnel.ErrUnknownDiet, apiErrorSpec{http.StatusNotFound, "DIET_NOT_FOUND", "Unknown diet restriction"}},
	{funnel.ErrInvalidEvent, apiErrorSpec{http.StatusBadRequest, "INVALID_EVENT", "Event is not valid at the current step"}},
	{funnel.ErrInvalidPeople, apiErrorSpec{http.StatusBadRequest, "INVALID_PEOPLE", "People count is out of range"}},
	{funnel.ErrNothingSelected, apiErrorSpec{http.StatusConflict, "NOTHING_SELECTED", "Select at least one category first"}},
	{funnel.ErrNoCandidates, apiErrorSpec{http.StatusConflict, "NO_CANDIDATES", "No category survives the current filters"}},
	{funnel.ErrAlreadySpinning, apiErrorSpec{http.StatusConflict, "ALREADY_SPINNING", "The roulette has already been spun"}},
	{preferences.ErrPersist, apiErrorSpec{http.StatusInternalServerError, "PERSIST_ERROR", "Change applied but could not be saved"}},
}

// specFor maps err to a status and code. Unknown errors are 500.
func specFor(err error) apiErrorSpec {
	for _, fe := range funnelErrors {
		if errors.Is(err, fe.target) {
			return fe.spec
		}
	}
	return apiErrorSpec{http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"}
}

// respondDomainError writes the envelope for err.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	spec := specFor(err)
	respondError(w, r, spec.status, spec.code, spec.message, err)
}
