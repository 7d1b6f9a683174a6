package api

import (
	"errors"
	"log"
	"net/http"

	"cover-photo/assets"
	"cover-photo/compose"
	"cover-photo/export"
	"cover-photo/feedback"
	"cover-photo/preset"
	"cover-photo/session"
)

// httpStatus maps domain errors to response codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, assets.ErrNotFound),
		errors.Is(err, compose.ErrUnknownElement):
		return http.StatusNotFound
	case errors.Is(err, feedback.ErrInFlight):
		return http.StatusConflict
	case errors.Is(err, export.ErrUnsupportedFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, export.ErrCapture),
		errors.Is(err, feedback.ErrSend):
		return http.StatusBadGateway
	case errors.Is(err, compose.ErrInvalidColor),
		errors.Is(err, compose.ErrInvalidFont),
		errors.Is(err, compose.ErrInvalidValue),
		errors.Is(err, feedback.ErrTooShort),
		errors.Is(err, export.ErrUnknownFormat),
		errors.Is(err, assets.ErrNotImage),
		errors.Is(err, preset.ErrEmptyTable),
		errors.Is(err, preset.ErrBadOrder),
		errors.Is(err, session.ErrInvalidWidth):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := httpStatus(err)
	if code == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		http.Error(w, "internal error", code)
		return
	}
	http.Error(w, err.Error(), code)
}
