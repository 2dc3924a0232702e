package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"learnhub/internal/api/v1/dto"
	"learnhub/internal/service"
	"learnhub/internal/storage"

	"github.com/rs/zerolog"
)

const maxFormMemory = 32 << 20

func writeJSON(w http.ResponseWriter, status int, body dto.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, dto.Envelope{Success: true, Data: data, Message: message})
}

// writeError maps a service error onto the envelope. Unexpected failures are
// reported with fallback as the message and the raw error as detail.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error, fallback string) {
	status := service.StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg(fallback)
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("Request rejected")
	}
	body := dto.Envelope{Success: false, Message: service.PublicMessage(err, fallback)}
	if status == http.StatusInternalServerError || status == http.StatusBadRequest {
		body.Error = err.Error()
	}
	writeJSON(w, status, body)
}

func writeFail(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, dto.Envelope{Success: false, Message: message, Error: detail})
}

// formFile reads an optional file field of a parsed multipart form. The returned
// close func is never nil.
func formFile(r *http.Request, field string) (*storage.File, func(), error) {
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}
	return &storage.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        f,
	}, func() { f.Close() }, nil
}

// formValue returns a multipart field and whether it was sent at all.
func formValue(r *http.Request, field string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	v, ok := r.MultipartForm.Value[field]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}
