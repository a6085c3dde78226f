package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Validate checks request payloads against their struct tags.
var Validate = validator.New(validator.WithRequiredStructEnabled())

const maxBodyBytes = 1 << 20 // request bodies, not image uploads

func writeJson(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func readJson(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

func writeJsonError(w http.ResponseWriter, status int, message string) error {
	type envelope struct {
		Error string `json:"error"`
	}
	return writeJson(w, status, &envelope{Error: message})
}
