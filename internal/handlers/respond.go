package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ncfqr/internal/models"
)

func writeJSONResp(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// maxBodyBytes caps JSON request bodies. A form is a handful of short
// strings, far below this.
const maxBodyBytes = 64 << 10

// decodeBody reads a JSON body into dst. On failure it writes the error
// response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSONResp(w, http.StatusRequestEntityTooLarge, map[string]any{"error": "request body too large"})
		return false
	}
	writeJSONResp(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
	return false
}

type artifactResp struct {
	Record   models.StudentRecord `json:"record"`
	DataURI  string               `json:"data_uri"`
	Filename string               `json:"filename"`
}

func newArtifactResp(a *models.Artifact) *artifactResp {
	if a == nil {
		return nil
	}
	return &artifactResp{Record: a.Record, DataURI: a.DataURI(), Filename: a.Filename}
}
