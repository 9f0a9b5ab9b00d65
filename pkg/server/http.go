package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any, maxBytes int64) (int, error) {
	if r == nil || r.Body == nil {
		return http.StatusBadRequest, fmt.Errorf("request body required")
	}
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return http.StatusRequestEntityTooLarge,
				fmt.Errorf("request body too large (max %d bytes)", maxBytes)
		}
		return http.StatusBadRequest, err
	}
	return 0, nil
}

func respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	response := struct {
		Error  string `json:"error"`
		Status int    `json:"status"`
	}{
		Error:  err.Error(),
		Status: status,
	}
	_ = json.NewEncoder(w).Encode(response)
}
