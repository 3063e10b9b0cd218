package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const requestTimeoutMessage = "Request failed"

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// queryInt parses an optional integer query parameter. Missing or malformed
// values yield (nil, false) and (nil, true) respectively.
func queryInt(r *http.Request, key string) (*int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// queryIntDefault parses an integer query parameter, falling back to def
// when missing or malformed.
func queryIntDefault(r *http.Request, key string, def int) int {
	v, ok := queryInt(r, key)
	if !ok || v == nil {
		return def
	}
	return *v
}
