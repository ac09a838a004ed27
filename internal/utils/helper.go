package utils

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
)

var nonTagRegex = regexp.MustCompile(`[\s_]+`)

// Slugify lower-cases s and joins words with dashes: "FAST FOOD" -> "fast-food".
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonTagRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func WriteJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]interface{}{"success": false, "error": message})
}
