package httpapi

import (
	"encoding/json"
	"net/http"

	"todo-api/internal/todo"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStatus answers 200 {"status": msg}.
func writeStatus(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"status": msg})
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields []todo.FieldError `json:"fields"`
}

func writeValidationError(w http.ResponseWriter, ve *todo.ValidationError) {
	writeJSON(w, http.StatusBadRequest, validationResponse{Error: "validation failed", Fields: ve.Fields})
}
