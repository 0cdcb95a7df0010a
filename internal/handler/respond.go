package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/DIEGUS15/readiego-book-recommender/internal/service"
)

// ErrorResponse cuerpo de error de la API.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError traduce errores del servicio a códigos HTTP.
func writeServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// queryTopN lee top_n; ausente o inválido da 0 y el servicio pone el default.
func queryTopN(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("top_n"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func queryRefresh(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	return v
}
