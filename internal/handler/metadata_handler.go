package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DIEGUS15/readiego-book-recommender/internal/service"
)

// MetadataHandler expone libros, usuarios y datos de debug.
type MetadataHandler struct {
	svc *service.RecommendService
}

func NewMetadataHandler(s *service.RecommendService) *MetadataHandler {
	return &MetadataHandler{svc: s}
}

// @Summary Información de un libro
// @Tags books
// @Produce json
// @Param isbn path string true "ISBN"
// @Success 200 {object} models.Book
// @Failure 404 {object} ErrorResponse
// @Router /api/book/{isbn} [get]
func (h *MetadataHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Book(r.Context(), chi.URLParam(r, "isbn"))
	if err != nil {
		writeServiceError(w, err, "book not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// @Summary Información de un usuario
// @Tags users
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} models.User
// @Failure 404 {object} ErrorResponse
// @Router /api/user/{id} [get]
func (h *MetadataHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.User(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// @Summary Libros calificados por un usuario
// @Description Ordenados por calificación descendente.
// @Tags users
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} service.UserBooks
// @Failure 500 {object} ErrorResponse
// @Router /api/user/{id}/books [get]
func (h *MetadataHandler) GetUserBooks(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.UserBooks(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// @Summary Usuarios de ejemplo
// @Description Hasta 20 usuarios con al menos 3 libros calificados, para probar la API.
// @Tags debug
// @Produce json
// @Success 200 {object} service.SampleUsers
// @Router /api/debug/sample-users [get]
func (h *MetadataHandler) GetSampleUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.SampleUsers())
}
