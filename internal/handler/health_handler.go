package handler

import (
	"net/http"

	"github.com/DIEGUS15/readiego-book-recommender/internal/models"
	"github.com/DIEGUS15/readiego-book-recommender/internal/service"
)

type HealthHandler struct {
	svc *service.RecommendService
}

func NewHealthHandler(s *service.RecommendService) *HealthHandler {
	return &HealthHandler{svc: s}
}

// IndexResponse describe la API.
type IndexResponse struct {
	Message   string            `json:"message"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// HealthResponse estado y tamaño del grafo.
type HealthResponse struct {
	Status string       `json:"status"`
	Stats  models.Stats `json:"stats"`
}

// @Summary Índice de endpoints
// @Tags health
// @Produce json
// @Success 200 {object} IndexResponse
// @Router / [get]
func (h *HealthHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, IndexResponse{
		Message: "Readiego book recommender API",
		Status:  "running",
		Endpoints: map[string]string{
			"health":         "/api/health",
			"recommend_user": "/api/recommend/user/{user_id}",
			"recommend_book": "/api/recommend/book/{isbn}",
			"explain":        "/api/recommend/user/{user_id}/explain/{isbn}",
			"similar_users":  "/api/user/{user_id}/similar",
			"book_info":      "/api/book/{isbn}",
			"user_info":      "/api/user/{user_id}",
			"user_books":     "/api/user/{user_id}/books",
			"user_history":   "/api/user/{user_id}/history",
			"sample_users":   "/api/debug/sample-users",
			"ws_recommend":   "/api/ws/recommend/user/{user_id}",
		},
	})
}

// @Summary Healthcheck
// @Description Devuelve el estado del servicio y las estadísticas del grafo.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Stats: h.svc.Stats()})
}
