package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/DIEGUS15/readiego-book-recommender/internal/recommend"
	"github.com/DIEGUS15/readiego-book-recommender/internal/service"
)

type RecommendHandler struct {
	svc    *service.RecommendService
	logger zerolog.Logger
}

//nolint:gocritic // zerolog.Logger is passed by value
func NewRecommendHandler(s *service.RecommendService, logger zerolog.Logger) *RecommendHandler {
	return &RecommendHandler{svc: s, logger: logger.With().Str("component", "recommend_handler").Logger()}
}

// @Summary Recomendaciones para un usuario
// @Description Filtrado colaborativo con similitud de Jaccard entre usuarios.
// @Tags recommend
// @Produce json
// @Param id path string true "user id"
// @Param top_n query int false "cantidad de recomendaciones (default 10, máx MAX_TOP_N)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} service.UserRecommendations
// @Failure 500 {object} ErrorResponse
// @Router /api/recommend/user/{id} [get]
func (h *RecommendHandler) GetUserRecommendations(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.RecommendForUser(r.Context(), service.UserRequest{
		UserID:  chi.URLParam(r, "id"),
		TopN:    queryTopN(r),
		Refresh: queryRefresh(r),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// @Summary Libros similares
// @Description Similitud de Jaccard entre los conjuntos de lectores de cada libro.
// @Tags recommend
// @Produce json
// @Param isbn path string true "ISBN"
// @Param top_n query int false "cantidad de libros (default 10, máx MAX_TOP_N)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} service.SimilarBooks
// @Failure 500 {object} ErrorResponse
// @Router /api/recommend/book/{isbn} [get]
func (h *RecommendHandler) GetSimilarBooks(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.SimilarBooks(r.Context(), service.BookRequest{
		BookID:  chi.URLParam(r, "isbn"),
		TopN:    queryTopN(r),
		Refresh: queryRefresh(r),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// @Summary Explicar una recomendación
// @Description Aporte de cada vecino al score de un libro para el usuario.
// @Tags recommend
// @Produce json
// @Param id path string true "user id"
// @Param isbn path string true "ISBN"
// @Success 200 {object} models.Explanation
// @Failure 500 {object} ErrorResponse
// @Router /api/recommend/user/{id}/explain/{isbn} [get]
func (h *RecommendHandler) GetExplanation(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Explain(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "isbn"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// SimilarUsersResponse vecindario de un usuario.
type SimilarUsersResponse struct {
	UserID       string                     `json:"user_id"`
	SimilarUsers []recommend.UserSimilarity `json:"similar_users"`
}

// @Summary Usuarios similares
// @Tags recommend
// @Produce json
// @Param id path string true "user id"
// @Param top_n query int false "cantidad de usuarios (default 10)"
// @Success 200 {object} SimilarUsersResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/user/{id}/similar [get]
func (h *RecommendHandler) GetSimilarUsers(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	users, err := h.svc.SimilarUsers(r.Context(), userID, queryTopN(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SimilarUsersResponse{UserID: userID, SimilarUsers: users})
}

// @Summary Historial de recomendaciones
// @Description Últimas recomendaciones servidas al usuario. Requiere MONGO_URI.
// @Tags recommend
// @Produce json
// @Param id path string true "user id"
// @Param limit query int false "máximo de entradas (default y máx 50)"
// @Success 200 {array} models.History
// @Failure 503 {object} ErrorResponse
// @Router /api/user/{id}/history [get]
func (h *RecommendHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	items, err := h.svc.RecentHistory(r.Context(), chi.URLParam(r, "id"), limit)
	if errors.Is(err, service.ErrHistoryDisabled) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ====== WebSocket ======

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsFrame mensaje enviado por el socket de recomendaciones.
type wsFrame struct {
	Type        string     `json:"type"`
	Msg         string     `json:"msg,omitempty"`
	UserID      string     `json:"user_id,omitempty"`
	Neighbors   any        `json:"neighbors,omitempty"`
	Items       any        `json:"items,omitempty"`
	Error       string     `json:"error,omitempty"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
}

// @Summary Recomendaciones en tiempo real (WebSocket)
// @Description Envía frames start, progress (vecinos encontrados) y recommendations o error.
// @Tags recommend
// @Produce json
// @Param id path string true "user id"
// @Param top_n query int false "cantidad de recomendaciones"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 101 {object} wsFrame
// @Router /api/ws/recommend/user/{id} [get]
func (h *RecommendHandler) GetUserRecommendationsWS(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	topN := queryTopN(r)
	refresh := queryRefresh(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió al cliente
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	send := func(f wsFrame) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(f); err != nil {
			h.logger.Debug().Err(err).Str("user_id", userID).Msg("websocket write failed")
			return false
		}
		return true
	}

	if !send(wsFrame{Type: "start", UserID: userID, Msg: "computing recommendations"}) {
		return
	}

	ctx := r.Context()
	neighbors, err := h.svc.Neighbors(ctx, userID)
	if err != nil {
		send(wsFrame{Type: "error", Error: err.Error()})
		return
	}
	if !send(wsFrame{Type: "progress", UserID: userID, Msg: "similar users found", Neighbors: neighbors}) {
		return
	}

	out, err := h.svc.RecommendForUser(ctx, service.UserRequest{UserID: userID, TopN: topN, Refresh: refresh})
	if err != nil {
		send(wsFrame{Type: "error", Error: err.Error()})
		return
	}

	now := time.Now().UTC()
	send(wsFrame{Type: "recommendations", UserID: userID, Items: out.Recommendations, GeneratedAt: &now})
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
}
