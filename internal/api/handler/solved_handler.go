package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"codetrack/internal/api/middleware"
	"codetrack/internal/app/service"
	"codetrack/internal/common"
	"codetrack/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type SolvedHandler struct {
	solvedService *service.SolvedService
}

func NewSolvedHandler(ss *service.SolvedService) *SolvedHandler {
	return &SolvedHandler{solvedService: ss}
}

func (h *SolvedHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/", h.recordSolve)
	r.Get("/", h.listSolved)
	r.Delete("/{solvedID}", h.deleteSolved)
}

func (h *SolvedHandler) recordSolve(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	var req service.RecordSolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	resp, err := h.solvedService.RecordSolve(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *SolvedHandler) listSolved(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	req := service.ListSolvedRequest{
		Tags:       splitCSV(q.Get("tags")),
		Difficulty: model.ProblemDifficulty(q.Get("difficulty")),
		Page:       page,
		Limit:      limit,
	}
	entries, total, err := h.solvedService.ListSolved(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, PaginatedResponse{
		Items: entries,
		Total: total,
		Page:  pageOrDefault(page),
		Limit: limitOrDefault(limit),
	})
}

func (h *SolvedHandler) deleteSolved(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	solvedID := chi.URLParam(r, "solvedID")
	if err := h.solvedService.DeleteSolved(r.Context(), userID, solvedID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}
