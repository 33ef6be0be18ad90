package http

import (
	"encoding/json"
	"net/http"

	"leaf-and-fork/internal/domain"
	"leaf-and-fork/internal/interfaces"

	"go.uber.org/zap"
)

// OperatorHandler serves the kitchen context: the work queue and the
// status-advance operation.
type OperatorHandler struct {
	lifecycle interfaces.LifecycleService
	tracking  interfaces.TrackingService
	logger    *zap.Logger
}

func NewOperatorHandler(lifecycle interfaces.LifecycleService, tracking interfaces.TrackingService, logger *zap.Logger) *OperatorHandler {
	return &OperatorHandler{
		lifecycle: lifecycle,
		tracking:  tracking,
		logger:    logger,
	}
}

func (h *OperatorHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	filter := interfaces.QueueFilter{
		Status: domain.Status(r.URL.Query().Get("status")),
		Query:  r.URL.Query().Get("q"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "unknown status filter"})
		return
	}

	queue, err := h.tracking.OperatorQueue(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponses(queue))
}

type AdvanceRequest struct {
	// ExpectedStatus is the status the operator last observed; the
	// advance is rejected with 409 if the stored status moved on.
	ExpectedStatus string `json:"expected_status"`
}

func (h *OperatorHandler) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	var req AdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	expected := domain.Status(req.ExpectedStatus)
	if !expected.Valid() {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "unknown expected_status"})
		return
	}

	order, err := h.lifecycle.Advance(r.Context(), r.PathValue("id"), expected)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(order))
}
