// Package server exposes the engine over HTTP. Authentication is external:
// requests arrive with an already-verified user identifier in the X-User-ID
// header.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/user/hunter-idle/internal/engine"
	"github.com/user/hunter-idle/internal/types"
)

const userHeader = "X-User-ID"

// actionRequest is the union of every mutating request body. Each action
// reads only the fields it needs; clientTransactionId is mandatory and
// client-generated before the request so retries are idempotent.
type actionRequest struct {
	ClientTransactionID string   `json:"clientTransactionId"`
	Resource            string   `json:"resource,omitempty"`
	BuildingID          string   `json:"buildingId,omitempty"`
	Quantity            int      `json:"quantity,omitempty"`
	Stat                string   `json:"stat,omitempty"`
	ResearchID          string   `json:"researchId,omitempty"`
	DungeonID           string   `json:"dungeonId,omitempty"`
	PartyMemberIDs      []string `json:"partyMemberIds,omitempty"`
	RunID               string   `json:"runId,omitempty"`
	Name                string   `json:"name,omitempty"`
	Rank                string   `json:"rank,omitempty"`
	ArtifactID          string   `json:"artifactId,omitempty"`
	ItemID              string   `json:"itemId,omitempty"`
}

type actionResponse struct {
	Success bool                 `json:"success"`
	State   *types.StateSnapshot `json:"state,omitempty"`
	Error   string               `json:"error,omitempty"`
	Missing types.ResourceMap    `json:"missing,omitempty"`
}

// Handler serves the game API.
type Handler struct {
	processor *engine.Processor
	logger    *zap.Logger
}

// NewHandler creates the HTTP handler over a transaction processor.
func NewHandler(processor *engine.Processor, logger *zap.Logger) *Handler {
	return &Handler{
		processor: processor,
		logger:    logger,
	}
}

// Router builds the chi router with the standard middleware stack.
func (h *Handler) Router() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	router.Get("/api/state", h.handleGetState)
	router.Post("/api/actions/{action}", h.handleAction)

	return router
}

func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(userHeader)
	if userID == "" {
		http.Error(w, "missing "+userHeader+" header", http.StatusUnauthorized)
		return
	}

	snap, err := h.processor.GetState(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load state",
			zap.String("user_id", userID),
			zap.Error(err))
		http.Error(w, "failed to load state", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, actionResponse{Success: true, State: snap})
}

func (h *Handler) handleAction(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(userHeader)
	if userID == "" {
		http.Error(w, "missing "+userHeader+" header", http.StatusUnauthorized)
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, actionResponse{Error: "invalid request body"})
		return
	}

	ctx := r.Context()
	txID := req.ClientTransactionID

	var result engine.Result
	switch chi.URLParam(r, "action") {
	case engine.ActionGatherResource:
		result = h.processor.GatherResource(ctx, userID, txID, req.Resource)
	case engine.ActionPurchaseBuilding:
		result = h.processor.PurchaseBuilding(ctx, userID, txID, req.BuildingID)
	case engine.ActionPurchaseBulkBuilding:
		result = h.processor.PurchaseBulkBuilding(ctx, userID, txID, req.BuildingID, req.Quantity)
	case engine.ActionAllocateStat:
		result = h.processor.AllocateStat(ctx, userID, txID, req.Stat)
	case engine.ActionPurchaseResearch:
		result = h.processor.PurchaseResearch(ctx, userID, txID, req.ResearchID)
	case engine.ActionStartDungeon:
		result = h.processor.StartDungeon(ctx, userID, txID, req.DungeonID, req.PartyMemberIDs)
	case engine.ActionCompleteDungeon:
		result = h.processor.CompleteDungeon(ctx, userID, txID, req.RunID)
	case engine.ActionCancelDungeon:
		result = h.processor.CancelDungeon(ctx, userID, txID, req.RunID)
	case engine.ActionRecruitAlly:
		result = h.processor.RecruitAlly(ctx, userID, txID, req.Name, req.Rank)
	case engine.ActionExtractShadow:
		result = h.processor.ExtractShadow(ctx, userID, txID, req.Name, req.DungeonID)
	case engine.ActionCraftItem:
		result = h.processor.CraftItem(ctx, userID, txID, req.ArtifactID)
	case engine.ActionEquipItem:
		result = h.processor.EquipItem(ctx, userID, txID, req.ItemID)
	case engine.ActionUpgradeItem:
		result = h.processor.UpgradeItem(ctx, userID, txID, req.ItemID)
	case engine.ActionResetGame:
		result = h.processor.ResetGame(ctx, userID, txID)
	default:
		writeJSON(w, http.StatusNotFound, actionResponse{Error: "unknown action"})
		return
	}

	h.writeResult(w, result)
}

func (h *Handler) writeResult(w http.ResponseWriter, result engine.Result) {
	if result.Success {
		writeJSON(w, http.StatusOK, actionResponse{Success: true, State: result.State})
		return
	}

	resp := actionResponse{
		State: result.State,
	}
	status := http.StatusBadRequest
	if result.Err != nil {
		resp.Error = result.Err.Message
		resp.Missing = result.Err.Missing
		switch result.Err.Kind {
		case engine.KindNotFound:
			status = http.StatusNotFound
		case engine.KindConflict:
			status = http.StatusConflict
		case engine.KindInternal:
			status = http.StatusInternalServerError
		}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
