package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/playerstats"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/usecase"
	"github.com/shopspring/decimal"
)

type createRoundRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

type recordStatisticRequest struct {
	PlayerID      string `json:"player_id" validate:"required"`
	Goals         int    `json:"goals" validate:"min=0"`
	Assists       int    `json:"assists" validate:"min=0"`
	ShotsOnTarget int    `json:"shots_on_target" validate:"min=0"`
	Saves         int    `json:"saves" validate:"min=0"`
	CleanSheet    bool   `json:"clean_sheet"`
	OwnGoals      int    `json:"own_goals" validate:"min=0"`
	YellowCards   int    `json:"yellow_cards" validate:"min=0,max=2"`
	RedCards      int    `json:"red_cards" validate:"min=0,max=1"`
	Fouls         int    `json:"fouls" validate:"min=0"`
}

type resetPricesRequest struct {
	Price string `json:"price" validate:"omitempty,numeric"`
}

func (h *Handler) CreateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CreateRound")
	defer span.End()

	var req createRoundRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.roundService.Create(ctx, usecase.CreateRoundInput{Name: req.Name})
	if err != nil {
		h.logger.WarnContext(ctx, "create round failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, roundToDTO(item))
}

func (h *Handler) OpenRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "OpenRound")
	defer span.End()

	roundID := pathValue(r, "roundID")
	item, err := h.roundService.Open(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "open round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundToDTO(item))
}

func (h *Handler) FinalizeRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "FinalizeRound")
	defer span.End()

	roundID := pathValue(r, "roundID")
	result, err := h.roundService.Finalize(ctx, roundID)
	if err != nil {
		if errors.Is(err, usecase.ErrStatisticsUnavailable) {
			h.logger.WarnContext(ctx, "finalize round skipped", "round_id", roundID, "error", err)
		} else {
			h.logger.ErrorContext(ctx, "finalize round failed", "round_id", roundID, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, finalizeToDTO(result))
}

func (h *Handler) RunRevaluation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RunRevaluation")
	defer span.End()

	roundID := pathValue(r, "roundID")
	result, err := h.revaluationService.Process(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "revaluation failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, revaluationToDTO(result))
}

func (h *Handler) RunReconciliation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RunReconciliation")
	defer span.End()

	roundID := pathValue(r, "roundID")
	result, err := h.portfolioService.Reconcile(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "reconciliation failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ResetBalances(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ResetBalances")
	defer span.End()

	count, err := h.roundService.ResetBalances(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reset balances failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int64{"users_updated": count})
}

func (h *Handler) RecordStatistic(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RecordStatistic")
	defer span.End()

	var req recordStatisticRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	roundID := pathValue(r, "roundID")
	item, err := h.statisticsService.Record(ctx, usecase.RecordStatisticInput{
		RoundID:  roundID,
		PlayerID: req.PlayerID,
		Scout: playerstats.Scout{
			Goals:         req.Goals,
			Assists:       req.Assists,
			ShotsOnTarget: req.ShotsOnTarget,
			Saves:         req.Saves,
			CleanSheet:    req.CleanSheet,
			OwnGoals:      req.OwnGoals,
			YellowCards:   req.YellowCards,
			RedCards:      req.RedCards,
			Fouls:         req.Fouls,
		},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record statistic failed", "round_id", roundID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, statisticToDTO(item))
}

func (h *Handler) ListStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListStatistics")
	defer span.End()

	roundID := pathValue(r, "roundID")
	items, err := h.statisticsService.ListByRound(ctx, roundID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]statisticDTO, 0, len(items))
	for _, item := range items {
		out = append(out, statisticToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ResetPrices(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ResetPrices")
	defer span.End()

	var req resetPricesRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var price *decimal.Decimal
	if req.Price != "" {
		parsed, err := decimal.NewFromString(req.Price)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: price: %v", usecase.ErrInvalidInput, err))
			return
		}
		price = &parsed
	}

	count, applied, err := h.playerService.ResetPrices(ctx, price)
	if err != nil {
		h.logger.ErrorContext(ctx, "reset prices failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"players_updated": count,
		"price":           money(applied),
	})
}
