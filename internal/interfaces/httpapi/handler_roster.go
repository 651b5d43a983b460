package httpapi

import (
	"fmt"
	"net/http"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/usecase"
	"github.com/shopspring/decimal"
)

type createTeamRequest struct {
	Name    string `json:"name" validate:"required,max=80"`
	LogoURL string `json:"logo_url" validate:"omitempty,url"`
}

type createPlayerRequest struct {
	TeamID   string `json:"team_id" validate:"required"`
	Name     string `json:"name" validate:"required,max=80"`
	Position string `json:"position" validate:"required,oneof=GOL FIX ALA PIV"`
	Price    string `json:"price" validate:"required,numeric"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CreateTeam")
	defer span.End()

	var req createTeamRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Create(ctx, usecase.CreateTeamInput{Name: req.Name, LogoURL: req.LogoURL})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "DeleteTeam")
	defer span.End()

	teamID := pathValue(r, "teamID")
	if err := h.teamService.Delete(ctx, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": teamID})
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: price: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.playerService.Create(ctx, usecase.CreatePlayerInput{
		TeamID:   req.TeamID,
		Name:     req.Name,
		Position: req.Position,
		Price:    price,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "DeletePlayer")
	defer span.End()

	playerID := pathValue(r, "playerID")
	if err := h.playerService.Delete(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": playerID})
}
