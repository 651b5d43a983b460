package httpapi

import (
	"net/http"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/usecase"
)

type saveLineupRequest struct {
	TeamName     string   `json:"team_name" validate:"omitempty,max=60"`
	GoalkeeperID string   `json:"goalkeeper_id" validate:"required"`
	FixoID       string   `json:"fixo_id" validate:"required"`
	AlaIDs       []string `json:"ala_ids" validate:"required,len=2,dive,required"`
	PivoID       string   `json:"pivo_id" validate:"required"`
}

func (h *Handler) GetCurrentLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetCurrentLineup")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, exists, err := h.lineupService.GetCurrent(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get lineup failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(view))
}

func (h *Handler) SaveCurrentLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "SaveCurrentLineup")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveLineupRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.lineupService.Save(ctx, usecase.SaveLineupInput{
		UserID:       principal.UserID,
		TeamName:     req.TeamName,
		GoalkeeperID: req.GoalkeeperID,
		FixoID:       req.FixoID,
		AlaIDs:       req.AlaIDs,
		PivoID:       req.PivoID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save lineup failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(view))
}
