package httpapi

import "net/http"

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListPlayers")
	defer span.End()

	items, err := h.playerService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerListingToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetPlayerPriceHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetPlayerPriceHistory")
	defer span.End()

	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := pathValue(r, "playerID")
	items, err := h.reportService.PlayerHistory(ctx, playerID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get player price history failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]priceHistoryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, priceHistoryToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListRounds")
	defer span.End()

	items, err := h.roundService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list rounds failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]roundDTO, 0, len(items))
	for _, item := range items {
		out = append(out, roundToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetRound")
	defer span.End()

	roundID := pathValue(r, "roundID")
	item, err := h.roundService.Get(ctx, roundID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundToDTO(item))
}

func (h *Handler) GetRoundValuation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetRoundValuation")
	defer span.End()

	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roundID := pathValue(r, "roundID")
	report, err := h.reportService.TopMovers(ctx, roundID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get round valuation failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, moversReportDTO{
		RoundID: report.RoundID,
		Gainers: moversToDTO(report.Gainers),
		Losers:  moversToDTO(report.Losers),
	})
}

func (h *Handler) ExportRoundValuation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ExportRoundValuation")
	defer span.End()

	roundID := pathValue(r, "roundID")
	body, err := h.reportService.ExportRoundCSV(ctx, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "export round valuation failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeCSV(ctx, w, "valuation-"+roundID+".csv", body)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListTeams")
	defer span.End()

	items, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetRanking")
	defer span.End()

	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.dashboardService.Ranking(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "get ranking failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]rankingEntryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, rankingEntryDTO{
			Position:    item.Position,
			UserID:      item.UserID,
			TeamName:    item.TeamName,
			TotalPoints: money(item.TotalPoints),
			Balance:     money(item.Balance),
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
