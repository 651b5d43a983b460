package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/usecase"
	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
)

const maxRequestBody = 1 << 20

type Handler struct {
	playerService      *usecase.PlayerService
	teamService        *usecase.TeamService
	roundService       *usecase.RoundService
	revaluationService *usecase.RevaluationService
	portfolioService   *usecase.PortfolioService
	statisticsService  *usecase.StatisticsService
	lineupService      *usecase.LineupService
	reportService      *usecase.ValuationReportService
	dashboardService   *usecase.DashboardService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	roundService *usecase.RoundService,
	revaluationService *usecase.RevaluationService,
	portfolioService *usecase.PortfolioService,
	statisticsService *usecase.StatisticsService,
	lineupService *usecase.LineupService,
	reportService *usecase.ValuationReportService,
	dashboardService *usecase.DashboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:      playerService,
		teamService:        teamService,
		roundService:       roundService,
		revaluationService: revaluationService,
		portfolioService:   portfolioService,
		statisticsService:  statisticsService,
		lineupService:      lineupService,
		reportService:      reportService,
		dashboardService:   dashboardService,
		logger:             logger,
		validator:          validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

// decodeJSON rejects unknown fields. allowEmpty lets an empty body through
// for endpoints whose payload is optional.
func decodeJSON(r *http.Request, out any, allowEmpty bool) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := strictJSON.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func queryLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput)
	}
	return limit, nil
}

func pathValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}
