package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/round"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/user"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/id"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/platform/logging"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

type finalizeStep string

const (
	finalizeStepRevaluation    finalizeStep = "revaluation"
	finalizeStepReconciliation finalizeStep = "reconciliation"
	finalizeStepMarkFinished   finalizeStep = "mark_finished"
	finalizeStepResetBalances  finalizeStep = "reset_balances"
)

type CreateRoundInput struct {
	Name string
}

type FinalizeResult struct {
	RoundID         string            `json:"round_id"`
	Status          round.Status      `json:"status"`
	Revaluation     RevaluationResult `json:"revaluation"`
	Reconciliation  ReconcileResult   `json:"reconciliation"`
	BalancesReset   int64             `json:"balances_reset"`
	StartingBalance decimal.Decimal   `json:"starting_balance"`
}

type roundProcessor interface {
	Process(ctx context.Context, roundID string) (RevaluationResult, error)
}

type roundReconciler interface {
	Reconcile(ctx context.Context, roundID string) (ReconcileResult, error)
}

// RoundService drives rounds through pending -> active -> finished.
type RoundService struct {
	roundRepo       round.Repository
	userRepo        user.Repository
	processor       roundProcessor
	reconciler      roundReconciler
	idGen           id.Generator
	startingBalance decimal.Decimal
	finalizing      singleflight.Group
	logger          *logging.Logger
	now             func() time.Time
}

func NewRoundService(
	roundRepo round.Repository,
	userRepo user.Repository,
	processor roundProcessor,
	reconciler roundReconciler,
	idGen id.Generator,
	startingBalance decimal.Decimal,
	logger *logging.Logger,
) *RoundService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RoundService{
		roundRepo:       roundRepo,
		userRepo:        userRepo,
		processor:       processor,
		reconciler:      reconciler,
		idGen:           idGen,
		startingBalance: startingBalance,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *RoundService) Create(ctx context.Context, input CreateRoundInput) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.Create")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return round.Round{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	roundID, err := s.idGen.NewID()
	if err != nil {
		return round.Round{}, fmt.Errorf("generate round id: %w", err)
	}

	now := s.now().UTC()
	item := round.Round{
		ID:        roundID,
		Name:      name,
		Status:    round.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return round.Round{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.roundRepo.Create(ctx, item); err != nil {
		return round.Round{}, fmt.Errorf("create round: %w", err)
	}

	s.logger.InfoContext(ctx, "round created", "round_id", item.ID, "name", item.Name)
	return item, nil
}

func (s *RoundService) List(ctx context.Context) ([]round.Round, error) {
	items, err := s.roundRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	return items, nil
}

func (s *RoundService) Get(ctx context.Context, roundID string) (round.Round, error) {
	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return round.Round{}, fmt.Errorf("%w: round_id is required", ErrInvalidInput)
	}

	item, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}
	return item, nil
}

// Open closes the market of a pending round. Prices and balances are untouched.
func (s *RoundService) Open(ctx context.Context, roundID string) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.Open", roundAttr(roundID))
	defer span.End()

	item, err := s.Get(ctx, roundID)
	if err != nil {
		return round.Round{}, err
	}
	if err := round.ValidateTransition(item.Status, round.StatusActive); err != nil {
		return round.Round{}, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	if err := s.roundRepo.UpdateStatus(ctx, item.ID, round.StatusActive); err != nil {
		return round.Round{}, fmt.Errorf("update round status: %w", err)
	}

	item.Status = round.StatusActive
	item.UpdatedAt = s.now().UTC()
	s.logger.InfoContext(ctx, "round opened, market closed", "round_id", item.ID)
	return item, nil
}

// Finalize runs revaluation, reconciliation, the finished transition and the
// league-wide balance reset, in that order. The first failing step aborts
// the rest; the returned error wraps ErrSequenceAborted and the step's cause.
// Concurrent calls for the same round share one execution, which outlives
// the caller that started it.
func (s *RoundService) Finalize(ctx context.Context, roundID string) (FinalizeResult, error) {
	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return FinalizeResult{}, fmt.Errorf("%w: round_id is required", ErrInvalidInput)
	}

	value, err, shared := s.finalizing.Do(roundID, func() (any, error) {
		return s.finalize(context.WithoutCancel(ctx), roundID)
	})
	if shared {
		s.logger.InfoContext(ctx, "joined in-flight round finalization", "round_id", roundID)
	}

	result, _ := value.(FinalizeResult)
	return result, err
}

func (s *RoundService) finalize(ctx context.Context, roundID string) (FinalizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.Finalize", roundAttr(roundID))
	defer span.End()

	item, err := s.Get(ctx, roundID)
	if err != nil {
		return FinalizeResult{}, err
	}
	if err := round.ValidateTransition(item.Status, round.StatusFinished); err != nil {
		return FinalizeResult{}, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	result := FinalizeResult{RoundID: roundID, Status: item.Status, StartingBalance: s.startingBalance}

	revaluation, err := s.processor.Process(ctx, roundID)
	if err != nil {
		return result, s.abort(ctx, span, roundID, finalizeStepRevaluation, err)
	}
	result.Revaluation = revaluation

	reconciliation, err := s.reconciler.Reconcile(ctx, roundID)
	if err != nil {
		return result, s.abort(ctx, span, roundID, finalizeStepReconciliation, err)
	}
	result.Reconciliation = reconciliation

	if err := s.roundRepo.UpdateStatus(ctx, roundID, round.StatusFinished); err != nil {
		return result, s.abort(ctx, span, roundID, finalizeStepMarkFinished, err)
	}
	result.Status = round.StatusFinished

	reset, err := s.userRepo.ResetAllBalances(ctx, s.startingBalance)
	if err != nil {
		return result, s.abort(ctx, span, roundID, finalizeStepResetBalances, err)
	}
	result.BalancesReset = reset

	s.logger.InfoContext(ctx, "round finalized",
		"round_id", roundID,
		"valorized", revaluation.Valorized,
		"devalorized", revaluation.Devalorized,
		"unchanged", revaluation.Unchanged,
		"revaluation_failed", revaluation.Failed,
		"users_updated", reconciliation.UsersUpdated,
		"reconciliation_failed", reconciliation.Failed,
		"balances_reset", reset,
	)

	return result, nil
}

func (s *RoundService) abort(ctx context.Context, span trace.Span, roundID string, step finalizeStep, cause error) error {
	err := fmt.Errorf("%w: round=%s step=%s: %w", ErrSequenceAborted, roundID, step, cause)
	markSpanError(span, err)

	if errors.Is(cause, ErrStatisticsUnavailable) {
		s.logger.WarnContext(ctx, "round finalization aborted", "round_id", roundID, "step", string(step), "error", cause)
	} else {
		s.logger.ErrorContext(ctx, "round finalization aborted", "round_id", roundID, "step", string(step), "error", cause)
	}
	return err
}

// ResetBalances sets every owner's balance to the starting balance. It is the
// last finalize step, exposed on its own so an aborted reset can be retried
// after the round is already finished.
func (s *RoundService) ResetBalances(ctx context.Context) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.ResetBalances")
	defer span.End()

	count, err := s.userRepo.ResetAllBalances(ctx, s.startingBalance)
	if err != nil {
		markSpanError(span, err)
		return 0, fmt.Errorf("reset balances: %w", err)
	}

	s.logger.InfoContext(ctx, "user balances reset", "users", count, "balance", s.startingBalance)
	return count, nil
}
