package httpapi

import (
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/lineup"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/playerstats"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/pricehistory"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/round"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/team"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/usecase"
	"github.com/shopspring/decimal"
)

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

type playerDTO struct {
	ID       string `json:"id"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Price    string `json:"price"`
	PhotoURL string `json:"photo_url,omitempty"`
}

func playerListingToDTO(item usecase.PlayerListing) playerDTO {
	return playerDTO{
		ID:       item.Player.ID,
		TeamID:   item.Player.TeamID,
		TeamName: item.TeamName,
		Name:     item.Player.Name,
		Position: string(item.Player.Position),
		Price:    money(item.Player.Price),
		PhotoURL: item.Player.PhotoURL,
	}
}

func playerToDTO(item player.Player) playerDTO {
	return playerListingToDTO(usecase.PlayerListing{Player: item})
}

type teamDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

func teamToDTO(item team.Team) teamDTO {
	return teamDTO{ID: item.ID, Name: item.Name, LogoURL: item.LogoURL}
}

type rankingEntryDTO struct {
	Position    int    `json:"position"`
	UserID      string `json:"user_id"`
	TeamName    string `json:"team_name"`
	TotalPoints string `json:"total_points"`
	Balance     string `json:"balance"`
}

type roundDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	MarketOpen bool      `json:"market_open"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func roundToDTO(item round.Round) roundDTO {
	return roundDTO{
		ID:         item.ID,
		Name:       item.Name,
		Status:     string(item.Status),
		MarketOpen: item.MarketOpen(),
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

type priceHistoryDTO struct {
	PlayerID  string    `json:"player_id"`
	RoundID   string    `json:"round_id"`
	OldPrice  string    `json:"old_price"`
	NewPrice  string    `json:"new_price"`
	Delta     string    `json:"delta"`
	Points    string    `json:"points"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func priceHistoryToDTO(item pricehistory.Entry) priceHistoryDTO {
	return priceHistoryDTO{
		PlayerID:  item.PlayerID,
		RoundID:   item.RoundID,
		OldPrice:  money(item.OldPrice),
		NewPrice:  money(item.NewPrice),
		Delta:     money(item.Delta),
		Points:    money(item.PointsScored),
		Reason:    item.Reason,
		CreatedAt: item.CreatedAt,
	}
}

type moverDTO struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Position   string `json:"position"`
	TeamID     string `json:"team_id"`
	TeamName   string `json:"team_name"`
	OldPrice   string `json:"old_price"`
	NewPrice   string `json:"new_price"`
	Delta      string `json:"delta"`
	Points     string `json:"points"`
	Reason     string `json:"reason"`
}

type moversReportDTO struct {
	RoundID string     `json:"round_id"`
	Gainers []moverDTO `json:"gainers"`
	Losers  []moverDTO `json:"losers"`
}

func moversToDTO(items []usecase.Mover) []moverDTO {
	out := make([]moverDTO, 0, len(items))
	for _, m := range items {
		out = append(out, moverDTO{
			PlayerID:   m.PlayerID,
			PlayerName: m.PlayerName,
			Position:   string(m.Position),
			TeamID:     m.TeamID,
			TeamName:   m.TeamName,
			OldPrice:   money(m.OldPrice),
			NewPrice:   money(m.NewPrice),
			Delta:      money(m.Delta),
			Points:     money(m.Points),
			Reason:     m.Reason,
		})
	}
	return out
}

type lineupSlotDTO struct {
	PlayerID string `json:"player_id"`
	Role     string `json:"role"`
}

type lineupDTO struct {
	ID        string          `json:"id"`
	RoundID   string          `json:"round_id"`
	Slots     []lineupSlotDTO `json:"slots"`
	Cost      string          `json:"cost"`
	Balance   string          `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func lineupToDTO(view usecase.LineupView) lineupDTO {
	return lineupDTO{
		ID:        view.Lineup.ID,
		RoundID:   view.Round.ID,
		Slots:     slotsToDTO(view.Lineup.Slots),
		Cost:      money(view.Cost),
		Balance:   money(view.Balance),
		UpdatedAt: view.Lineup.UpdatedAt,
	}
}

func slotsToDTO(slots []lineup.Slot) []lineupSlotDTO {
	out := make([]lineupSlotDTO, 0, len(slots))
	for _, slot := range slots {
		out = append(out, lineupSlotDTO{PlayerID: slot.PlayerID, Role: string(slot.Role)})
	}
	return out
}

type scoutDTO struct {
	Goals         int  `json:"goals"`
	Assists       int  `json:"assists"`
	ShotsOnTarget int  `json:"shots_on_target"`
	Saves         int  `json:"saves"`
	CleanSheet    bool `json:"clean_sheet"`
	OwnGoals      int  `json:"own_goals"`
	YellowCards   int  `json:"yellow_cards"`
	RedCards      int  `json:"red_cards"`
	Fouls         int  `json:"fouls"`
}

type statisticDTO struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	RoundID   string    `json:"round_id"`
	Scout     scoutDTO  `json:"scout"`
	Points    string    `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

func statisticToDTO(item playerstats.Statistic) statisticDTO {
	s := item.Scout
	return statisticDTO{
		ID:       item.ID,
		PlayerID: item.PlayerID,
		RoundID:  item.RoundID,
		Scout: scoutDTO{
			Goals:         s.Goals,
			Assists:       s.Assists,
			ShotsOnTarget: s.ShotsOnTarget,
			Saves:         s.Saves,
			CleanSheet:    s.CleanSheet,
			OwnGoals:      s.OwnGoals,
			YellowCards:   s.YellowCards,
			RedCards:      s.RedCards,
			Fouls:         s.Fouls,
		},
		Points:    money(item.Points),
		CreatedAt: item.CreatedAt,
	}
}

type priceChangeDTO struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	OldPrice   string `json:"old_price"`
	NewPrice   string `json:"new_price"`
	Delta      string `json:"delta"`
	Points     string `json:"points"`
	Reason     string `json:"reason"`
}

type revaluationDTO struct {
	RoundID     string           `json:"round_id"`
	Processed   int              `json:"processed"`
	Valorized   int              `json:"valorized"`
	Devalorized int              `json:"devalorized"`
	Unchanged   int              `json:"unchanged"`
	Failed      int              `json:"failed"`
	Changes     []priceChangeDTO `json:"changes"`
}

func revaluationToDTO(result usecase.RevaluationResult) revaluationDTO {
	changes := make([]priceChangeDTO, 0, len(result.Changes))
	for _, c := range result.Changes {
		changes = append(changes, priceChangeDTO{
			PlayerID:   c.PlayerID,
			PlayerName: c.PlayerName,
			OldPrice:   money(c.OldPrice),
			NewPrice:   money(c.NewPrice),
			Delta:      money(c.Delta),
			Points:     money(c.Points),
			Reason:     c.Reason,
		})
	}

	return revaluationDTO{
		RoundID:     result.RoundID,
		Processed:   result.Processed,
		Valorized:   result.Valorized,
		Devalorized: result.Devalorized,
		Unchanged:   result.Unchanged,
		Failed:      result.Failed,
		Changes:     changes,
	}
}

type finalizeDTO struct {
	RoundID         string                  `json:"round_id"`
	Status          string                  `json:"status"`
	Revaluation     revaluationDTO          `json:"revaluation"`
	Reconciliation  usecase.ReconcileResult `json:"reconciliation"`
	BalancesReset   int64                   `json:"balances_reset"`
	StartingBalance string                  `json:"starting_balance"`
}

func finalizeToDTO(result usecase.FinalizeResult) finalizeDTO {
	return finalizeDTO{
		RoundID:         result.RoundID,
		Status:          string(result.Status),
		Revaluation:     revaluationToDTO(result.Revaluation),
		Reconciliation:  result.Reconciliation,
		BalancesReset:   result.BalancesReset,
		StartingBalance: money(result.StartingBalance),
	}
}
