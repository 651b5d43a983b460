package memory

import (
	"time"

	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/player"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/round"
	"github.com/MatheusCrestaniBastos/LnfFantasy/internal/domain/team"
	"github.com/shopspring/decimal"
)

const SeedRoundID = "rodada-01"

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "lnf-magnus", Name: "Magnus Futsal"},
		{ID: "lnf-jaragua", Name: "Jaraguá Futsal"},
		{ID: "lnf-acbf", Name: "ACBF"},
		{ID: "lnf-corinthians", Name: "Corinthians"},
		{ID: "lnf-pato", Name: "Pato Futsal"},
		{ID: "lnf-cascavel", Name: "Cascavel Futsal"},
	}
}

func seedPlayer(id, teamID, name string, pos player.Position, price string) player.Player {
	return player.Player{
		ID:       id,
		TeamID:   teamID,
		Name:     name,
		Position: pos,
		Price:    decimal.RequireFromString(price),
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		seedPlayer("gol-01", "lnf-magnus", "Djony", player.PositionGoalkeeper, "9.50"),
		seedPlayer("gol-02", "lnf-jaragua", "Guitta", player.PositionGoalkeeper, "8.80"),
		seedPlayer("gol-03", "lnf-acbf", "Roger", player.PositionGoalkeeper, "7.20"),
		seedPlayer("gol-04", "lnf-pato", "Willian", player.PositionGoalkeeper, "5.00"),
		seedPlayer("fix-01", "lnf-magnus", "Rodrigo", player.PositionFixo, "10.40"),
		seedPlayer("fix-02", "lnf-corinthians", "Marcênio", player.PositionFixo, "8.10"),
		seedPlayer("fix-03", "lnf-cascavel", "Dieguinho", player.PositionFixo, "6.30"),
		seedPlayer("fix-04", "lnf-pato", "Carlinhos", player.PositionFixo, "4.50"),
		seedPlayer("ala-01", "lnf-magnus", "Leandro Lino", player.PositionAla, "11.20"),
		seedPlayer("ala-02", "lnf-jaragua", "Arthur", player.PositionAla, "10.10"),
		seedPlayer("ala-03", "lnf-acbf", "Lucas Gomes", player.PositionAla, "8.70"),
		seedPlayer("ala-04", "lnf-corinthians", "Deives", player.PositionAla, "7.60"),
		seedPlayer("ala-05", "lnf-cascavel", "Rocha", player.PositionAla, "6.40"),
		seedPlayer("ala-06", "lnf-pato", "Kauê", player.PositionAla, "3.90"),
		seedPlayer("piv-01", "lnf-jaragua", "Pito", player.PositionPivo, "12.00"),
		seedPlayer("piv-02", "lnf-magnus", "Genaro", player.PositionPivo, "9.30"),
		seedPlayer("piv-03", "lnf-acbf", "Lé", player.PositionPivo, "7.10"),
		seedPlayer("piv-04", "lnf-cascavel", "Henrique", player.PositionPivo, "4.80"),
	}
}

func SeedRounds(now time.Time) []round.Round {
	return []round.Round{
		{
			ID:        SeedRoundID,
			Name:      "Rodada 1",
			Status:    round.StatusPending,
			CreatedAt: now.UTC(),
			UpdatedAt: now.UTC(),
		},
	}
}
