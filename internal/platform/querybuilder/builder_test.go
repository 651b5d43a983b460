package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("h.player_id", "h.delta", "p.name").
		From("price_history h").
		Join("JOIN players p ON p.id = h.player_id").
		Where(Eq("h.round_id", "r1"), Gt("h.delta", 0)).
		OrderBy("h.delta DESC", "h.player_id").
		Limit(10).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT h.player_id, h.delta, p.name FROM price_history h JOIN players p ON p.id = h.player_id WHERE h.round_id = $1 AND h.delta > $2 ORDER BY h.delta DESC, h.player_id LIMIT 10", query)
	assert.Equal(t, []any{"r1", 0}, args)
}

func TestSelectBuilderInAndEmptyIn(t *testing.T) {
	query, args, err := Select("id").From("players").Where(In("id", []any{"a", "b"}), Eq("team_id", "t1")).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM players WHERE id IN ($1, $2) AND team_id = $3", query)
	assert.Equal(t, []any{"a", "b", "t1"}, args)

	query, args, err = Select("id").From("players").Where(In("id", nil)).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM players WHERE 1=0", query)
	assert.Empty(t, args)
}

func TestSelectBuilderValidation(t *testing.T) {
	_, _, err := Select().From("players").ToSQL()
	assert.Error(t, err)

	_, _, err = Select("id").ToSQL()
	assert.Error(t, err)
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("player_statistics").
		Columns("id", "player_id", "round_id").
		Values("s1", "p1", "r1").
		Suffix("ON CONFLICT (player_id, round_id) DO NOTHING").
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO player_statistics (id, player_id, round_id) VALUES ($1, $2, $3) ON CONFLICT (player_id, round_id) DO NOTHING", query)
	assert.Equal(t, []any{"s1", "p1", "r1"}, args)

	_, _, err = InsertInto("rounds").Columns("id", "name").Values("only-one").ToSQL()
	assert.Error(t, err)
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("users").
		Set("balance", "100.00").
		SetExpr("updated_at", "NOW()").
		SetExpr("total_points", "total_points + ?", "12.5").
		Where(Eq("id", "u1")).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE users SET balance = $1, updated_at = NOW(), total_points = total_points + $2 WHERE id = $3", query)
	assert.Equal(t, []any{"100.00", "12.5", "u1"}, args)
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		Skipped  string `db:"-"`
		internal string
	}

	query, args, err := InsertModel("rounds", row{ID: "r1", Name: "Rodada 1", internal: "x"}, "RETURNING created_at")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO rounds (id, name) VALUES ($1, $2) RETURNING created_at", query)
	assert.Equal(t, []any{"r1", "Rodada 1"}, args)

	_, _, err = InsertModel("rounds", (*row)(nil), "")
	assert.Error(t, err)
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("players").Where(Eq("id", "p1")).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM players WHERE id = $1", query)
	assert.Equal(t, []any{"p1"}, args)

	_, _, err = DeleteFrom("players").ToSQL()
	assert.Error(t, err)
}
