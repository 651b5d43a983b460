package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(sql.ErrNoRows))
	assert.True(t, isNotFound(fmt.Errorf("get round: %w", sql.ErrNoRows)))
	assert.False(t, isNotFound(errors.New("pq: relation rounds does not exist")))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := fmt.Errorf("insert statistic: %w", &pq.Error{Code: "23505", Constraint: "uq_player_stats_player_round"})
		assert.True(t, isUniqueViolation(err))
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	})

	t.Run("ignores non pq errors", func(t *testing.T) {
		assert.False(t, isUniqueViolation(errors.New("duplicate key value")))
	})
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := fmt.Errorf("insert statistic: %w", &pq.Error{Code: "23503", Constraint: "fk_player_stats_player"})
	assert.True(t, isForeignKeyViolation(err))
	assert.False(t, isForeignKeyViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isForeignKeyViolation(nil))
}

func TestStringSliceToAny(t *testing.T) {
	assert.Equal(t, []any{"a", "b"}, stringSliceToAny([]string{"a", "b"}))
	assert.Empty(t, stringSliceToAny(nil))
}
