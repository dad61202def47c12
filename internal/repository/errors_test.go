package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestForeignKeyViolationDetection(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isForeignKeyViolation(fk))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("exec delete: %w", fk)), "detection must survive wrapping")
	assert.False(t, isForeignKeyViolation(errors.New("connection reset")))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}), "unique violations are not referential guards")
}
