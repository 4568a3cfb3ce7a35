package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	wrapped := fmt.Errorf("insert hold: %w", &pq.Error{Code: "23P01"})

	assert.True(t, IsExclusionViolation(wrapped))
	assert.False(t, IsUniqueViolation(wrapped))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsInvalidUUID(&pq.Error{Code: "22P02"}))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.Equal(t, pq.ErrorCode(""), Code(errors.New("plain")))
	assert.Equal(t, pq.ErrorCode(""), Code(nil))
}
