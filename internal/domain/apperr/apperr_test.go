package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_Wrapped(t *testing.T) {
	base := Newf(NotFound, "AnswerService.UpdateAnswer", "answer for question %d not found", 7)
	wrapped := fmt.Errorf("handler: %w", base)

	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, NotFound))
	assert.False(t, Is(wrapped, Inconsistent))
	assert.Contains(t, wrapped.Error(), "answer for question 7 not found")
}

func TestKindOf_Unexpected(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, KindUnknown, KindOf(err))
	assert.False(t, IsRetryable(err))
	assert.False(t, Is(nil, NotFound))
}

func TestIsRetryable(t *testing.T) {
	err := E(StoreUnavailable, "repo.Count", errors.New("connection reset"))

	assert.True(t, IsRetryable(err))
	assert.ErrorContains(t, err, "repo.Count: connection reset")
	assert.Equal(t, "connection reset", errors.Unwrap(err).Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "forbidden", Forbidden.String())
	assert.Equal(t, "no_answers", NoAnswers.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
