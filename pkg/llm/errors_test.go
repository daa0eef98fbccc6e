package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusServiceUnavailable, KindTransient},
		{http.StatusInternalServerError, KindTransient},
		{http.StatusUnauthorized, KindUnavailable},
		{http.StatusForbidden, KindUnavailable},
		{http.StatusBadRequest, KindInvalidRequest},
		{http.StatusNotFound, KindInvalidRequest},
		{http.StatusOK, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, KindFromStatus(tt.status))
		})
	}
}

func TestIsRetryableFollowsWrappedKind(t *testing.T) {
	rateLimited := fmt.Errorf("draft: %w", NewError("gemini", KindRateLimited, errors.New("quota")))
	invalid := NewError("gemini", KindInvalidRequest, errors.New("bad prompt"))

	assert.True(t, IsRetryable(rateLimited))
	assert.False(t, IsRetryable(invalid))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestClassifyTransport(t *testing.T) {
	assert.Equal(t, KindTransient, ClassifyTransport("ollama", context.DeadlineExceeded).Kind)
	assert.Equal(t, KindUnknown, ClassifyTransport("ollama", context.Canceled).Kind)
	assert.Equal(t, KindUnavailable, ClassifyTransport("ollama", errors.New("no such host")).Kind)
}
