package providers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceError(t *testing.T) {
	err := &ServiceError{StatusCode: 404, Code: "NotAuthorizedOrNotFound", Message: "no such compartment"}
	assert.Equal(t, "service error 404 (NotAuthorizedOrNotFound): no such compartment", err.Error())
	assert.False(t, err.IsAuthError())

	plain := &ServiceError{StatusCode: 500, Message: "boom"}
	assert.Equal(t, "service error 500: boom", plain.Error())
}

func TestServiceErrorClassification(t *testing.T) {
	assert.True(t, (&ServiceError{StatusCode: 401}).IsAuthError())
	assert.True(t, (&ServiceError{StatusCode: 403}).IsAuthError())
	assert.True(t, (&ServiceError{StatusCode: 429}).IsThrottled())
}

func TestAsServiceError(t *testing.T) {
	wrapped := fmt.Errorf("list instances: %w", &ServiceError{StatusCode: 429})
	se, ok := AsServiceError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 429, se.StatusCode)

	_, ok = AsServiceError(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestInitializerFunc(t *testing.T) {
	var init Initializer = InitializerFunc(func(ctx context.Context) (*Session, error) {
		return &Session{TenancyID: "t"}, nil
	})
	s, err := init.Initialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t", s.TenancyID)
}
