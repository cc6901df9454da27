package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	svc, err := NewUserService(s, testLogger())
	require.NoError(t, err)
	ctx := context.Background()

	user, err := svc.GetOrCreateUser(ctx, " ada ")
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Name)
	assert.Empty(t, user.Progress)

	user, err = svc.UpdateProgress(ctx, "ada", map[string]any{"cells": 3})
	require.NoError(t, err)
	assert.Equal(t, 3, user.Progress["cells"])

	user, err = svc.UpdateProgress(ctx, "ada", map[string]any{"tides": true})
	require.NoError(t, err)
	assert.Equal(t, 3, user.Progress["cells"], "merge keeps existing keys")
	assert.Equal(t, true, user.Progress["tides"])

	// progress update creates unknown users
	user, err = svc.UpdateProgress(ctx, "grace", map[string]any{"x": "y"})
	require.NoError(t, err)
	assert.Equal(t, "grace", user.Name)

	_, err = svc.GetOrCreateUser(ctx, "  ")
	assert.ErrorIs(t, err, ErrInvalidUserName)
	_, err = svc.UpdateProgress(ctx, "", nil)
	assert.ErrorIs(t, err, ErrInvalidUserName)

	_, err = NewUserService(nil, testLogger())
	assert.Error(t, err)
}
