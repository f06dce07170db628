package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbeHealth(t *testing.T) {
	status := ProbeHealth(context.Background(), map[string]HealthCheck{
		"up":   func(context.Context) error { return nil },
		"down": func(context.Context) error { return errors.New("refused") },
	})

	assert.True(t, status.Checks["up"])
	assert.False(t, status.Checks["down"])
	assert.False(t, status.Healthy())
	assert.Equal(t, status.Checks, GetHealthStatus().Checks)

	status = ProbeHealth(context.Background(), map[string]HealthCheck{
		"up": func(context.Context) error { return nil },
	})
	assert.True(t, status.Healthy())
}
