package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusNext(t *testing.T) {
	next, ok := StatusConfirmed.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusPreparing, next)

	next, ok = StatusOutForDelivery.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusDelivered, next)

	_, ok = StatusDelivered.Next()
	assert.False(t, ok)

	_, ok = Status("cancelled").Next()
	assert.False(t, ok)
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.False(t, StatusOutForDelivery.Terminal())
}

func TestStatusProgress(t *testing.T) {
	assert.Equal(t, 20, StatusConfirmed.Progress())
	assert.Equal(t, 40, StatusPreparing.Progress())
	assert.Equal(t, 60, StatusReady.Progress())
	assert.Equal(t, 80, StatusOutForDelivery.Progress())
	assert.Equal(t, 100, StatusDelivered.Progress())
	assert.Equal(t, 0, Status("cancelled").Progress())
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusConfirmed, StatusPreparing, StatusReady, StatusOutForDelivery, StatusDelivered} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("").Valid())
	assert.False(t, Status("cancelled").Valid())
}
