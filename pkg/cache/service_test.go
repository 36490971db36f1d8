package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClientBehavesAsAlwaysMiss(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	var dest string
	assert.ErrorIs(t, svc.Get(ctx, "key", &dest), ErrCacheMiss)
	assert.NoError(t, svc.Set(ctx, "key", "value", time.Minute))
	assert.NoError(t, svc.Delete(ctx, "key"))
	assert.NoError(t, svc.DeletePattern(ctx, "key:*"))
	assert.Error(t, svc.Ping(ctx))
}

func TestGetOrSetFallsThroughToFetcher(t *testing.T) {
	svc := NewService(nil)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	calls := 0
	var dest payload
	err := svc.GetOrSet(context.Background(), "key", time.Minute, func() (interface{}, error) {
		calls++
		return payload{Name: "flights", Count: 3}, nil
	}, &dest)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, payload{Name: "flights", Count: 3}, dest)
}

func TestGetOrSetPropagatesFetcherError(t *testing.T) {
	svc := NewService(nil)

	wantErr := errors.New("backend down")
	var dest int
	err := svc.GetOrSet(context.Background(), "key", time.Minute, func() (interface{}, error) {
		return nil, wantErr
	}, &dest)

	assert.ErrorIs(t, err, wantErr)
}
