package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type fakeRedisPinger struct{ err error }

func (f *fakeRedisPinger) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	}
	return cmd
}

type fakeMongoPinger struct{ err error }

func (f *fakeMongoPinger) Ping(ctx context.Context, rp *readpref.ReadPref) error {
	return f.err
}

func TestCheckHealthReportsPerService(t *testing.T) {
	ctx := context.Background()
	down := errors.New("connection refused")

	hs := checkHealth(ctx, &fakeRedisPinger{}, &fakeRedisPinger{err: down}, &fakeMongoPinger{})
	assert.True(t, hs.Mongo)
	assert.True(t, hs.CacheRedis)
	assert.False(t, hs.ChatContextRedis)
	assert.False(t, hs.CheckedAt.IsZero())

	hs = checkHealth(ctx, &fakeRedisPinger{err: down}, &fakeRedisPinger{}, &fakeMongoPinger{err: down})
	assert.False(t, hs.Mongo)
	assert.False(t, hs.CacheRedis)
	assert.True(t, hs.ChatContextRedis)
}
