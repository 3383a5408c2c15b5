package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthStatus is the snapshot served on /health: one flag per backing
// service the chat pipeline depends on.
type HealthStatus struct {
	Mongo            bool      `json:"mongo"`
	CacheRedis       bool      `json:"cacheRedis"`
	ChatContextRedis bool      `json:"chatContextRedis"`
	CheckedAt        time.Time `json:"checkedAt"`
}

type redisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type mongoPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func checkHealth(ctx context.Context, cache, chatCtx redisPinger, mongoClient mongoPinger) HealthStatus {
	return HealthStatus{
		Mongo:            mongoClient.Ping(ctx, nil) == nil,
		CacheRedis:       cache.Ping(ctx).Err() == nil,
		ChatContextRedis: chatCtx.Ping(ctx).Err() == nil,
		CheckedAt:        time.Now(),
	}
}

// StartHealthMonitor pings the catalog database and both Redis instances
// (generic cache and chat session context) every minute and keeps the latest
// snapshot in memory.
func StartHealthMonitor(cache, chatCtx *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			hs := checkHealth(ctx, cache, chatCtx, mongoClient)

			healthMu.Lock()
			currentHealth = hs
			healthMu.Unlock()
		}
	}()
}
