package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"stockwatch/internal/models"

	"github.com/redis/go-redis/v9"
)

const groupKeyPrefix = "stockwatch:group:"

// SnapshotPublisher hands computed group records to the presentation layer,
// which reads them from Redis directly. The engine never reads them back.
type SnapshotPublisher interface {
	PublishGroupStock(ctx context.Context, stock *models.GroupStock) error
}

type redisSnapshotPublisher struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient accepts either host:port or a redis:// / rediss:// address.
func NewRedisClient(addr, password string, db int) *redis.Client {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return client
}

func NewRedisSnapshotPublisher(client *redis.Client, ttl time.Duration) SnapshotPublisher {
	return &redisSnapshotPublisher{client: client, ttl: ttl}
}

func groupKey(inventoryID int64) string {
	return fmt.Sprintf("%s%d", groupKeyPrefix, inventoryID)
}

func (r *redisSnapshotPublisher) PublishGroupStock(ctx context.Context, stock *models.GroupStock) error {
	data, err := json.Marshal(stock)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, groupKey(stock.InventoryID), data, r.ttl).Err()
}

// RedisProbe adapts a redis client to an error-returning Ping for health checks.
type RedisProbe struct {
	Client *redis.Client
}

func (p RedisProbe) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}
