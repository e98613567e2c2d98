package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

// presenceTTL is how long after its last authenticated request a player's
// device is still considered online.
const presenceTTL = 90 * time.Second

func Init(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func presenceKey(playerID int) string {
	return fmt.Sprintf("player:%d:last_seen", playerID)
}

// TouchPlayer records that the player's device was just seen. Best-effort:
// presence is advisory, so a missing or unreachable Redis never fails the
// request.
func TouchPlayer(ctx context.Context, playerID int) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Set(ctx, presenceKey(playerID), time.Now().UTC().Format(time.RFC3339), presenceTTL).Err(); err != nil {
		log.Warn().Err(err).Int("player_id", playerID).Msg("failed to record player presence")
	}
}

// PlayerOnline reports whether the player's presence key is still alive.
// Returns false when Redis is unavailable.
func PlayerOnline(ctx context.Context, playerID int) bool {
	if Rdb == nil {
		return false
	}
	n, err := Rdb.Exists(ctx, presenceKey(playerID)).Result()
	if err != nil {
		log.Warn().Err(err).Int("player_id", playerID).Msg("failed to check player presence")
		return false
	}
	return n > 0
}
