package redisclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// LoginLimiter はログイン試行回数をRedisで数える。
// 複数インスタンスでも同じカウンタを共有する。
type LoginLimiter struct {
	rdb         *redis.Client
	maxAttempts int64
	window      time.Duration
}

func NewLoginLimiter(rdb *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		rdb:         rdb,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

// INCRとEXPIREを1回で実行する。TTLが無いキーには張り直す。
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

func attemptKey(scope, email string) string {
	return fmt.Sprintf("login_attempts:%s:%s", scope, strings.ToLower(strings.TrimSpace(email)))
}

// Hit は試行を1回数え、上限を超えていればfalseを返す。
// Redisが落ちている時はログだけ出して通す。
func (l *LoginLimiter) Hit(ctx context.Context, scope, email string) (bool, error) {
	key := attemptKey(scope, email)

	n, err := hitScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Int64()
	if err != nil {
		util.GetLogger().Warn("login limiter unavailable", zap.String("key", key), zap.Error(err))
		return true, nil
	}

	return n <= l.maxAttempts, nil
}

// Reset はログイン成功時にカウンタを消す
func (l *LoginLimiter) Reset(ctx context.Context, scope, email string) error {
	key := attemptKey(scope, email)
	if err := l.rdb.Del(ctx, key).Err(); err != nil {
		util.GetLogger().Warn("login limiter reset failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}
