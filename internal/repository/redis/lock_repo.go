package redis

import (
	"context"
	"errors"
	"time"

	"github.com/DRSN-tech/inventory-backend/pkg/clients"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// unlockScript снимает блокировку, только если она всё ещё принадлежит владельцу токена.
var unlockScript = r.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockRepo — распределённая блокировка на SET NX PX.
type LockRepo struct {
	client *clients.RedisClient
}

func NewLockRepo(client *clients.RedisClient) *LockRepo {
	return &LockRepo{client: client}
}

// TryLock пытается захватить ключ на ttl. ok == false, если блокировку держит кто-то другой.
func (l *LockRepo) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()

	ok, err := l.client.Client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, e.Wrap(whereami.WhereAmI(), err)
	}

	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

func (l *LockRepo) Unlock(ctx context.Context, key, token string) error {
	err := unlockScript.Run(ctx, l.client.Client, []string{key}, token).Err()
	if err != nil && !errors.Is(err, r.Nil) {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
