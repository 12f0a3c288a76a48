// Package selection parks a committed calendar Selection while the user is
// sent through login, and hands it back exactly once afterwards.
package selection

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/tourcal/internal/calendar"
	"github.com/pkordes/tourcal/internal/domain"
)

// DefaultTTL is how long a parked selection stays claimable.
const DefaultTTL = 30 * time.Minute

// redisClient is the subset of *redis.Client the store uses.
// Tests substitute a fake built on redis.NewStatusResult / redis.NewStringResult.
type redisClient interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore keeps pending selections in Redis under a random key with a TTL.
type RedisStore struct {
	rdb    redisClient
	ttl    time.Duration
	prefix string
}

// NewRedisStore constructs a RedisStore. A non-positive ttl falls back to DefaultTTL.
func NewRedisStore(rdb redisClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl, prefix: "selection:"}
}

// Put stores sel and returns the key the caller should carry through the redirect.
func (s *RedisStore) Put(ctx context.Context, sel domain.Selection) (string, error) {
	b, err := json.Marshal(sel)
	if err != nil {
		return "", fmt.Errorf("selection.RedisStore.Put: %w", err)
	}
	key := uuid.NewString()
	if err := s.rdb.Set(ctx, s.prefix+key, b, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("selection.RedisStore.Put: %w", err)
	}
	return key, nil
}

// Take returns the selection stored under key and deletes it.
// Returns domain.ErrNotFound if the key is unknown, expired or already taken.
func (s *RedisStore) Take(ctx context.Context, key string) (domain.Selection, error) {
	if _, err := uuid.Parse(key); err != nil {
		return domain.Selection{}, fmt.Errorf("selection.RedisStore.Take: %w", domain.ErrNotFound)
	}
	val, err := s.rdb.GetDel(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Selection{}, fmt.Errorf("selection.RedisStore.Take: %w", domain.ErrNotFound)
		}
		return domain.Selection{}, fmt.Errorf("selection.RedisStore.Take: %w", err)
	}
	var sel domain.Selection
	if err := json.Unmarshal([]byte(val), &sel); err != nil {
		return domain.Selection{}, fmt.Errorf("selection.RedisStore.Take: decode: %w", err)
	}
	return sel, nil
}

// TokenStore is the stateless fallback used when Redis is not configured:
// the selection itself is encoded into the returned token, followed by an
// HMAC-SHA256 signature so a client cannot hand back a selection the server
// never committed. Tokens are not one-shot; they stay valid for as long as
// the client keeps them and the secret is unchanged.
type TokenStore struct {
	secret []byte
}

// NewTokenStore constructs a TokenStore signing with secret.
func NewTokenStore(secret []byte) TokenStore {
	return TokenStore{secret: secret}
}

// Put encodes sel into an opaque, signed, URL-safe token.
func (s TokenStore) Put(_ context.Context, sel domain.Selection) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("selection.TokenStore.Put: %w", errNoSecret)
	}
	payload, err := calendar.EncodeSelection(sel)
	if err != nil {
		return "", fmt.Errorf("selection.TokenStore.Put: %w", err)
	}
	return payload + "." + s.sign(payload), nil
}

// Take verifies and decodes a token produced by Put.
// Returns domain.ErrNotFound if the signature does not match or the token
// cannot be decoded.
func (s TokenStore) Take(_ context.Context, token string) (domain.Selection, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok || len(s.secret) == 0 || !hmac.Equal([]byte(sig), []byte(s.sign(payload))) {
		return domain.Selection{}, fmt.Errorf("selection.TokenStore.Take: %w: bad signature", domain.ErrNotFound)
	}
	sel, err := calendar.DecodeSelection(payload)
	if err != nil {
		return domain.Selection{}, fmt.Errorf("selection.TokenStore.Take: %w: %w", domain.ErrNotFound, err)
	}
	return sel, nil
}

var errNoSecret = errors.New("token store has no signing secret")

func (s TokenStore) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
