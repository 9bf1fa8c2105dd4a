package magiclink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound  = errors.New("sign-in token not found or already used")
	ErrRateLimited    = errors.New("too many sign-in requests for this address")
	ErrTokenGenFailed = errors.New("could not generate sign-in token")
)

const (
	tokenKeyPrefix     = "magiclink:token:"
	rateLimitKeyPrefix = "magiclink:rate:"
)

type StoreConfig struct {
	TokenTTL       time.Duration
	RateLimitMax   int64
	RateLimitEvery time.Duration
}

// Store keeps one-time sign-in tokens and per-address request counters in
// Redis. Tokens expire on their own via TTL; consuming a token removes it
// atomically, so a link can be used exactly once.
type Store struct {
	client *redis.Client

	tokenTTL       time.Duration
	rateLimitMax   int64
	rateLimitEvery time.Duration
}

func NewStore(client *redis.Client, config StoreConfig) *Store {
	store := &Store{
		client:         client,
		tokenTTL:       config.TokenTTL,
		rateLimitMax:   config.RateLimitMax,
		rateLimitEvery: config.RateLimitEvery,
	}
	if store.tokenTTL <= 0 {
		store.tokenTTL = 15 * time.Minute
	}
	if store.rateLimitMax <= 0 {
		store.rateLimitMax = 5
	}
	if store.rateLimitEvery <= 0 {
		store.rateLimitEvery = time.Hour
	}
	return store
}

// TokenTTL reports how long issued tokens stay usable.
func (s *Store) TokenTTL() time.Duration {
	return s.tokenTTL
}

// IssueToken creates and stores a fresh one-time token for the address,
// enforcing the per-address rate limit.
func (s *Store) IssueToken(ctx context.Context, instanceID string, email string) (string, error) {
	rateKey := rateLimitKeyPrefix + instanceID + ":" + email
	count, err := s.client.Incr(ctx, rateKey).Result()
	if err != nil {
		return "", err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, rateKey, s.rateLimitEvery).Err(); err != nil {
			return "", err
		}
	}
	if count > s.rateLimitMax {
		return "", ErrRateLimited
	}

	token, err := GenerateTokenString()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenGenFailed, err)
	}

	if err := s.client.Set(ctx, tokenKeyPrefix+instanceID+":"+token, email, s.tokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeToken resolves a token to the email it was issued for and deletes
// it in the same operation.
func (s *Store) ConsumeToken(ctx context.Context, instanceID string, token string) (string, error) {
	email, err := s.client.GetDel(ctx, tokenKeyPrefix+instanceID+":"+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return email, nil
}
