package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist invalidates JWT tokens before they expire (e.g., on logout)
type TokenBlacklist interface {
	// AddToBlacklist adds a token's JTI (JWT ID) to the blacklist
	// ttl should be set to the remaining time until token expiration
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error

	// IsBlacklisted checks if a token's JTI is in the blacklist
	IsBlacklisted(ctx context.Context, jti string) (bool, error)

	// AddUserTokensToBlacklist blacklists all tokens for a user
	// Tokens issued before the stored timestamp are treated as invalid
	AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error

	// IsUserTokenInvalidated checks if a user's tokens have been invalidated
	IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client    *redis.Client
	keyPrefix string
}

// RedisTokenBlacklistConfig holds configuration for Redis token blacklist
type RedisTokenBlacklistConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisTokenBlacklist creates a new Redis-based token blacklist
func NewRedisTokenBlacklist(cfg RedisTokenBlacklistConfig) (*RedisTokenBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis for token blacklist: %w", err)
	}

	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: "auth:revoked:",
	}, nil
}

// NewRedisTokenBlacklistWithClient creates a token blacklist with an existing Redis client
func NewRedisTokenBlacklistWithClient(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: "auth:revoked:",
	}
}

func (b *RedisTokenBlacklist) jtiKey(jti string) string {
	return b.keyPrefix + "jti:" + jti
}

func (b *RedisTokenBlacklist) userKey(userID string) string {
	return b.keyPrefix + "user:" + userID
}

// AddToBlacklist adds a token's JTI to the blacklist
func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

// IsBlacklisted checks if a token's JTI is in the blacklist
func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, b.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

// AddUserTokensToBlacklist invalidates all tokens for a user by storing the current timestamp
func (b *RedisTokenBlacklist) AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error {
	invalidationTime := time.Now().Unix()
	if err := b.client.Set(ctx, b.userKey(userID), invalidationTime, ttl).Err(); err != nil {
		return fmt.Errorf("failed to invalidate user tokens: %w", err)
	}
	return nil
}

// IsUserTokenInvalidated checks if a token was issued before the user's invalidation timestamp
func (b *RedisTokenBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	invalidationTimeStr, err := b.client.Get(ctx, b.userKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user token invalidation: %w", err)
	}

	var invalidationTime int64
	if _, err := fmt.Sscanf(invalidationTimeStr, "%d", &invalidationTime); err != nil {
		return false, fmt.Errorf("failed to parse invalidation timestamp: %w", err)
	}

	return tokenIssuedAt.Unix() <= invalidationTime, nil
}

// Close closes the Redis client
func (b *RedisTokenBlacklist) Close() error {
	return b.client.Close()
}

// Ensure RedisTokenBlacklist implements TokenBlacklist
var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist provides an in-memory implementation for development and tests
// It must not be used in production with multiple instances
type InMemoryTokenBlacklist struct {
	mu                    sync.RWMutex
	jtiBlacklist          map[string]time.Time // JTI -> expiration time
	userInvalidationTimes map[string]time.Time // userID -> invalidation time
}

// NewInMemoryTokenBlacklist creates a new in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		jtiBlacklist:          make(map[string]time.Time),
		userInvalidationTimes: make(map[string]time.Time),
	}
}

// AddToBlacklist adds a token's JTI to the in-memory blacklist
func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtiBlacklist[jti] = time.Now().Add(ttl)
	return nil
}

// IsBlacklisted checks if a token's JTI is blacklisted and not expired
func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiration, exists := b.jtiBlacklist[jti]
	if !exists {
		return false, nil
	}
	if time.Now().After(expiration) {
		delete(b.jtiBlacklist, jti)
		return false, nil
	}
	return true, nil
}

// AddUserTokensToBlacklist invalidates all tokens for a user
func (b *InMemoryTokenBlacklist) AddUserTokensToBlacklist(_ context.Context, userID string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userInvalidationTimes[userID] = time.Now()
	return nil
}

// IsUserTokenInvalidated checks if a token was issued before the user's invalidation timestamp
func (b *InMemoryTokenBlacklist) IsUserTokenInvalidated(_ context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	invalidationTime, exists := b.userInvalidationTimes[userID]
	if !exists {
		return false, nil
	}
	return !tokenIssuedAt.After(invalidationTime), nil
}

// Ensure InMemoryTokenBlacklist implements TokenBlacklist
var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
