package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"koala-user-service/internal/constant"

	"github.com/redis/go-redis/v9"
)

// TokenRepository keeps token state in redis: the current refresh token hash
// per user and a blacklist of revoked token hashes. Entries expire with the token.
type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{client}
}

func refreshTokenKey(userID string) string {
	return fmt.Sprintf("refresh_token:%s", userID)
}

func blacklistKey(tokenHash string, tokenType constant.TokenType) string {
	return fmt.Sprintf("blacklist:%s:%s", tokenType, tokenHash)
}

// SetRefreshToken replaces the refresh token hash stored for userID.
func (r *TokenRepository) SetRefreshToken(ctx context.Context, userID, tokenHash string, ttl time.Duration) error {
	return r.client.Set(ctx, refreshTokenKey(userID), tokenHash, ttl).Err()
}

// consumeRefreshTokenScript deletes KEYS[1] only while it still holds ARGV[1].
var consumeRefreshTokenScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ConsumeRefreshToken deletes the hash stored for userID if it equals
// tokenHash and reports whether it did. Of concurrent callers presenting the
// same hash, exactly one sees true.
func (r *TokenRepository) ConsumeRefreshToken(ctx context.Context, userID, tokenHash string) (bool, error) {
	deleted, err := consumeRefreshTokenScript.Run(ctx, r.client, []string{refreshTokenKey(userID)}, tokenHash).Int()
	if err != nil {
		return false, err
	}
	return deleted == 1, nil
}

func (r *TokenRepository) AddToBlacklist(ctx context.Context, tokenHash string, tokenType constant.TokenType, ttl time.Duration) error {
	return r.client.Set(ctx, blacklistKey(tokenHash, tokenType), "1", ttl).Err()
}

func (r *TokenRepository) IsBlacklisted(ctx context.Context, tokenHash string, tokenType constant.TokenType) (bool, error) {
	result, err := r.client.Get(ctx, blacklistKey(tokenHash, tokenType)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return result == "1", nil
}
