package user

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/banana-math/BananaMathServer/internal/apperrors"
	"github.com/redis/go-redis/v9"
)

// One-time login verification codes. Issued on register/login, consumed by a
// single verify attempt whether it matches or not.

const codeTTL = 5 * time.Minute

type CodeStore interface {
	SaveCode(username, code string) error
	ConsumeCode(username, code string) (bool, error)
}

type RedisCodeStore struct {
	db *redis.Client
}

func NewRedisCodeStore(db *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{db: db}
}

func codeKey(username string) string {
	return "login_code:" + username
}

func (s *RedisCodeStore) SaveCode(username, code string) error {
	ctx := context.Background()
	if err := s.db.Set(ctx, codeKey(username), code, codeTTL).Err(); err != nil {
		return apperrors.NewStorageError("error saving verification code", err)
	}
	return nil
}

func (s *RedisCodeStore) ConsumeCode(username, code string) (bool, error) {
	ctx := context.Background()
	stored, err := s.db.GetDel(ctx, codeKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewStorageError("error reading verification code", err)
	}
	return stored == code, nil
}

func GenerateCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}
