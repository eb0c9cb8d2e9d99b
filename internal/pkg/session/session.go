package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/tsel-ticketmaster/tm-scan/pkg/errors"
	"github.com/tsel-ticketmaster/tm-scan/pkg/status"
)

type contextKey string

const accountContextKey contextKey = "session.account"

// Account is the authenticated actor attached to a request. Role is
// either "scanner" or "admin".
type Account struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Store interface {
	Get(ctx context.Context, key string) (Account, error)
	Set(ctx context.Context, key string, account Account, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

func SetAccountToCtx(ctx context.Context, account Account) context.Context {
	return context.WithValue(ctx, accountContextKey, account)
}

func GetAccountFromCtx(ctx context.Context) (Account, error) {
	account, ok := ctx.Value(accountContextKey).(Account)
	if !ok {
		return Account{}, errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "unauthorized scanner")
	}

	return account, nil
}

type redisSessionStore struct {
	logger *logrus.Logger
	client *redis.Client
}

func NewRedisSessionStore(logger *logrus.Logger, client *redis.Client) Store {
	return &redisSessionStore{
		logger: logger,
		client: client,
	}
}

func sessionKey(key string) string {
	return fmt.Sprintf("tm-scan:session:%s", key)
}

// Get implements Store.
func (s *redisSessionStore) Get(ctx context.Context, key string) (Account, error) {
	buff, err := s.client.Get(ctx, sessionKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Account{}, errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "unauthorized scanner")
		}
		s.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting session's properties")
	}

	var account Account
	if err := json.Unmarshal(buff, &account); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return Account{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while getting session's properties")
	}

	return account, nil
}

// Set implements Store.
func (s *redisSessionStore) Set(ctx context.Context, key string, account Account, expiration time.Duration) error {
	buff, _ := json.Marshal(account)

	if err := s.client.Set(ctx, sessionKey(key), buff, expiration).Err(); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while saving session's properties")
	}

	return nil
}

// Delete implements Store.
func (s *redisSessionStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, sessionKey(key)).Err(); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while deleting session's properties")
	}

	return nil
}
