package session

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/classroom-portal/pkg/config"
)

// NewStore builds the session store selected by configuration.
func NewStore(cfg config.SessionConfig, client *redis.Client) (sessions.Store, error) {
	if cfg.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	var store sessions.Store
	switch cfg.Store {
	case config.SessionStoreRedis:
		if client == nil {
			return nil, errors.New("redis session store requires REDIS_ENABLED=true")
		}
		store = NewRedisStore(client, []byte(cfg.Secret))
	default:
		store = cookie.NewStore([]byte(cfg.Secret))
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
