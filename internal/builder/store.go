package builder

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pkgerrors "github.com/carmodifyx/modifyx-backend/pkg/errors"
)

// SessionStore persists in-progress builds.
type SessionStore interface {
	Load(ctx context.Context, userID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, userID string) error
}

// kvStore is the slice of the redis client the session store uses.
type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	BuilderSessionKey(userID string) string
}

type redisSessionStore struct {
	kv  kvStore
	ttl time.Duration
}

// NewRedisSessionStore builds a Redis-backed session store. Sessions
// expire after the TTL so abandoned builds clean themselves up.
func NewRedisSessionStore(kv kvStore, ttl time.Duration) SessionStore {
	return &redisSessionStore{kv: kv, ttl: ttl}
}

// Load returns the user's session, or a fresh empty one when none exists.
func (r *redisSessionStore) Load(ctx context.Context, userID string) (*Session, error) {
	raw, err := r.kv.Get(ctx, r.kv.BuilderSessionKey(userID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return NewSession(userID), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading builder session")
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding builder session")
	}
	if session.Options == nil {
		session.Options = []OptionSelection{}
	}
	return &session, nil
}

func (r *redisSessionStore) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(session)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding builder session")
	}
	if err := r.kv.Set(ctx, r.kv.BuilderSessionKey(session.UserID), string(payload), r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving builder session")
	}
	return nil
}

func (r *redisSessionStore) Delete(ctx context.Context, userID string) error {
	if err := r.kv.Del(ctx, r.kv.BuilderSessionKey(userID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting builder session")
	}
	return nil
}
