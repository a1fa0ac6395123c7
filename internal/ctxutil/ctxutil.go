package ctxutil

import (
	"context"
	"time"

	"github.com/Spok95/hifz-contest/internal/models"
)

// приватные ключи, чтобы исключить коллизии
type key int

const (
	keySession key = iota
	keyOpName
)

// WithSession/Session: прокидываем сессию пользователя в контекст
func WithSession(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, keySession, s)
}

func Session(ctx context.Context) (models.Session, bool) {
	v := ctx.Value(keySession)
	if v == nil {
		return models.Session{}, false
	}
	s, ok := v.(models.Session)
	return s, ok
}

// WithOp/Op: имя операции (для логов)
func WithOp(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyOpName, name)
}

func Op(ctx context.Context) (string, bool) {
	v := ctx.Value(keyOpName)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

var (
	DefaultDBTimeout = 5 * time.Second
)

// WithTimeout: удобная обёртка над context.WithTimeout.
func WithTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}

// WithDBTimeout: стандартный таймаут для БД.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		// если у родителя осталось меньше DefaultDBTimeout, берем остаток
		remain := time.Until(dl)
		if remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultDBTimeout)
}
