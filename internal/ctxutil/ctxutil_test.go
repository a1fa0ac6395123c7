package ctxutil

import (
	"context"
	"testing"
	"time"

	"github.com/Spok95/hifz-contest/internal/models"
)

func TestSessionRoundTrip(t *testing.T) {
	if _, ok := Session(context.Background()); ok {
		t.Fatal("пустой контекст без сессии")
	}
	ctx := WithSession(context.Background(), models.Session{ID: 7, Username: "judge", Role: models.Evaluator})
	s, ok := Session(ctx)
	if !ok || s.Username != "judge" || s.Role != models.Evaluator {
		t.Fatalf("%+v %v", s, ok)
	}
}

func TestWithDBTimeout_RespectsShorterParent(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	ctx, c2 := WithDBTimeout(parent)
	defer c2()
	dl, ok := ctx.Deadline()
	if !ok || time.Until(dl) > 200*time.Millisecond {
		t.Fatalf("дедлайн должен наследоваться от родителя: %v", dl)
	}
}
