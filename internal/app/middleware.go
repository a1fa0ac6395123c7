package app

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Spok95/hifz-contest/internal/auth"
	"github.com/Spok95/hifz-contest/internal/ctxutil"
	"github.com/Spok95/hifz-contest/internal/metrics"
)

// logRequests пишет строку на каждый запрос и считает метрику по шаблону маршрута.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		s.log.Info("http",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// authenticate кладёт сессию из bearer-токена в контекст.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || raw == "" {
			ErrorResponse(w, http.StatusUnauthorized, "يلزم تسجيل الدخول")
			return
		}
		sess, err := s.tokens.Parse(raw)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "انتهت الجلسة، سجّل الدخول مجدداً")
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxutil.WithSession(r.Context(), sess)))
	})
}

// require пропускает дальше, только если роль сессии разрешает действие.
func (s *Server) require(a auth.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := ctxutil.Session(r.Context())
			if err := auth.Require(sess, a); err != nil {
				s.fail(w, r, err)
				return
			}
			ctx := ctxutil.WithOp(r.Context(), string(a))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
