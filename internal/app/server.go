package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Spok95/hifz-contest/internal/auth"
	"github.com/Spok95/hifz-contest/internal/importer"
	"github.com/Spok95/hifz-contest/internal/livestats"
	"github.com/Spok95/hifz-contest/internal/metrics"
	"github.com/Spok95/hifz-contest/internal/models"
)

// Store: всё, что HTTP-слою нужно от хранилища.
type Store interface {
	importer.Store

	Ping(ctx context.Context) error
	GetCompetitor(ctx context.Context, id string) (*models.Competitor, error)
	ListCompetitors(ctx context.Context) ([]models.Competitor, error)
	SetCompetitorStatus(ctx context.Context, id string, status models.Status) error
	DeleteCompetitor(ctx context.Context, id string) error

	UpsertEvaluation(ctx context.Context, e *models.Evaluation) error
	GetEvaluationByCompetitor(ctx context.Context, competitorID string) (*models.Evaluation, error)
	ListResults(ctx context.Context) ([]models.Result, error)
	GetResult(ctx context.Context, competitorID string) (*models.Result, error)
	UpsertActiveEvaluation(ctx context.Context, level, competitorID string) error

	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type Deps struct {
	Store        Store
	Tokens       *auth.Tokens
	Board        *livestats.Board
	Log          *zap.Logger
	DeleteSecret string
	LoginRate    int
	Location     *time.Location
	TrustProxy   bool // адрес клиента из заголовков прокси, только за своим прокси
}

type Server struct {
	store        Store
	tokens       *auth.Tokens
	board        *livestats.Board
	importer     *importer.Importer
	limiter      *IPRateLimiter
	log          *zap.Logger
	deleteSecret string
	loc          *time.Location
	trustProxy   bool
	now          func() time.Time
}

func NewServer(d Deps) *Server {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	rate := d.LoginRate
	if rate <= 0 {
		rate = 10
	}
	return &Server{
		store:        d.Store,
		tokens:       d.Tokens,
		board:        d.Board,
		importer:     importer.New(d.Store, log.Named("import")),
		limiter:      NewIPRateLimiter(rate),
		log:          log,
		deleteSecret: d.DeleteSecret,
		loc:          loc,
		trustProxy:   d.TrustProxy,
		now:          time.Now,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if s.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(s.logRequests, middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.With(RateLimit(s.limiter)).Post("/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/me", s.me)

			r.Route("/competitors", func(r chi.Router) {
				r.With(s.require(auth.ActionViewCompetitors)).Group(func(r chi.Router) {
					r.Get("/", s.listCompetitors)
					r.Get("/export.xlsx", s.exportCompetitors)
					r.Get("/print", s.printCompetitors)
				})
				r.With(s.require(auth.ActionRegister)).Post("/", s.registerCompetitor)
				r.With(s.require(auth.ActionImport)).Post("/import", s.importCompetitors)
				r.With(s.require(auth.ActionDelete)).Group(func(r chi.Router) {
					r.Delete("/{id}", s.deleteCompetitor)
					r.Post("/delete", s.bulkDelete)
				})
			})

			r.Route("/evaluations/{competitorID}", func(r chi.Router) {
				r.Use(s.require(auth.ActionEvaluate))
				r.Post("/open", s.openEvaluation)
				r.Put("/", s.saveEvaluation)
			})

			r.With(s.require(auth.ActionViewResults)).Get("/scoring/preview", s.scorePreview)

			r.Route("/results", func(r chi.Router) {
				r.Use(s.require(auth.ActionViewResults))
				r.Get("/", s.listResults)
				r.Get("/export.xlsx", s.exportResults)
				r.Get("/print", s.printResults)
				r.Get("/{competitorID}/certificate", s.certificate)
			})

			r.Route("/live", func(r chi.Router) {
				r.Use(s.require(auth.ActionViewLive))
				r.Get("/", s.live)
				r.Get("/levels.png", s.liveChart)
				r.Get("/active", s.liveActive)
			})
		})
	})
	return r
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
	defer cancel()
	t0 := time.Now()
	if err := s.store.Ping(ctx); err != nil {
		http.Error(w, "db not ok: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	metrics.ObserveDBPing(time.Since(t0))
	_, _ = w.Write([]byte("ok"))
}
