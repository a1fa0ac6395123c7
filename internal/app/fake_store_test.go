package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Spok95/hifz-contest/internal/db"
	"github.com/Spok95/hifz-contest/internal/models"
)

// memStore: хранилище в памяти для тестов обработчиков.
type memStore struct {
	mu      sync.Mutex
	comps   map[string]models.Competitor
	evals   map[string]models.Evaluation
	active  map[string]models.ActiveEvaluation
	users   map[string]models.User
	nextID  int64
	seq     int
	failDel map[string]bool

	statusErr error
}

// errBadUUID повторяет ответ Postgres на id не в формате UUID.
var errBadUUID = errors.New(`ERROR: invalid input syntax for type uuid (SQLSTATE 22P02)`)

func checkUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errBadUUID
	}
	return nil
}

func newMemStore() *memStore {
	return &memStore{
		comps:   map[string]models.Competitor{},
		evals:   map[string]models.Evaluation{},
		active:  map[string]models.ActiveEvaluation{},
		users:   map[string]models.User{},
		failDel: map[string]bool{},
	}
}

func (m *memStore) add(c models.Competitor) models.Competitor {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = models.NotEvaluated
	}
	m.seq++
	c.CreatedAt = time.Date(2026, 1, 1, 0, 0, m.seq, 0, time.UTC)
	m.comps[c.ID] = c
	return c
}

func (m *memStore) Ping(context.Context) error { return nil }

func (m *memStore) CompetitorExists(_ context.Context, key models.DuplicateKey) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.comps {
		if c.Key() == key {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) InsertCompetitor(_ context.Context, c *models.Competitor) error {
	*c = m.add(*c)
	return nil
}

func (m *memStore) GetCompetitor(_ context.Context, id string) (*models.Competitor, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comps[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &c, nil
}

func (m *memStore) ListCompetitors(context.Context) ([]models.Competitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Competitor, 0, len(m.comps))
	for _, c := range m.comps {
		out = append(out, c)
	}
	return out, nil
}

func (m *memStore) SetCompetitorStatus(_ context.Context, id string, st models.Status) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statusErr != nil {
		return m.statusErr
	}
	c, ok := m.comps[id]
	if !ok {
		return db.ErrNotFound
	}
	c.Status = st
	m.comps[id] = c
	return nil
}

func (m *memStore) DeleteCompetitor(_ context.Context, id string) error {
	if err := checkUUID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDel[id] {
		return errors.New("connection reset")
	}
	if _, ok := m.comps[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.comps, id)
	delete(m.evals, id)
	return nil
}

func (m *memStore) UpsertEvaluation(_ context.Context, e *models.Evaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	if prev, ok := m.evals[e.CompetitorID]; ok {
		e.ID, e.CreatedAt = prev.ID, prev.CreatedAt
	} else {
		m.nextID++
		e.ID, e.CreatedAt = m.nextID, now
	}
	e.UpdatedAt = now
	m.evals[e.CompetitorID] = *e
	return nil
}

func (m *memStore) GetEvaluationByCompetitor(_ context.Context, id string) (*models.Evaluation, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.evals[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &e, nil
}

func (m *memStore) ListEvaluations(context.Context) ([]models.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Evaluation, 0, len(m.evals))
	for _, e := range m.evals {
		out = append(out, e)
	}
	return out, nil
}

func (m *memStore) ListResults(context.Context) ([]models.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Result, 0, len(m.evals))
	for id, e := range m.evals {
		out = append(out, models.Result{Evaluation: e, Competitor: m.comps[id]})
	}
	return out, nil
}

func (m *memStore) GetResult(_ context.Context, id string) (*models.Result, error) {
	if err := checkUUID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.evals[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &models.Result{Evaluation: e, Competitor: m.comps[id]}, nil
}

func (m *memStore) UpsertActiveEvaluation(_ context.Context, level, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[level] = models.ActiveEvaluation{Level: level, CompetitorID: id, UpdatedAt: time.Now()}
	return nil
}

func (m *memStore) ListActiveEvaluations(context.Context) ([]models.ActiveEvaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ActiveEvaluation, 0, len(m.active))
	for _, a := range m.active {
		out = append(out, a)
	}
	return out, nil
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &u, nil
}
