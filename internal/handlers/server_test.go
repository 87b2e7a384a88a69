package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/interserv/agendamento-api/internal/audit"
	"github.com/interserv/agendamento-api/internal/cache"
	"github.com/interserv/agendamento-api/internal/config"
	"github.com/interserv/agendamento-api/internal/dbtest"
	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/middleware"
	"github.com/interserv/agendamento-api/internal/models"
	"github.com/interserv/agendamento-api/internal/routes"
)

const appURL = "https://app.interserv.test"

// syncAudit grava na hora, para o teste poder ler a trilha logo depois.
type syncAudit struct {
	logger *audit.Logger
}

func (s syncAudit) Dispatch(ev audit.Event) {
	_ = s.logger.Log(context.Background(), ev)
}

// memCache conta leituras e escritas do catálogo.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func (m *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = raw
	m.sets++
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

var _ cache.Cache = (*memCache)(nil)

type idOnly struct {
	ID uint `json:"id"`
}

type server struct {
	t     *testing.T
	db    *gorm.DB
	cfg   *config.Config
	cache *memCache
	h     http.Handler
}

func newServer(t *testing.T, opts ...func(*config.Config)) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	cfg := &config.Config{
		JWTSecret:         "segredo-de-teste",
		JWTTTL:            time.Hour,
		AppURL:            appURL,
		Timezone:          "America/Sao_Paulo",
		CatalogCacheTTL:   time.Minute,
		ScanRatePerMinute: 600,
		ScanRateBurst:     50,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	mc := &memCache{}

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Log:    zap.NewNop(),
		Cache:  mc,
		Audit:  syncAudit{logger: audit.New(db)},
	})

	return &server{t: t, db: db, cfg: cfg, cache: mc, h: r}
}

// with devolve uma cópia que reporta falhas no subteste t.
func (s *server) with(t *testing.T) *server {
	c := *s
	c.t = t
	return &c
}

func (s *server) tokenFor(u *models.Usuario) string {
	s.t.Helper()
	tok, err := middleware.SignToken(s.cfg.JWTSecret, u.ID, identity.Role(u.Tipo), time.Hour, time.Now())
	if err != nil {
		s.t.Fatalf("sign: %v", err)
	}
	return tok
}

// do envia body (quando não nil) como JSON e decodifica a resposta em out.
func (s *server) do(method, path, token string, body any, out any) int {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			s.t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func (s *server) wantError(method, path, token string, body any, status int, code string) {
	s.t.Helper()
	var e httperr.HTTPError
	got := s.do(method, path, token, body, &e)
	if got != status || e.Code != code {
		s.t.Fatalf("%s %s: status=%d code=%q, want %d %q", method, path, got, e.Code, status, code)
	}
}
