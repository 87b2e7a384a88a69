package handlers_test

import (
	"net/http"
	"testing"

	"github.com/interserv/agendamento-api/internal/dbtest"
)

func TestListTiposOrderedAndCached(t *testing.T) {
	s := newServer(t)
	dbtest.TipoServico(t, s.db, "Pintura de cômodo")
	dbtest.TipoServico(t, s.db, "Elétrica básica")

	type tipo struct {
		ID   uint   `json:"id"`
		Nome string `json:"nomeServico"`
	}

	var first []tipo
	if code := s.do(http.MethodGet, "/api/tipos-servico", "", nil, &first); code != http.StatusOK {
		t.Fatalf("status=%d", code)
	}
	if len(first) != 2 || first[0].Nome != "Elétrica básica" || first[1].Nome != "Pintura de cômodo" {
		t.Fatalf("tipos = %+v", first)
	}

	dbtest.TipoServico(t, s.db, "Hidráulica básica")

	var second []tipo
	s.do(http.MethodGet, "/api/tipos-servico", "", nil, &second)
	if len(second) != 2 {
		t.Fatalf("second call should come from cache, got %d items", len(second))
	}
	if s.cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", s.cache.sets)
	}
}
