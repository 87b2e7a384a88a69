package avaliacao

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/interserv/agendamento-api/internal/audit"
	"github.com/interserv/agendamento-api/internal/dbtest"
	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/infra/repository"
	"github.com/interserv/agendamento-api/internal/models"
)

type scenario struct {
	db     *gorm.DB
	create *CreateAvaliacao
	resumo *ResumoPrestador

	cli   identity.Actor
	contr *models.Contratante
	prest *models.Prestador
	tipo  *models.TipoServico

	// cada agendamento vai para um dia diferente por causa do índice de horário
	dias int
}

func newScenario(t *testing.T) *scenario {
	db := dbtest.Open(t)
	repo := repository.NewAvaliacaoGormRepository(db)

	u, c := dbtest.Contratante(t, db)
	_, p := dbtest.Prestador(t, db)

	return &scenario{
		db:     db,
		create: NewCreateAvaliacao(repo, audit.Nop{}),
		resumo: NewResumoPrestador(repo),
		cli:    identity.Actor{UserID: u.ID, Role: identity.RoleContratante},
		contr:  c,
		prest:  p,
		tipo:   dbtest.TipoServico(t, db, "Pintura de cômodo"),
	}
}

func (s *scenario) agendamento(t *testing.T, status string, concluido bool) uint {
	t.Helper()
	s.dias++

	ag := &models.Agendamento{
		ContratanteID: s.contr.ID,
		TipoServicoID: s.tipo.ID,
		DataServico:   datatypes.Date(time.Date(2025, 3, s.dias, 0, 0, 0, 0, time.UTC)),
		HoraServico:   datatypes.NewTime(14, 0, 0, 0),
		Endereco:      "Rua X, 10",
		Status:        status,
	}
	if status != "pendente" {
		ag.PrestadorID = &s.prest.ID
	}
	if concluido {
		at := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
		ag.End = models.Checkpoint{At: &at, Used: true}
	}
	if err := s.db.Create(ag).Error; err != nil {
		t.Fatalf("create agendamento: %v", err)
	}
	return ag.ID
}

func TestCreateAvaliacao(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	id := s.agendamento(t, "concluida", true)

	out, err := s.create.Execute(ctx, s.cli, CreateAvaliacaoInput{AgendamentoID: id, Nota: 5, Comentario: strPtr(" ótimo ")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var av models.Avaliacao
	if err := s.db.First(&av, out.ID).Error; err != nil {
		t.Fatal(err)
	}
	if av.PrestadorID != s.prest.ID || av.ClienteID != s.contr.ID || *av.Comentario != "ótimo" {
		t.Fatalf("avaliacao = %+v", av)
	}

	_, err = s.create.Execute(ctx, s.cli, CreateAvaliacaoInput{AgendamentoID: id, Nota: 4})
	if !httperr.IsBusiness(err, "agendamento_ja_avaliado") || httperr.KindOf(err) != httperr.KindConflict {
		t.Fatalf("second rating err = %v", err)
	}
}

func TestCreateAvaliacaoGatekeeping(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	aceito := s.agendamento(t, "aceita", false)
	concluido := s.agendamento(t, "concluida", true)

	cases := []struct {
		name  string
		actor identity.Actor
		in    CreateAvaliacaoInput
		code  string
	}{
		{"sem agendamento", s.cli, CreateAvaliacaoInput{Nota: 5}, "agendamento_obrigatorio"},
		{"nota fora da faixa", s.cli, CreateAvaliacaoInput{AgendamentoID: concluido, Nota: 6}, "nota_invalida"},
		{"nao concluido", s.cli, CreateAvaliacaoInput{AgendamentoID: aceito, Nota: 5}, "agendamento_nao_concluido"},
		{"inexistente", s.cli, CreateAvaliacaoInput{AgendamentoID: 999, Nota: 5}, "agendamento_nao_encontrado"},
		{"prestador", identity.Actor{UserID: s.prest.UsuarioID, Role: identity.RolePrestador}, CreateAvaliacaoInput{AgendamentoID: concluido, Nota: 5}, "apenas_contratantes"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.create.Execute(ctx, tt.actor, tt.in)
			if !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
		})
	}

	u, _ := dbtest.Contratante(t, s.db)
	_, err := s.create.Execute(ctx, identity.Actor{UserID: u.ID, Role: identity.RoleContratante}, CreateAvaliacaoInput{AgendamentoID: concluido, Nota: 5})
	if !httperr.IsBusiness(err, "agendamento_nao_pertence") {
		t.Fatalf("other client err = %v", err)
	}
}

func TestConcurrentRatingsOneWins(t *testing.T) {
	s := newScenario(t)
	id := s.agendamento(t, "concluida", true)

	var (
		wg   sync.WaitGroup
		errs = make([]error, 3)
	)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.create.Execute(context.Background(), s.cli, CreateAvaliacaoInput{AgendamentoID: id, Nota: 4})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else if !httperr.IsBusiness(err, "agendamento_ja_avaliado") {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("ratings created = %d", ok)
	}
}

func TestResumoPrestador(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	empty, err := s.resumo.Execute(ctx, s.prest.ID)
	if err != nil || empty.Total != 0 || empty.Media != 0 || len(empty.Distribuicao) != 5 {
		t.Fatalf("empty resumo = %+v, %v", empty, err)
	}

	for _, nota := range []int{5, 4, 4} {
		id := s.agendamento(t, "concluida", true)
		if _, err := s.create.Execute(ctx, s.cli, CreateAvaliacaoInput{AgendamentoID: id, Nota: nota}); err != nil {
			t.Fatalf("rate: %v", err)
		}
	}

	r, err := s.resumo.Execute(ctx, s.prest.ID)
	if err != nil {
		t.Fatalf("resumo: %v", err)
	}
	if r.Total != 3 || r.Media != 4.33 || r.Distribuicao[4] != 2 || r.Distribuicao[5] != 1 {
		t.Fatalf("resumo = %+v", r)
	}

	if _, err := s.resumo.Execute(ctx, 0); !httperr.IsBusiness(err, "prestador_invalido") {
		t.Fatalf("zero id err = %v", err)
	}
}

func strPtr(s string) *string { return &s }
