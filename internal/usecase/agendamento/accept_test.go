package agendamento

import (
	"context"
	"sync"
	"testing"

	"github.com/interserv/agendamento-api/internal/dbtest"
	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/httperr"
)

func TestAcceptSetsPrestador(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cli := h.contratante(t)
	prest, p := h.prestador(t)

	id := h.mustCreate(t, cli, "2025-03-10", "14:00")

	out, err := h.accept.Execute(ctx, prest, id)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if out.Status != "aceita" || out.PrestadorID == nil || *out.PrestadorID != p.ID {
		t.Fatalf("aceite = %+v", out)
	}

	_, err = h.accept.Execute(ctx, prest, id)
	wantCode(t, err, httperr.KindInvalidState, "somente_pendentes")

	h.assertInvariants(t)
}

func TestAcceptPreconditions(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cli := h.contratante(t)
	id := h.mustCreate(t, cli, "2025-03-10", "14:00")

	_, err := h.accept.Execute(ctx, cli, id)
	wantCode(t, err, httperr.KindForbidden, "apenas_prestadores")

	semPerfil := actorOf(dbtest.Usuario(t, h.db, "prestador"))
	_, err = h.accept.Execute(ctx, semPerfil, id)
	wantCode(t, err, httperr.KindConflict, "perfil_prestador_incompleto")

	prest, _ := h.prestador(t)
	_, err = h.accept.Execute(ctx, prest, 999)
	wantCode(t, err, httperr.KindNotFound, "agendamento_nao_encontrado")
}

func TestAcceptRejectsDoubleBooking(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cli := h.contratante(t)
	outro := h.contratante(t)
	prest, _ := h.prestador(t)

	first := h.mustCreate(t, cli, "2025-03-10", "14:00")
	second := h.mustCreate(t, outro, "2025-03-10", "14:00:00")

	if _, err := h.accept.Execute(ctx, prest, first); err != nil {
		t.Fatalf("accept first: %v", err)
	}

	_, err := h.accept.Execute(ctx, prest, second)
	wantCode(t, err, httperr.KindConflict, "conflito_de_horario")

	ag := h.load(t, second)
	if ag.Status != "pendente" || ag.PrestadorID != nil {
		t.Fatalf("second changed: %s %v", ag.Status, ag.PrestadorID)
	}

	// mesmo horário em outro dia não conflita
	third := h.mustCreate(t, outro, "2025-03-11", "14:00")
	if _, err := h.accept.Execute(ctx, prest, third); err != nil {
		t.Fatalf("accept third: %v", err)
	}

	h.assertInvariants(t)
}

func TestConcurrentAcceptOneWins(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	cli := h.contratante(t)
	id := h.mustCreate(t, cli, "2025-03-10", "14:00")

	p1, _ := h.prestador(t)
	p2, _ := h.prestador(t)

	var (
		wg     sync.WaitGroup
		start  = make(chan struct{})
		actors = []identity.Actor{p1, p2}
		errs   = make([]error, len(actors))
	)
	for i, actor := range actors {
		wg.Add(1)
		go func(i int, actor identity.Actor) {
			defer wg.Done()
			<-start
			_, errs[i] = h.accept.Execute(ctx, actor, id)
		}(i, actor)
	}
	close(start)
	wg.Wait()

	ok, invalid := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.KindOf(err) == httperr.KindInvalidState:
			invalid++
		default:
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if ok != 1 || invalid != 1 {
		t.Fatalf("ok=%d invalid=%d", ok, invalid)
	}
	if h.rec.count("agendamento_aceito") != 1 {
		t.Fatal("exactly one accept should be audited")
	}
	h.assertInvariants(t)
}
