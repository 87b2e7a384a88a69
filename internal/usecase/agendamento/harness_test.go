package agendamento

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/interserv/agendamento-api/internal/audit"
	domain "github.com/interserv/agendamento-api/internal/domain/agendamento"
	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/dbtest"
	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/infra/repository"
	"github.com/interserv/agendamento-api/internal/models"
	"github.com/interserv/agendamento-api/internal/qrtoken"
	"github.com/interserv/agendamento-api/internal/timezone"
)

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) count(action string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Action == action {
			n++
		}
	}
	return n
}

type harness struct {
	db   *gorm.DB
	repo *repository.AgendamentoGormRepository
	rec  *recorder
	now  time.Time
	tipo *models.TipoServico

	create    *CreateAgendamento
	listCli   *ListAgendamentosCliente
	listPend  *ListAgendamentosPendentes
	listPrest *ListAgendamentosPrestador
	accept    *AcceptAgendamento
	status    *GetStatus
	issue     *IssueQRCode
	scan      *ScanQRCode
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := dbtest.Open(t)
	repo := repository.NewAgendamentoGormRepository(db)
	rec := &recorder{}
	now := time.Date(2025, 3, 10, 14, 3, 0, 0, time.UTC)

	return &harness{
		db:   db,
		repo: repo,
		rec:  rec,
		now:  now,
		tipo: dbtest.TipoServico(t, db, "Elétrica básica"),

		create:    NewCreateAgendamento(repo, rec),
		listCli:   NewListAgendamentosCliente(repo),
		listPend:  NewListAgendamentosPendentes(repo),
		listPrest: NewListAgendamentosPrestador(repo),
		accept:    NewAcceptAgendamento(repo, rec),
		status:    NewGetStatus(repo),
		issue:     NewIssueQRCode(repo, qrtoken.New(), rec),
		scan:      NewScanQRCode(repo, timezone.Fixed(now), rec),
	}
}

func actorOf(u *models.Usuario) identity.Actor {
	return identity.Actor{UserID: u.ID, Role: identity.Role(u.Tipo)}
}

func (h *harness) contratante(t *testing.T) identity.Actor {
	u, _ := dbtest.Contratante(t, h.db)
	return actorOf(u)
}

func (h *harness) prestador(t *testing.T) (identity.Actor, *models.Prestador) {
	u, p := dbtest.Prestador(t, h.db)
	return actorOf(u), p
}

func (h *harness) input(data, hora string) CreateAgendamentoInput {
	return CreateAgendamentoInput{
		TipoServicoID: uintStr(h.tipo.ID),
		Data:          data,
		Hora:          hora,
		Endereco:      "Rua X, 10",
	}
}

func (h *harness) mustCreate(t *testing.T, actor identity.Actor, data, hora string) uint {
	t.Helper()
	out, err := h.create.Execute(context.Background(), actor, h.input(data, hora))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return out.ID
}

func (h *harness) mustToken(t *testing.T, actor identity.Actor, id uint, phase domain.Phase) string {
	t.Helper()
	out, err := h.issue.Execute(context.Background(), actor, IssueQRCodeInput{
		AgendamentoID: id,
		Phase:         string(phase),
		BaseURL:       "https://app.interserv.test",
	})
	if err != nil {
		t.Fatalf("issue %s: %v", phase, err)
	}
	return out.Token
}

func (h *harness) load(t *testing.T, id uint) *models.Agendamento {
	t.Helper()
	ag, err := h.repo.GetAgendamento(context.Background(), id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return ag
}

// assertInvariants confere os invariantes de estado em todas as linhas.
func (h *harness) assertInvariants(t *testing.T) {
	t.Helper()

	var ags []models.Agendamento
	if err := h.db.Find(&ags).Error; err != nil {
		t.Fatalf("find: %v", err)
	}

	for _, ag := range ags {
		pendente := ag.Status == string(domain.StatusPendente)
		if (ag.PrestadorID == nil) != pendente {
			t.Fatalf("agendamento %d: prestador=%v status=%s", ag.ID, ag.PrestadorID, ag.Status)
		}
		if ag.Start.At != nil && ag.Checkin.At == nil {
			t.Fatalf("agendamento %d: start sem checkin", ag.ID)
		}
		if ag.End.At != nil && ag.Start.At == nil {
			t.Fatalf("agendamento %d: end sem start", ag.ID)
		}
		for _, ph := range domain.Phases {
			cp := domain.CheckpointOf(&ag, ph)
			if cp.Used && (cp.At == nil || cp.QR == nil) {
				t.Fatalf("agendamento %d: %s usado sem at/qr", ag.ID, ph)
			}
		}
	}
}

func wantCode(t *testing.T, err error, kind httperr.Kind, code string) {
	t.Helper()
	if httperr.KindOf(err) != kind || !httperr.IsBusiness(err, code) {
		t.Fatalf("err = %v, want %s/%s", err, kind, code)
	}
}
