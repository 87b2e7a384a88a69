package agendamento

import (
	"strings"

	"github.com/interserv/agendamento-api/internal/models"
)

// Phase é uma das três etapas verificadas por QR, nesta ordem.
type Phase string

const (
	PhaseCheckin Phase = "checkin"
	PhaseStart   Phase = "start"
	PhaseEnd     Phase = "end"
)

var Phases = []Phase{PhaseCheckin, PhaseStart, PhaseEnd}

func ParsePhase(s string) (Phase, error) {
	switch p := Phase(strings.TrimSpace(s)); p {
	case PhaseCheckin, PhaseStart, PhaseEnd:
		return p, nil
	}
	return "", ErrPhaseInvalida
}

// Previous devolve a etapa que precisa estar registrada antes desta.
func (p Phase) Previous() (Phase, bool) {
	switch p {
	case PhaseStart:
		return PhaseCheckin, true
	case PhaseEnd:
		return PhaseStart, true
	}
	return "", false
}

// Columns são as colunas da tabela agendamentos que guardam a etapa.
type Columns struct {
	QR   string
	Used string
	At   string
}

func (p Phase) Columns() Columns {
	switch p {
	case PhaseCheckin:
		return Columns{QR: "checkin_qr", Used: "checkin_used", At: "checkin_at"}
	case PhaseStart:
		return Columns{QR: "start_qr", Used: "start_used", At: "start_at"}
	case PhaseEnd:
		return Columns{QR: "end_qr", Used: "end_used", At: "end_at"}
	}
	panic("agendamento: fase desconhecida " + string(p))
}

// CheckpointOf seleciona o checkpoint da etapa dentro do agendamento.
func CheckpointOf(ag *models.Agendamento, p Phase) *models.Checkpoint {
	switch p {
	case PhaseCheckin:
		return &ag.Checkin
	case PhaseStart:
		return &ag.Start
	case PhaseEnd:
		return &ag.End
	}
	panic("agendamento: fase desconhecida " + string(p))
}
