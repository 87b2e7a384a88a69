package dto

import (
	"time"

	"github.com/interserv/agendamento-api/internal/models"
)

// CheckpointsDTO expõe os horários e flags das três etapas de QR (nunca os tokens).
type CheckpointsDTO struct {
	CheckinAt   *time.Time `json:"checkin_at"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	CheckinUsed bool       `json:"checkin_used"`
	StartUsed   bool       `json:"start_used"`
	EndUsed     bool       `json:"end_used"`
}

type AgendamentoDTO struct {
	ID            uint      `json:"id"`
	PrestadorID   *uint     `json:"prestador_id"`
	ContratanteID uint      `json:"contratante_id"`
	TipoServicoID uint      `json:"tipo_servico_id"`
	Descricao     *string   `json:"descricao"`
	DataServico   string    `json:"data_servico"`
	HoraServico   string    `json:"hora_servico"`
	DuracaoHoras  *float64  `json:"duracao_horas"`
	Endereco      string    `json:"endereco"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	TipoNome      *string   `json:"tipo_nome"`

	*CheckpointsDTO
}

const DateLayout = "2006-01-02"

func DataServico(ag *models.Agendamento) string {
	return time.Time(ag.DataServico).Format(DateLayout)
}

func NewCheckpoints(ag *models.Agendamento) *CheckpointsDTO {
	return &CheckpointsDTO{
		CheckinAt:   ag.Checkin.At,
		StartAt:     ag.Start.At,
		EndAt:       ag.End.At,
		CheckinUsed: ag.Checkin.Used,
		StartUsed:   ag.Start.Used,
		EndUsed:     ag.End.Used,
	}
}

// NewAgendamento monta a projeção pública; withQR inclui os campos das etapas.
func NewAgendamento(ag *models.Agendamento, withQR bool) AgendamentoDTO {
	out := AgendamentoDTO{
		ID:            ag.ID,
		PrestadorID:   ag.PrestadorID,
		ContratanteID: ag.ContratanteID,
		TipoServicoID: ag.TipoServicoID,
		Descricao:     ag.Descricao,
		DataServico:   DataServico(ag),
		HoraServico:   ag.HoraServico.String(),
		DuracaoHoras:  ag.DuracaoHoras,
		Endereco:      ag.Endereco,
		Status:        ag.Status,
		CreatedAt:     ag.CreatedAt,
	}

	if ag.TipoServico != nil {
		nome := ag.TipoServico.Nome
		out.TipoNome = &nome
	}
	if withQR {
		out.CheckpointsDTO = NewCheckpoints(ag)
	}
	return out
}

func NewAgendamentos(ags []models.Agendamento, withQR bool) []AgendamentoDTO {
	out := make([]AgendamentoDTO, 0, len(ags))
	for i := range ags {
		out = append(out, NewAgendamento(&ags[i], withQR))
	}
	return out
}

type AceiteDTO struct {
	OK          bool   `json:"ok"`
	ID          uint   `json:"id"`
	Status      string `json:"status"`
	PrestadorID *uint  `json:"prestador_id"`
}

type QRCodeDTO struct {
	ID    uint   `json:"id"`
	Phase string `json:"phase"`
	Token string `json:"token"`
	URL   string `json:"url"`
}

type ScanDTO struct {
	OK     bool      `json:"ok"`
	ID     uint      `json:"id"`
	Phase  string    `json:"phase"`
	At     time.Time `json:"at"`
	Status string    `json:"status"`
}

type StatusDTO struct {
	ID            uint       `json:"id"`
	Status        string     `json:"status"`
	CheckinAt     *time.Time `json:"checkin_at"`
	StartAt       *time.Time `json:"start_at"`
	EndAt         *time.Time `json:"end_at"`
	TipoNome      *string    `json:"tipo_nome"`
	PrestadorNome *string    `json:"prestador_nome"`
	Avaliado      bool       `json:"avaliado"`
}
