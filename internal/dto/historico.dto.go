package dto

import "time"

type AvaliacaoResumidaDTO struct {
	ID         uint      `json:"id"`
	Nota       int       `json:"nota"`
	Comentario *string   `json:"comentario"`
	CreatedAt  time.Time `json:"created_at"`
}

type HistoricoItemDTO struct {
	ID             uint                  `json:"id"`
	TipoServicoID  uint                  `json:"tipo_servico_id"`
	TipoNome       *string               `json:"tipo_nome"`
	DataServico    string                `json:"data_servico"`
	HoraServico    string                `json:"hora_servico"`
	DuracaoHoras   *float64              `json:"duracao_horas"`
	Endereco       string                `json:"endereco"`
	Descricao      *string               `json:"descricao"`
	PrestadorID    *uint                 `json:"prestador_id"`
	PrestadorNome  *string               `json:"prestador_nome"`
	PrestadorEmail *string               `json:"prestador_email"`
	CheckinAt      *time.Time            `json:"checkin_at"`
	StartAt        *time.Time            `json:"start_at"`
	EndAt          *time.Time            `json:"end_at"`
	Avaliacao      *AvaliacaoResumidaDTO `json:"avaliacao"`
}

type AvaliacaoCriadaDTO struct {
	OK bool `json:"ok"`
	ID uint `json:"id"`
}

type ResumoDTO struct {
	Media        float64     `json:"media"`
	Total        int         `json:"total"`
	Distribuicao map[int]int `json:"distribuicao"`
}
