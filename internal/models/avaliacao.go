package models

import "time"

type Avaliacao struct {
	ID uint `gorm:"primaryKey"`

	AgendamentoID uint `gorm:"not null;uniqueIndex:idx_avaliacao_agendamento_cliente"`
	ClienteID     uint `gorm:"not null;uniqueIndex:idx_avaliacao_agendamento_cliente"`
	// copiado do agendamento na criação; não muda depois
	PrestadorID uint `gorm:"not null;index"`

	Nota       int     `gorm:"not null"`
	Comentario *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Avaliacao) TableName() string { return "avaliacoes" }
