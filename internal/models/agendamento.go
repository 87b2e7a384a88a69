package models

import (
	"time"

	"gorm.io/datatypes"
)

// Checkpoint guarda o estado de uma fase do QR (token, uso e horário do uso).
type Checkpoint struct {
	QR   *string    `gorm:"column:qr;size:64"`
	Used bool       `gorm:"column:used;not null;default:false"`
	At   *time.Time `gorm:"column:at"`
}

type Agendamento struct {
	ID uint `gorm:"primaryKey"`

	ContratanteID uint         `gorm:"not null;index"`
	Contratante   *Contratante `gorm:"foreignKey:ContratanteID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	PrestadorID *uint      `gorm:"index"`
	Prestador   *Prestador `gorm:"foreignKey:PrestadorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`

	TipoServicoID uint         `gorm:"not null"`
	TipoServico   *TipoServico `gorm:"foreignKey:TipoServicoID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	Descricao    *string        `gorm:"type:text"`
	DataServico  datatypes.Date `gorm:"not null;index"`
	HoraServico  datatypes.Time `gorm:"not null"`
	DuracaoHoras *float64       `gorm:"type:decimal(4,2)"`
	Endereco     string         `gorm:"size:255;not null"`

	Status string `gorm:"size:20;not null;default:'pendente';index"`

	Checkin Checkpoint `gorm:"embedded;embeddedPrefix:checkin_"`
	Start   Checkpoint `gorm:"embedded;embeddedPrefix:start_"`
	End     Checkpoint `gorm:"embedded;embeddedPrefix:end_"`

	Avaliacao *Avaliacao `gorm:"foreignKey:AgendamentoID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Agendamento) TableName() string { return "agendamentos" }
