package models

import "time"

type TipoServico struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex;not null" json:"nomeServico"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (TipoServico) TableName() string { return "tipos_servico" }
