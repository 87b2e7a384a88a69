package models

import "time"

type Usuario struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	NomeUsuario string  `gorm:"column:nome_usuario;size:100;not null" json:"nomeUsuario"`
	CPFUsuario  *string `gorm:"column:cpf_usuario;size:14;uniqueIndex" json:"cpfUsuario"`
	Email       string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	SenhaHash   string  `gorm:"column:senha;size:255;not null" json:"-"`
	Tipo        string  `gorm:"size:20;not null" json:"tipo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Usuario) TableName() string { return "usuarios" }
