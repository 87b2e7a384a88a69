package models

import "time"

// Contratante é o perfil de cliente de um usuário (1:1 com usuarios).
type Contratante struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UsuarioID uint    `gorm:"uniqueIndex;not null" json:"usuario_id"`
	Endereco  *string `gorm:"size:255" json:"endereco"`
	Telefone  *string `gorm:"size:20" json:"telefone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Contratante) TableName() string { return "contratantes" }

// Prestador é o perfil de prestador de serviço de um usuário (1:1 com usuarios).
type Prestador struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	UsuarioID uint     `gorm:"uniqueIndex;not null" json:"usuario_id"`
	Usuario   *Usuario `gorm:"foreignKey:UsuarioID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CNPJ      *string  `gorm:"column:cnpj_prestador;size:18" json:"cnpjPrestador"`
	Celular   *string  `gorm:"column:cel_prestador;size:20" json:"celPrestador"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Prestador) TableName() string { return "prestadores" }
