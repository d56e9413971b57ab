package models

import "time"

// Usuario é a identidade referenciada por solicitações e eventos.
type Usuario struct {
	ID        string    `json:"id" gorm:"primaryKey;column:id_usuario;size:36"`
	Nome      string    `json:"nome" gorm:"column:nome;size:255;not null"`
	Login     string    `json:"login" gorm:"column:login;size:255;uniqueIndex;not null"`
	SenhaHash string    `json:"-" gorm:"column:senha_hash;size:128"`
	Role      Role      `json:"role" gorm:"column:role;size:32;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (Usuario) TableName() string {
	return "usuarios"
}
