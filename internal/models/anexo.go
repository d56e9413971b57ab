package models

import "time"

// Anexo referencia uma mídia enviada (foto da árvore).
// A lista de anexos de uma solicitação é append-only.
type Anexo struct {
	ID            uint      `json:"id" gorm:"primaryKey;column:id_anexo"`
	SolicitacaoID uint      `json:"solicitacaoId" gorm:"column:solicitacao_id;not null;index"`
	URL           string    `json:"url" gorm:"column:url;size:512;not null"`
	Mime          string    `json:"mime" gorm:"column:mime;size:64;not null"`
	TamanhoBytes  int64     `json:"tamanhoBytes" gorm:"column:tamanho_bytes"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (Anexo) TableName() string {
	return "anexos"
}
