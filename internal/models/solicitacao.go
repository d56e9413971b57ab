package models

import "time"

// Solicitacao representa um chamado de risco em árvore reportado
// por um cidadão, com os campos de atendimento do operador.
type Solicitacao struct {
	ID                        uint               `json:"id" gorm:"primaryKey;column:id_solicitacao"`
	Titulo                    string             `json:"titulo" gorm:"column:titulo;size:255;not null"`
	Descricao                 string             `json:"descricao" gorm:"column:descricao;type:text"`
	Categoria                 Categoria          `json:"categoria" gorm:"column:categoria;size:32;not null"`
	Latitude                  float64            `json:"latitude" gorm:"column:latitude;not null"`
	Longitude                 float64            `json:"longitude" gorm:"column:longitude;not null"`
	Status                    Status             `json:"status" gorm:"column:status;size:32;not null"`
	AtendimentoDescricao      *string            `json:"atendimentoDescricao,omitempty" gorm:"column:atendimento_descricao;type:text"`
	AtendimentoEncaminhamento *Encaminhamento    `json:"atendimentoEncaminhamento,omitempty" gorm:"column:atendimento_encaminhamento;size:32"`
	AtendimentoStatus         *AtendimentoStatus `json:"atendimentoStatus,omitempty" gorm:"column:atendimento_status;size:32"`
	AutorID                   string             `json:"autorId" gorm:"column:autor_id;size:36;not null"`
	Autor                     *Usuario           `json:"autor,omitempty" gorm:"foreignKey:AutorID"`
	Anexos                    []Anexo            `json:"anexos" gorm:"foreignKey:SolicitacaoID"`
	CreatedAt                 time.Time          `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt                 time.Time          `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Solicitacao) TableName() string {
	return "solicitacoes"
}
