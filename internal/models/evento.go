package models

import "time"

// Evento é uma entrada imutável do histórico de uma solicitação.
// Eventos nunca são editados nem removidos; a ordenação é por CriadoEm
// (o ID autoincremental desempata inserções no mesmo instante).
type Evento struct {
	ID             uint         `json:"id" gorm:"primaryKey;column:id_evento"`
	SolicitacaoID  uint         `json:"solicitacaoId" gorm:"column:solicitacao_id;not null;index"`
	Solicitacao    *Solicitacao `json:"-" gorm:"foreignKey:SolicitacaoID;constraint:OnDelete:CASCADE"`
	Tipo           TipoEvento   `json:"tipo" gorm:"column:tipo;size:32;not null"`
	Descricao      *string      `json:"descricao,omitempty" gorm:"column:descricao;type:text"`
	StatusAnterior *Status      `json:"statusAnterior,omitempty" gorm:"column:status_anterior;size:32"`
	StatusNovo     *Status      `json:"statusNovo,omitempty" gorm:"column:status_novo;size:32"`
	AutorID        *string      `json:"autorId,omitempty" gorm:"column:autor_id;size:36"`
	CriadoEm       time.Time    `json:"criadoEm" gorm:"column:criado_em;autoCreateTime"`
}

func (Evento) TableName() string {
	return "eventos"
}
