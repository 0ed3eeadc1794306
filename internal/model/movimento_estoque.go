package model

import "time"

// Movement kinds.
const (
	MovimentoCriacao  = "criacao"
	MovimentoAjuste   = "ajuste"
	MovimentoExclusao = "exclusao"
)

// MovimentoEstoque records every stock change of a component. It is written in
// the same transaction as the change and survives deletion of the component.
type MovimentoEstoque struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"`
	ComponenteID    uint   `gorm:"not null;index"`
	ComponenteNome  string `gorm:"size:255;not null"`
	Tipo            string `gorm:"size:16;not null"`
	Quantidade      int    `gorm:"not null"` // positive = entrada, negative = saida
	EstoqueAnterior int    `gorm:"not null"`
	EstoqueNovo     int    `gorm:"not null"`
	CreatedAt       time.Time
}

func (MovimentoEstoque) TableName() string { return "stock_movements" }
