package dto

import "time"

// ── Request DTOs ──────────────────────────────────────────────────────────────

// Pointers distinguish a missing field from an explicit zero.
type CriarComponenteRequest struct {
	Name          *string `json:"name"           validate:"required,min=1,max=255"`
	StockQuantity *int    `json:"stock_quantity" validate:"required,min=0"`
}

type AtualizarEstoqueRequest struct {
	StockQuantity *int `json:"stock_quantity" validate:"required,min=0"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ComponenteResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
}

type MovimentoResponse struct {
	ID              uint      `json:"id"`
	Tipo            string    `json:"tipo"`
	Quantidade      int       `json:"quantidade"`
	EstoqueAnterior int       `json:"estoque_anterior"`
	EstoqueNovo     int       `json:"estoque_novo"`
	CreatedAt       time.Time `json:"created_at"`
}
