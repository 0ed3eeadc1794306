package handler

import (
	"net/http"

	"mrpestoque/internal/apierror"
	"mrpestoque/internal/dto"
	"mrpestoque/internal/service"

	"github.com/gin-gonic/gin"
)

type EstoqueHandler struct{ svc service.EstoqueService }

func NewEstoqueHandler(svc service.EstoqueService) *EstoqueHandler {
	return &EstoqueHandler{svc: svc}
}

// Listar godoc
// @Summary Lista todos os componentes do estoque
// @Tags estoque
// @Produce json
// @Success 200 {object} apierror.Envelope
// @Router /api/estoque [get]
func (h *EstoqueHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// ObterPorID GET /api/estoque/:id
func (h *EstoqueHandler) ObterPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// Criar POST /api/estoque
func (h *EstoqueHandler) Criar(c *gin.Context) {
	var req dto.CriarComponenteRequest
	if !bindAndValidate(c, &req, "Dados incompletos para criar componente.") {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apierror.OKMsg("Componente criado com sucesso.", resp))
}

// AtualizarEstoque PUT /api/estoque/:id. Only stock_quantity is mutable.
func (h *EstoqueHandler) AtualizarEstoque(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AtualizarEstoqueRequest
	if !bindAndValidate(c, &req, "ID do componente ou nova quantidade não fornecidos.") {
		return
	}
	resp, err := h.svc.AtualizarEstoque(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OKMsg("Estoque do componente atualizado com sucesso.", resp))
}

// Excluir DELETE /api/estoque/:id
func (h *EstoqueHandler) Excluir(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OKMsg("Componente excluído com sucesso.", nil))
}

// ListarMovimentos GET /api/estoque/:id/movimentos
func (h *EstoqueHandler) ListarMovimentos(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarMovimentos(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}
