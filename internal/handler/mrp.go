package handler

import (
	"net/http"

	"mrpestoque/internal/apierror"
	"mrpestoque/internal/dto"
	"mrpestoque/internal/service"

	"github.com/gin-gonic/gin"
)

type MRPHandler struct{ svc service.MRPService }

func NewMRPHandler(svc service.MRPService) *MRPHandler {
	return &MRPHandler{svc: svc}
}

// Calcular godoc
// @Summary Calcula as necessidades de compra para bicicletas e computadores
// @Tags mrp
// @Accept json
// @Produce json
// @Param body body dto.CalcularMRPRequest true "Quantidades a produzir"
// @Success 200 {object} apierror.Envelope
// @Failure 400 {object} apierror.Envelope
// @Router /api/mrp [post]
func (h *MRPHandler) Calcular(c *gin.Context) {
	var req dto.CalcularMRPRequest
	if !bindAndValidate(c, &req, "Quantidade de bicicletas ou computadores não fornecida ou negativa.") {
		return
	}
	linhas, err := h.svc.Calcular(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(linhas))
}

// BOM GET /api/mrp/bom
func (h *MRPHandler) BOM(c *gin.Context) {
	c.JSON(http.StatusOK, apierror.OK(h.svc.BOM()))
}
