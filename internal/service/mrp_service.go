package service

import (
	"context"
	"errors"
	"fmt"

	"mrpestoque/internal/apierror"
	"mrpestoque/internal/dto"
	"mrpestoque/internal/metrics"
	"mrpestoque/internal/mrp"

	"github.com/rs/zerolog/log"
)

// MRPService runs material requirements planning against the current stock.
type MRPService interface {
	Calcular(ctx context.Context, req dto.CalcularMRPRequest) ([]dto.LinhaMRPResponse, error)
	BOM() []dto.ProdutoBOMResponse
}

type mrpService struct {
	engine  *mrp.Engine
	estoque EstoqueService
	metrics *metrics.Metrics
}

func NewMRPService(engine *mrp.Engine, estoque EstoqueService, m *metrics.Metrics) MRPService {
	return &mrpService{engine: engine, estoque: estoque, metrics: m}
}

// Calcular validates the demand, takes one stock snapshot and runs the engine.
// Invalid demand is rejected before the store is touched.
func (s *mrpService) Calcular(ctx context.Context, req dto.CalcularMRPRequest) ([]dto.LinhaMRPResponse, error) {
	if req.Bikes == nil || req.Computers == nil {
		s.metrics.MRPCalculos.WithLabelValues("invalido").Inc()
		return nil, apierror.Validacao("Quantidade de bicicletas ou computadores não fornecida.")
	}
	demanda := mrp.Demanda{mrp.Bicicleta: *req.Bikes, mrp.Computador: *req.Computers}

	if err := s.engine.ValidarDemanda(demanda); err != nil {
		s.metrics.MRPCalculos.WithLabelValues("invalido").Inc()
		return nil, demandaInvalida(err)
	}

	snap, err := s.estoque.Snapshot(ctx)
	if err != nil {
		s.metrics.MRPCalculos.WithLabelValues("erro").Inc()
		return nil, err
	}

	linhas, err := s.engine.Calcular(demanda, snap)
	if err != nil {
		s.metrics.MRPCalculos.WithLabelValues("invalido").Inc()
		return nil, demandaInvalida(err)
	}

	faltas := 0
	result := make([]dto.LinhaMRPResponse, 0, len(linhas))
	for _, l := range linhas {
		if l.AComprar > 0 {
			faltas++
		}
		result = append(result, dto.LinhaMRPResponse{
			Componente: l.Componente,
			Necessario: l.Necessario,
			EmEstoque:  l.EmEstoque,
			AComprar:   l.AComprar,
		})
	}
	s.metrics.MRPCalculos.WithLabelValues("ok").Inc()
	s.metrics.ComponentesAComprar.Set(float64(faltas))

	log.Info().
		Int("bikes", *req.Bikes).
		Int("computers", *req.Computers).
		Int("componentes_a_comprar", faltas).
		Msg("mrp calculado")
	return result, nil
}

func demandaInvalida(err error) error {
	var de *mrp.DemandaInvalidaError
	if errors.As(err, &de) {
		msg := "As quantidades de produção não podem ser negativas."
		if de.Excede {
			msg = fmt.Sprintf("Quantidade de produção acima do máximo permitido (%d).", de.Maximo)
		}
		return &apierror.Error{Kind: apierror.ErrValidacao, Message: msg, Cause: err}
	}
	return err
}

func (s *mrpService) BOM() []dto.ProdutoBOMResponse {
	bom := s.engine.BOM()
	out := make([]dto.ProdutoBOMResponse, 0, len(bom))
	for _, e := range bom {
		itens := make([]dto.ItemBOMResponse, 0, len(e.Itens))
		for _, it := range e.Itens {
			itens = append(itens, dto.ItemBOMResponse{Componente: it.Componente, PorUnidade: it.PorUnidade})
		}
		out = append(out, dto.ProdutoBOMResponse{Produto: string(e.Produto), Itens: itens})
	}
	return out
}
