package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"mrpestoque/internal/apierror"
	"mrpestoque/internal/dto"
	"mrpestoque/internal/infra"
	"mrpestoque/internal/metrics"
	"mrpestoque/internal/model"
	"mrpestoque/internal/repository"

	"github.com/rs/zerolog/log"
)

// EstoqueService defines the inventory store operations exposed over HTTP,
// plus the stock snapshot consumed by MRP.
type EstoqueService interface {
	Listar(ctx context.Context) ([]dto.ComponenteResponse, error)
	ObterPorID(ctx context.Context, id uint) (*dto.ComponenteResponse, error)
	Criar(ctx context.Context, req dto.CriarComponenteRequest) (*dto.ComponenteResponse, error)
	AtualizarEstoque(ctx context.Context, id uint, req dto.AtualizarEstoqueRequest) (*dto.ComponenteResponse, error)
	Excluir(ctx context.Context, id uint) error
	ListarMovimentos(ctx context.Context, id uint) ([]dto.MovimentoResponse, error)
	Snapshot(ctx context.Context) (map[string]int, error)
}

type estoqueService struct {
	repo    repository.ComponenteRepository
	cb      *infra.CircuitBreaker
	cache   SnapshotCache
	metrics *metrics.Metrics

	// geracao counts committed writes. A snapshot read is only cached if no
	// write committed while it ran; cacheMu orders that check against Invalidate.
	cacheMu sync.Mutex
	geracao uint64
}

func NewEstoqueService(repo repository.ComponenteRepository, cb *infra.CircuitBreaker, cache SnapshotCache, m *metrics.Metrics) EstoqueService {
	return &estoqueService{repo: repo, cb: cb, cache: cache, metrics: m}
}

// IsStoreFailure is the breaker classifier: only persistence errors count,
// never a 404 or a duplicate name.
func IsStoreFailure(err error) bool {
	return err != nil && errors.Is(err, apierror.ErrPersistencia)
}

// guard runs fn through the store circuit breaker.
func (s *estoqueService) guard(fn func() error) error {
	err := s.cb.Execute(fn)
	if errors.Is(err, infra.ErrCircuitOpen) {
		return apierror.Persistencia("Armazenamento de estoque indisponível. Tente novamente em instantes.", err)
	}
	return err
}

// invalidarSnapshot must run after the write has committed.
func (s *estoqueService) invalidarSnapshot(ctx context.Context) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.geracao++
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("snapshot cache invalidation failed")
	}
}

func (s *estoqueService) geracaoAtual() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.geracao
}

// guardarSnapshot caches snap unless a write committed since geracao was read.
func (s *estoqueService) guardarSnapshot(ctx context.Context, geracao uint64, snap map[string]int) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.geracao != geracao {
		log.Debug().Msg("snapshot not cached: stock changed during read")
		return
	}
	if err := s.cache.Set(ctx, snap); err != nil {
		log.Warn().Err(err).Msg("snapshot cache write failed")
	}
}

func mapComponente(c model.Componente) dto.ComponenteResponse {
	return dto.ComponenteResponse{ID: c.ID, Name: c.Name, StockQuantity: c.StockQuantity}
}

func (s *estoqueService) Listar(ctx context.Context) ([]dto.ComponenteResponse, error) {
	var list []model.Componente
	err := s.guard(func() (err error) {
		list, err = s.repo.Listar(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	result := make([]dto.ComponenteResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapComponente(c))
	}
	return result, nil
}

func (s *estoqueService) ObterPorID(ctx context.Context, id uint) (*dto.ComponenteResponse, error) {
	var c *model.Componente
	err := s.guard(func() (err error) {
		c, err = s.repo.ObterPorID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := mapComponente(*c)
	return &resp, nil
}

func (s *estoqueService) Criar(ctx context.Context, req dto.CriarComponenteRequest) (*dto.ComponenteResponse, error) {
	if req.Name == nil || req.StockQuantity == nil {
		return nil, apierror.Validacao("Dados incompletos para criar componente.")
	}
	nome := strings.TrimSpace(*req.Name)
	if nome == "" {
		return nil, apierror.Validacao("Dados incompletos para criar componente.")
	}
	if *req.StockQuantity < 0 {
		return nil, apierror.Validacao("A quantidade em estoque não pode ser negativa.")
	}

	c := &model.Componente{Name: nome, StockQuantity: *req.StockQuantity}
	if err := s.guard(func() error { return s.repo.Criar(ctx, c) }); err != nil {
		return nil, err
	}
	s.invalidarSnapshot(ctx)
	log.Info().Uint("componente_id", c.ID).Str("name", c.Name).Int("stock_quantity", c.StockQuantity).Msg("componente criado")

	resp := mapComponente(*c)
	return &resp, nil
}

func (s *estoqueService) AtualizarEstoque(ctx context.Context, id uint, req dto.AtualizarEstoqueRequest) (*dto.ComponenteResponse, error) {
	if id == 0 || req.StockQuantity == nil {
		return nil, apierror.Validacao("ID do componente ou nova quantidade não fornecidos.")
	}
	if *req.StockQuantity < 0 {
		return nil, apierror.Validacao("A quantidade em estoque não pode ser negativa.")
	}

	var c *model.Componente
	err := s.guard(func() (err error) {
		c, err = s.repo.AtualizarEstoque(ctx, id, *req.StockQuantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidarSnapshot(ctx)
	log.Info().Uint("componente_id", id).Int("stock_quantity", c.StockQuantity).Msg("estoque atualizado")

	resp := mapComponente(*c)
	return &resp, nil
}

func (s *estoqueService) Excluir(ctx context.Context, id uint) error {
	if err := s.guard(func() error { return s.repo.Excluir(ctx, id) }); err != nil {
		return err
	}
	s.invalidarSnapshot(ctx)
	log.Info().Uint("componente_id", id).Msg("componente excluído")
	return nil
}

func (s *estoqueService) ListarMovimentos(ctx context.Context, id uint) ([]dto.MovimentoResponse, error) {
	var movs []model.MovimentoEstoque
	err := s.guard(func() (err error) {
		movs, err = s.repo.ListarMovimentos(ctx, id, 100)
		return err
	})
	if err != nil {
		return nil, err
	}
	// No history and no component: the id never existed.
	if len(movs) == 0 {
		if _, err := s.ObterPorID(ctx, id); err != nil {
			return nil, err
		}
	}
	result := make([]dto.MovimentoResponse, 0, len(movs))
	for _, m := range movs {
		result = append(result, dto.MovimentoResponse{
			ID:              m.ID,
			Tipo:            m.Tipo,
			Quantidade:      m.Quantidade,
			EstoqueAnterior: m.EstoqueAnterior,
			EstoqueNovo:     m.EstoqueNovo,
			CreatedAt:       m.CreatedAt,
		})
	}
	return result, nil
}

// Snapshot returns name → stock for every component. A cached copy is served
// when present; writes through this service invalidate it.
func (s *estoqueService) Snapshot(ctx context.Context) (map[string]int, error) {
	geracao := s.geracaoAtual()
	snap, ok, err := s.cache.Get(ctx)
	switch {
	case err != nil:
		s.metrics.SnapshotCache.WithLabelValues("erro").Inc()
		log.Warn().Err(err).Msg("snapshot cache read failed, falling back to store")
	case ok:
		s.metrics.SnapshotCache.WithLabelValues("hit").Inc()
		return snap, nil
	default:
		s.metrics.SnapshotCache.WithLabelValues("miss").Inc()
	}

	err = s.guard(func() (err error) {
		snap, err = s.repo.Snapshot(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.guardarSnapshot(ctx, geracao, snap)
	return snap, nil
}
