package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"mrpestoque/internal/apierror"
	"mrpestoque/internal/model"
)

// MemoryComponenteRepository keeps components in process memory. It backs the
// "memory" store driver for local runs and the HTTP tests.
type MemoryComponenteRepository struct {
	mu          sync.RWMutex
	componentes map[uint]model.Componente
	movimentos  []model.MovimentoEstoque
	nextID      uint
	nextMovID   uint
	now         func() time.Time
}

var _ ComponenteRepository = (*MemoryComponenteRepository)(nil)

func NewMemoryComponenteRepository() *MemoryComponenteRepository {
	return &MemoryComponenteRepository{
		componentes: make(map[uint]model.Componente),
		now:         time.Now,
	}
}

func (r *MemoryComponenteRepository) Listar(_ context.Context) ([]model.Componente, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]model.Componente, 0, len(r.componentes))
	for _, c := range r.componentes {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *MemoryComponenteRepository) ObterPorID(_ context.Context, id uint) (*model.Componente, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.componentes[id]
	if !ok {
		return nil, apierror.NaoEncontrado(msgNaoEncontrado)
	}
	return &c, nil
}

func (r *MemoryComponenteRepository) Criar(_ context.Context, c *model.Componente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.criar(c)
}

// must be called under write lock
func (r *MemoryComponenteRepository) criar(c *model.Componente) error {
	for _, existing := range r.componentes {
		if existing.Name == c.Name {
			return apierror.Conflito("Já existe um componente com esse nome.", nil)
		}
	}
	r.nextID++
	now := r.now()
	c.ID = r.nextID
	c.CreatedAt, c.UpdatedAt = now, now
	r.componentes[c.ID] = *c
	r.registrar(*c, model.MovimentoCriacao, 0, c.StockQuantity)
	return nil
}

func (r *MemoryComponenteRepository) AtualizarEstoque(_ context.Context, id uint, quantidade int) (*model.Componente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.componentes[id]
	if !ok {
		return nil, apierror.NaoEncontrado(msgNaoEncontrado)
	}
	anterior := c.StockQuantity
	c.StockQuantity = quantidade
	c.UpdatedAt = r.now()
	r.componentes[id] = c
	r.registrar(c, model.MovimentoAjuste, anterior, quantidade)
	return &c, nil
}

func (r *MemoryComponenteRepository) Excluir(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.componentes[id]
	if !ok {
		return apierror.NaoEncontrado(msgNaoEncontrado)
	}
	delete(r.componentes, id)
	r.registrar(c, model.MovimentoExclusao, c.StockQuantity, 0)
	return nil
}

func (r *MemoryComponenteRepository) Snapshot(_ context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := make(map[string]int, len(r.componentes))
	for _, c := range r.componentes {
		snap[c.Name] = c.StockQuantity
	}
	return snap, nil
}

func (r *MemoryComponenteRepository) ListarMovimentos(_ context.Context, componenteID uint, limit int) ([]model.MovimentoEstoque, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.MovimentoEstoque, 0)
	for i := len(r.movimentos) - 1; i >= 0 && len(out) < limit; i-- {
		if r.movimentos[i].ComponenteID == componenteID {
			out = append(out, r.movimentos[i])
		}
	}
	return out, nil
}

func (r *MemoryComponenteRepository) SemearSeVazio(_ context.Context, itens []model.Componente) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.componentes) > 0 {
		return 0, nil
	}
	for i := range itens {
		c := itens[i]
		if err := r.criar(&c); err != nil {
			return i, err
		}
	}
	return len(itens), nil
}

// must be called under write lock
func (r *MemoryComponenteRepository) registrar(c model.Componente, tipo string, anterior, novo int) {
	r.nextMovID++
	r.movimentos = append(r.movimentos, model.MovimentoEstoque{
		ID:              r.nextMovID,
		ComponenteID:    c.ID,
		ComponenteNome:  c.Name,
		Tipo:            tipo,
		Quantidade:      novo - anterior,
		EstoqueAnterior: anterior,
		EstoqueNovo:     novo,
		CreatedAt:       r.now(),
	})
}
