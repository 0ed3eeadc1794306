package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"mrpestoque/internal/apierror"
	"mrpestoque/internal/model"
)

// ── In-memory ComponenteRepository stub ──────────────────────────────────────

type stubComponenteRepo struct {
	mu            sync.Mutex
	componentes   map[uint]*model.Componente
	movimentos    []model.MovimentoEstoque
	nextID        uint
	failWith      error
	snapshotCalls int
	// aposLerSnapshot runs once, after the next Snapshot has read its rows.
	aposLerSnapshot func()
}

func newStubRepo(itens ...model.Componente) *stubComponenteRepo {
	r := &stubComponenteRepo{componentes: make(map[uint]*model.Componente)}
	for i := range itens {
		_ = r.Criar(context.Background(), &itens[i])
	}
	return r
}

func (r *stubComponenteRepo) Listar(_ context.Context) ([]model.Componente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	list := make([]model.Componente, 0, len(r.componentes))
	for _, c := range r.componentes {
		list = append(list, *c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *stubComponenteRepo) ObterPorID(_ context.Context, id uint) (*model.Componente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	c, ok := r.componentes[id]
	if !ok {
		return nil, apierror.NaoEncontrado("Componente não encontrado.")
	}
	cp := *c
	return &cp, nil
}

func (r *stubComponenteRepo) Criar(_ context.Context, c *model.Componente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	for _, existing := range r.componentes {
		if existing.Name == c.Name {
			return apierror.Conflito("Já existe um componente com esse nome.", errors.New("duplicate key"))
		}
	}
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.componentes[c.ID] = &cp
	r.movimentos = append(r.movimentos, model.MovimentoEstoque{
		ID: uint(len(r.movimentos) + 1), ComponenteID: c.ID, ComponenteNome: c.Name,
		Tipo: model.MovimentoCriacao, Quantidade: c.StockQuantity, EstoqueNovo: c.StockQuantity,
	})
	return nil
}

func (r *stubComponenteRepo) AtualizarEstoque(_ context.Context, id uint, quantidade int) (*model.Componente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	c, ok := r.componentes[id]
	if !ok {
		return nil, apierror.NaoEncontrado("Componente não encontrado.")
	}
	anterior := c.StockQuantity
	c.StockQuantity = quantidade
	r.movimentos = append(r.movimentos, model.MovimentoEstoque{
		ID: uint(len(r.movimentos) + 1), ComponenteID: id, ComponenteNome: c.Name, Tipo: model.MovimentoAjuste,
		Quantidade: quantidade - anterior, EstoqueAnterior: anterior, EstoqueNovo: quantidade,
	})
	cp := *c
	return &cp, nil
}

func (r *stubComponenteRepo) Excluir(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	c, ok := r.componentes[id]
	if !ok {
		return apierror.NaoEncontrado("Componente não encontrado.")
	}
	delete(r.componentes, id)
	r.movimentos = append(r.movimentos, model.MovimentoEstoque{
		ID: uint(len(r.movimentos) + 1), ComponenteID: id, ComponenteNome: c.Name, Tipo: model.MovimentoExclusao,
		Quantidade: -c.StockQuantity, EstoqueAnterior: c.StockQuantity,
	})
	return nil
}

func (r *stubComponenteRepo) Snapshot(_ context.Context) (map[string]int, error) {
	r.mu.Lock()
	r.snapshotCalls++
	if r.failWith != nil {
		r.mu.Unlock()
		return nil, r.failWith
	}
	snap := make(map[string]int, len(r.componentes))
	for _, c := range r.componentes {
		snap[c.Name] = c.StockQuantity
	}
	hook := r.aposLerSnapshot
	r.aposLerSnapshot = nil
	r.mu.Unlock()

	// Runs outside the lock so writes can proceed while this read is in flight.
	if hook != nil {
		hook()
	}
	return snap, nil
}

func (r *stubComponenteRepo) ListarMovimentos(_ context.Context, componenteID uint, limit int) ([]model.MovimentoEstoque, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []model.MovimentoEstoque
	for i := len(r.movimentos) - 1; i >= 0 && len(out) < limit; i-- {
		if r.movimentos[i].ComponenteID == componenteID {
			out = append(out, r.movimentos[i])
		}
	}
	return out, nil
}

func (r *stubComponenteRepo) SemearSeVazio(ctx context.Context, itens []model.Componente) (int, error) {
	r.mu.Lock()
	vazio := len(r.componentes) == 0
	r.mu.Unlock()
	if !vazio {
		return 0, nil
	}
	for i := range itens {
		if err := r.Criar(ctx, &itens[i]); err != nil {
			return i, err
		}
	}
	return len(itens), nil
}

func (r *stubComponenteRepo) setFail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = err
}

func (r *stubComponenteRepo) onSnapshotRead(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aposLerSnapshot = fn
}

func (r *stubComponenteRepo) snapshots() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotCalls
}

// ── In-memory SnapshotCache stub ─────────────────────────────────────────────

type stubCache struct {
	mu          sync.Mutex
	snap        map[string]int
	getErr      error
	invalidated int
}

func (c *stubCache) Get(context.Context) (map[string]int, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	if c.snap == nil {
		return nil, false, nil
	}
	return c.snap, true, nil
}

func (c *stubCache) Set(_ context.Context, snap map[string]int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	return nil
}

func (c *stubCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = nil
	c.invalidated++
	return nil
}
