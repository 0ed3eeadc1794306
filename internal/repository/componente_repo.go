package repository

import (
	"context"
	"errors"

	"mrpestoque/internal/apierror"
	"mrpestoque/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ComponenteRepository defines the data access contract for the inventory store.
// Every method returns *apierror.Error values so services can classify failures
// without knowing about GORM.
type ComponenteRepository interface {
	Listar(ctx context.Context) ([]model.Componente, error)
	ObterPorID(ctx context.Context, id uint) (*model.Componente, error)
	Criar(ctx context.Context, c *model.Componente) error
	AtualizarEstoque(ctx context.Context, id uint, quantidade int) (*model.Componente, error)
	Excluir(ctx context.Context, id uint) error

	// Snapshot reads every component's stock in a single statement.
	Snapshot(ctx context.Context) (map[string]int, error)

	ListarMovimentos(ctx context.Context, componenteID uint, limit int) ([]model.MovimentoEstoque, error)

	// SemearSeVazio inserts itens only when the table has no rows. Returns how many were inserted.
	SemearSeVazio(ctx context.Context, itens []model.Componente) (int, error)
}

type componenteRepo struct{ db *gorm.DB }

func NewComponenteRepository(db *gorm.DB) ComponenteRepository { return &componenteRepo{db: db} }

const msgNaoEncontrado = "Componente não encontrado."

// traduzir maps GORM errors onto the API taxonomy. The DB must be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func traduzir(err error, msg string) error {
	var apiErr *apierror.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &apiErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apierror.NaoEncontrado(msgNaoEncontrado)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apierror.Conflito("Já existe um componente com esse nome.", err)
	default:
		return apierror.Persistencia(msg, err)
	}
}

func (r *componenteRepo) Listar(ctx context.Context) ([]model.Componente, error) {
	var list []model.Componente
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, traduzir(err, "Não foi possível listar os componentes.")
}

func (r *componenteRepo) ObterPorID(ctx context.Context, id uint) (*model.Componente, error) {
	var c model.Componente
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, traduzir(err, "Não foi possível obter o componente.")
	}
	return &c, nil
}

func (r *componenteRepo) Criar(ctx context.Context, c *model.Componente) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Create(&model.MovimentoEstoque{
			ComponenteID:    c.ID,
			ComponenteNome:  c.Name,
			Tipo:            model.MovimentoCriacao,
			Quantidade:      c.StockQuantity,
			EstoqueAnterior: 0,
			EstoqueNovo:     c.StockQuantity,
		}).Error
	})
	return traduzir(err, "Não foi possível criar o componente.")
}

func (r *componenteRepo) AtualizarEstoque(ctx context.Context, id uint, quantidade int) (*model.Componente, error) {
	var c model.Componente
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row lock so concurrent updates record a coherent anterior/novo pair.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error; err != nil {
			return err
		}
		anterior := c.StockQuantity
		if err := tx.Model(&model.Componente{}).Where("id = ?", id).
			Update("stock_quantity", quantidade).Error; err != nil {
			return err
		}
		c.StockQuantity = quantidade
		return tx.Create(&model.MovimentoEstoque{
			ComponenteID:    c.ID,
			ComponenteNome:  c.Name,
			Tipo:            model.MovimentoAjuste,
			Quantidade:      quantidade - anterior,
			EstoqueAnterior: anterior,
			EstoqueNovo:     quantidade,
		}).Error
	})
	if err != nil {
		return nil, traduzir(err, "Não foi possível atualizar o estoque do componente.")
	}
	return &c, nil
}

func (r *componenteRepo) Excluir(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c model.Componente
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&c).Error; err != nil {
			return err
		}
		return tx.Create(&model.MovimentoEstoque{
			ComponenteID:    c.ID,
			ComponenteNome:  c.Name,
			Tipo:            model.MovimentoExclusao,
			Quantidade:      -c.StockQuantity,
			EstoqueAnterior: c.StockQuantity,
			EstoqueNovo:     0,
		}).Error
	})
	return traduzir(err, "Não foi possível excluir o componente.")
}

func (r *componenteRepo) Snapshot(ctx context.Context) (map[string]int, error) {
	var rows []model.Componente
	err := r.db.WithContext(ctx).Select("name", "stock_quantity").Find(&rows).Error
	if err != nil {
		return nil, traduzir(err, "Não foi possível ler o estoque.")
	}
	snap := make(map[string]int, len(rows))
	for _, c := range rows {
		snap[c.Name] = c.StockQuantity
	}
	return snap, nil
}

func (r *componenteRepo) ListarMovimentos(ctx context.Context, componenteID uint, limit int) ([]model.MovimentoEstoque, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var movs []model.MovimentoEstoque
	err := r.db.WithContext(ctx).
		Where("componente_id = ?", componenteID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&movs).Error
	return movs, traduzir(err, "Não foi possível listar as movimentações.")
}

func (r *componenteRepo) SemearSeVazio(ctx context.Context, itens []model.Componente) (int, error) {
	inseridos := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&model.Componente{}).Count(&total).Error; err != nil {
			return err
		}
		if total > 0 {
			return nil
		}
		for i := range itens {
			c := itens[i]
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
			if err := tx.Create(&model.MovimentoEstoque{
				ComponenteID:   c.ID,
				ComponenteNome: c.Name,
				Tipo:           model.MovimentoCriacao,
				Quantidade:     c.StockQuantity,
				EstoqueNovo:    c.StockQuantity,
			}).Error; err != nil {
				return err
			}
			inseridos++
		}
		return nil
	})
	if err != nil {
		return 0, traduzir(err, "Não foi possível semear os componentes.")
	}
	return inseridos, nil
}
