// Package mrp computes net component purchase requirements from production
// demand, a static bill of materials and a stock snapshot.
//
// The computation is pure: it never reads from or writes to the store, holds no
// state between calls and is safe for concurrent use.
package mrp

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Demanda maps each product to the quantity to produce. Products missing from
// the map are planned with quantity zero.
type Demanda map[Produto]int

// Estoque is a stock snapshot: component name to quantity on hand.
type Estoque map[string]int

// LinhaRequisito is one row of the requirements report.
type LinhaRequisito struct {
	Componente string
	Necessario int
	EmEstoque  int
	AComprar   int
}

// DemandaInvalidaError reports a production quantity that cannot be planned:
// either negative, or so large that a requirement total would overflow int.
type DemandaInvalidaError struct {
	Produto    Produto
	Quantidade int
	// Excede is set when the quantity is above Maximo rather than negative.
	Excede bool
	Maximo int
}

func (e *DemandaInvalidaError) Error() string {
	if e.Excede {
		return fmt.Sprintf("quantidade de produção inválida para %s: %d (máximo %d)", e.Produto, e.Quantidade, e.Maximo)
	}
	return fmt.Sprintf("quantidade de produção inválida para %s: %d (deve ser >= 0)", e.Produto, e.Quantidade)
}

// Engine runs MRP over a fixed BOM.
type Engine struct {
	bom BOM
}

// NewEngine validates bom and returns an Engine that owns a private copy of it.
func NewEngine(bom BOM) (*Engine, error) {
	if err := bom.Validar(); err != nil {
		return nil, err
	}
	return &Engine{bom: bom.clone()}, nil
}

// BOM returns a copy of the engine's bill of materials.
func (e *Engine) BOM() BOM { return e.bom.clone() }

// ValidarDemanda applies the demand checks of Calcular without computing
// anything, so callers can reject input before reading stock.
func (e *Engine) ValidarDemanda(demanda Demanda) error {
	return validarDemanda(demanda, e.bom)
}

// Calcular runs MRP for demanda against estoque using the engine's BOM.
func (e *Engine) Calcular(demanda Demanda, estoque Estoque) ([]LinhaRequisito, error) {
	return Calcular(demanda, estoque, e.bom)
}

// Calcular returns one LinhaRequisito per distinct component referenced by bom,
// in order of first appearance while walking products and their items in
// declaration order.
//
// Demand is validated before anything else is looked at; a negative quantity,
// or one whose requirement totals would not fit in an int, fails the whole run
// and no partial report is returned. A component absent
// from estoque counts as zero stock.
func Calcular(demanda Demanda, estoque Estoque, bom BOM) ([]LinhaRequisito, error) {
	if err := validarDemanda(demanda, bom); err != nil {
		return nil, err
	}

	linhas := make([]LinhaRequisito, 0)
	indice := make(map[string]int)

	for _, entrada := range bom {
		qtd := demanda[entrada.Produto]
		for _, item := range entrada.Itens {
			i, ok := indice[item.Componente]
			if !ok {
				i = len(linhas)
				indice[item.Componente] = i
				linhas = append(linhas, LinhaRequisito{
					Componente: item.Componente,
					EmEstoque:  estoque[item.Componente],
				})
			}
			linhas[i].Necessario += qtd * item.PorUnidade
		}
	}

	// Shortfall only after every product has contributed to a shared component.
	for i := range linhas {
		linhas[i].AComprar = max(0, linhas[i].Necessario-linhas[i].EmEstoque)
	}
	return linhas, nil
}

// validarDemanda checks BOM products first, in declaration order, then any
// extra keys sorted by name so the reported error is deterministic.
func validarDemanda(demanda Demanda, bom BOM) error {
	vistos := make(map[Produto]struct{}, len(bom))
	for _, e := range bom {
		vistos[e.Produto] = struct{}{}
		if q, ok := demanda[e.Produto]; ok && q < 0 {
			return &DemandaInvalidaError{Produto: e.Produto, Quantidade: q}
		}
	}
	for _, p := range slices.Sorted(maps.Keys(demanda)) {
		if _, ok := vistos[p]; ok {
			continue
		}
		if q := demanda[p]; q < 0 {
			return &DemandaInvalidaError{Produto: p, Quantidade: q}
		}
	}
	return validarTotais(demanda, bom)
}

// validarTotais accumulates requirements the way Calcular does and rejects the
// first product whose contribution would overflow a component total.
func validarTotais(demanda Demanda, bom BOM) error {
	totais := make(map[string]int)
	for _, e := range bom {
		q := demanda[e.Produto]
		if q == 0 {
			continue
		}
		for _, it := range e.Itens {
			maximo := (math.MaxInt - totais[it.Componente]) / it.PorUnidade
			if q > maximo {
				return &DemandaInvalidaError{Produto: e.Produto, Quantidade: q, Excede: true, Maximo: maximo}
			}
			totais[it.Componente] += q * it.PorUnidade
		}
	}
	return nil
}
