package mrp

import "fmt"

// Produto identifies a finished good. The set is closed: only the products
// declared in the BOM are ever planned.
type Produto string

const (
	Bicicleta  Produto = "Bicicleta"
	Computador Produto = "Computador"
)

// ItemBOM is one component line of a product: how many units of Componente
// go into a single unit of the product.
type ItemBOM struct {
	Componente string
	PorUnidade int
}

// EntradaBOM groups the component lines of one product in declaration order.
type EntradaBOM struct {
	Produto Produto
	Itens   []ItemBOM
}

// BOM is an ordered sequence of products. Declaration order drives the order
// of the requirement lines, so it is never stored as a map.
type BOM []EntradaBOM

// BOMPadrao returns the bill of materials for the two products assembled here.
// A fresh value is built on every call so callers can never mutate a shared table.
func BOMPadrao() BOM {
	return BOM{
		{Produto: Bicicleta, Itens: []ItemBOM{
			{Componente: "Rodas", PorUnidade: 2},
			{Componente: "Quadros", PorUnidade: 1},
			{Componente: "Guidões", PorUnidade: 1},
		}},
		{Produto: Computador, Itens: []ItemBOM{
			{Componente: "Gabinetes", PorUnidade: 1},
			{Componente: "Placas-mãe", PorUnidade: 1},
			{Componente: "Memórias RAM", PorUnidade: 2},
		}},
	}
}

// Validar checks the structural invariants of a BOM: unique products, non-empty
// component names, no repeated component inside a product, positive quantities.
func (b BOM) Validar() error {
	produtos := make(map[Produto]struct{}, len(b))
	for _, e := range b {
		if e.Produto == "" {
			return fmt.Errorf("produto sem nome na BOM")
		}
		if _, dup := produtos[e.Produto]; dup {
			return fmt.Errorf("produto %q declarado mais de uma vez", e.Produto)
		}
		produtos[e.Produto] = struct{}{}

		componentes := make(map[string]struct{}, len(e.Itens))
		for _, it := range e.Itens {
			if it.Componente == "" {
				return fmt.Errorf("produto %q: componente sem nome", e.Produto)
			}
			if _, dup := componentes[it.Componente]; dup {
				return fmt.Errorf("produto %q: componente %q repetido", e.Produto, it.Componente)
			}
			componentes[it.Componente] = struct{}{}
			if it.PorUnidade <= 0 {
				return fmt.Errorf("produto %q: componente %q com quantidade por unidade %d", e.Produto, it.Componente, it.PorUnidade)
			}
		}
	}
	return nil
}

// clone deep-copies the BOM so an Engine owns its table.
func (b BOM) clone() BOM {
	out := make(BOM, len(b))
	for i, e := range b {
		out[i] = EntradaBOM{Produto: e.Produto, Itens: append([]ItemBOM(nil), e.Itens...)}
	}
	return out
}
