package dto

// CalcularMRPRequest is the typed body of POST /api/mrp.
type CalcularMRPRequest struct {
	Bikes     *int `json:"bikes"     validate:"required,min=0"`
	Computers *int `json:"computers" validate:"required,min=0"`
}

// LinhaMRPResponse keeps the column names the UI has always consumed.
type LinhaMRPResponse struct {
	Componente string `json:"Componente"`
	Necessario int    `json:"Necessario"`
	EmEstoque  int    `json:"Em Estoque"`
	AComprar   int    `json:"A Comprar"`
}

type ItemBOMResponse struct {
	Componente string `json:"componente"`
	PorUnidade int    `json:"por_unidade"`
}

type ProdutoBOMResponse struct {
	Produto string            `json:"produto"`
	Itens   []ItemBOMResponse `json:"itens"`
}
