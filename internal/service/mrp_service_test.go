package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"mrpestoque/internal/apierror"
	"mrpestoque/internal/dto"
	"mrpestoque/internal/infra"
	"mrpestoque/internal/metrics"
	"mrpestoque/internal/mrp"
	"mrpestoque/internal/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMRPSvc(t *testing.T, repo *stubComponenteRepo) (service.MRPService, *metrics.Metrics) {
	t.Helper()
	engine, err := mrp.NewEngine(mrp.BOMPadrao())
	require.NoError(t, err)
	m := metrics.New()
	estoque := service.NewEstoqueService(repo, newBreaker(), service.NewSnapshotCache(nil, 0), m)
	return service.NewMRPService(engine, estoque, m), m
}

func seededRepo() *stubComponenteRepo {
	return newStubRepo(infra.ComponentesIniciais()...)
}

func TestMRPService_Calcular(t *testing.T) {
	repo := seededRepo()
	svc, m := newMRPSvc(t, repo)

	linhas, err := svc.Calcular(context.Background(), dto.CalcularMRPRequest{Bikes: ptr(10), Computers: ptr(0)})
	require.NoError(t, err)

	assert.Equal(t, []dto.LinhaMRPResponse{
		{Componente: "Rodas", Necessario: 20, EmEstoque: 10, AComprar: 10},
		{Componente: "Quadros", Necessario: 10, EmEstoque: 5, AComprar: 5},
		{Componente: "Guidões", Necessario: 10, EmEstoque: 10, AComprar: 0},
		{Componente: "Gabinetes", Necessario: 0, EmEstoque: 2, AComprar: 0},
		{Componente: "Placas-mãe", Necessario: 0, EmEstoque: 5, AComprar: 0},
		{Componente: "Memórias RAM", Necessario: 0, EmEstoque: 6, AComprar: 0},
	}, linhas)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.MRPCalculos.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ComponentesAComprar))
}

func TestMRPService_Calcular_InvalidoNaoLeEstoque(t *testing.T) {
	cases := []struct {
		name string
		req  dto.CalcularMRPRequest
	}{
		{"bikes ausente", dto.CalcularMRPRequest{Computers: ptr(1)}},
		{"computers ausente", dto.CalcularMRPRequest{Bikes: ptr(1)}},
		{"bikes negativo", dto.CalcularMRPRequest{Bikes: ptr(-1), Computers: ptr(2)}},
		{"computers negativo", dto.CalcularMRPRequest{Bikes: ptr(1), Computers: ptr(-2)}},
		{"bikes acima do maximo", dto.CalcularMRPRequest{Bikes: ptr(math.MaxInt/2 + 1), Computers: ptr(0)}},
		{"memorias ram transbordam", dto.CalcularMRPRequest{Bikes: ptr(0), Computers: ptr(math.MaxInt)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := seededRepo()
			svc, m := newMRPSvc(t, repo)

			linhas, err := svc.Calcular(context.Background(), tc.req)
			require.Error(t, err)
			assert.Nil(t, linhas)
			assert.ErrorIs(t, err, apierror.ErrValidacao)
			assert.Equal(t, 400, apierror.Status(err))
			assert.Zero(t, repo.snapshots(), "store must not be read for invalid demand")
			assert.Equal(t, 1.0, testutil.ToFloat64(m.MRPCalculos.WithLabelValues("invalido")))
		})
	}
}

func TestMRPService_Calcular_ComponenteAusente(t *testing.T) {
	repo := seededRepo()
	svc, _ := newMRPSvc(t, repo)
	ctx := context.Background()

	// Gabinetes is the fourth seeded component.
	estoque := service.NewEstoqueService(repo, newBreaker(), service.NewSnapshotCache(nil, 0), metrics.New())
	require.NoError(t, estoque.Excluir(ctx, 4))

	linhas, err := svc.Calcular(ctx, dto.CalcularMRPRequest{Bikes: ptr(0), Computers: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, dto.LinhaMRPResponse{Componente: "Gabinetes", Necessario: 3, EmEstoque: 0, AComprar: 3}, linhas[3])
}

func TestMRPService_Calcular_FalhaDoEstoque(t *testing.T) {
	repo := seededRepo()
	svc, m := newMRPSvc(t, repo)
	repo.setFail(apierror.Persistencia("Não foi possível ler o estoque.", errors.New("timeout")))

	_, err := svc.Calcular(context.Background(), dto.CalcularMRPRequest{Bikes: ptr(1), Computers: ptr(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, apierror.ErrPersistencia)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MRPCalculos.WithLabelValues("erro")))
}

func TestMRPService_BOM(t *testing.T) {
	svc, _ := newMRPSvc(t, seededRepo())

	bom := svc.BOM()
	require.Len(t, bom, 2)
	assert.Equal(t, "Bicicleta", bom[0].Produto)
	assert.Equal(t, []dto.ItemBOMResponse{
		{Componente: "Rodas", PorUnidade: 2},
		{Componente: "Quadros", PorUnidade: 1},
		{Componente: "Guidões", PorUnidade: 1},
	}, bom[0].Itens)
	assert.Equal(t, "Computador", bom[1].Produto)
	assert.Equal(t, "Memórias RAM", bom[1].Itens[2].Componente)
}
