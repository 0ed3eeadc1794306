package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validacao", Validacao("x"), http.StatusBadRequest},
		{"nao encontrado", NaoEncontrado("x"), http.StatusNotFound},
		{"conflito", Conflito("x", errors.New("dup")), http.StatusConflict},
		{"persistencia", Persistencia("x", errors.New("io")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("service: %w", NaoEncontrado("x")), http.StatusNotFound},
		{"sentinel", ErrValidacao, http.StatusBadRequest},
		{"desconhecido", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestFrom_NaoVazaCausa(t *testing.T) {
	err := Persistencia("Não foi possível criar o componente.", errors.New("pq: connection refused"))

	env := From(err)
	assert.False(t, env.Success)
	assert.Equal(t, "Não foi possível criar o componente.", env.Message)
	assert.Contains(t, err.Error(), "connection refused")

	assert.Equal(t, MsgErroInterno, From(errors.New("raw driver error")).Message)
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Conflito("nome já existe", cause)
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrConflito))
	assert.False(t, errors.Is(err, ErrValidacao))
}

func TestValidacaoCampos(t *testing.T) {
	err := ValidacaoCampos("Dados incompletos para criar componente.", map[string]string{"Name": "required"})
	assert.Equal(t, http.StatusBadRequest, Status(err))

	env := From(err)
	assert.Equal(t, "Dados incompletos para criar componente.", env.Message)
	assert.Equal(t, map[string]string{"Name": "required"}, env.Fields)
}
