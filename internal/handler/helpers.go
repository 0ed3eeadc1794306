package handler

import (
	"errors"
	"net/http"
	"strconv"

	"mrpestoque/internal/apierror"
	"mrpestoque/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// bindAndValidate binds the JSON body and runs go-playground/validator tags.
// Returns false and writes a 400 if either step fails; the caller should
// return immediately without writing another response. Decoder errors are
// logged, never echoed.
func bindAndValidate(c *gin.Context, req interface{}, msg string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Debug().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("invalid JSON body")
		respondError(c, apierror.Validacao(msg))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			respondError(c, apierror.Validacao(msg))
			return false
		}
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
		respondError(c, apierror.ValidacaoCampos(msg, fields))
		return false
	}
	return true
}

// parseID reads the :id path parameter as a positive integer.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido."))
		return 0, false
	}
	return uint(id), true
}

// respondError writes the envelope for err. Server-side failures are logged
// with their cause; the client only sees the safe message.
func respondError(c *gin.Context, err error) {
	status := apierror.Status(err)
	if status >= http.StatusInternalServerError {
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("request failed")
	}
	c.JSON(status, apierror.From(err))
}
