package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"productivity/internal/auth"
	"productivity/internal/dto"
	"productivity/internal/repo"
	"productivity/internal/service"

	"github.com/gin-gonic/gin"
)

// Error categories returned in the "code" field.
const (
	CodeMissingIdentity = auth.CodeMissingIdentity
	CodeNotFound        = "not_found"
	CodeConflict        = "conflict"
	CodeStoreFailure    = "store_failure"
	CodeInternal        = "internal"
)

var opVerbs = map[string]string{
	"list":   "buscar",
	"get":    "buscar",
	"create": "criar",
	"update": "atualizar",
	"delete": "deletar",
}

// respondError maps a service outcome to the HTTP error envelope and logs
// the category with the underlying cause.
func respondError(c *gin.Context, log *slog.Logger, resource, op string, err error) {
	status, body := translate(resource, op, err)
	attrs := []any{
		"resource", resource,
		"op", op,
		"code", body.Code,
		"status", status,
		"err", err.Error(),
	}
	if status >= http.StatusInternalServerError {
		log.ErrorContext(c.Request.Context(), "request failed", attrs...)
	} else {
		log.InfoContext(c.Request.Context(), "request rejected", attrs...)
	}
	c.JSON(status, body)
}

func translate(resource, op string, err error) (int, dto.ErrorResponse) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, dto.ErrorResponse{Error: verr.Error(), Code: verr.Code}
	case errors.Is(err, service.ErrMissingIdentity):
		return http.StatusBadRequest, auth.MissingIdentityResponse()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, dto.ErrorResponse{Error: "Registro não encontrado", Code: CodeNotFound}
	case repo.IsUniqueViolation(err):
		return http.StatusConflict, dto.ErrorResponse{
			Error:   "Registro já existe em " + resource,
			Code:    CodeConflict,
			Details: repo.Diagnostic(err),
		}
	}
	return http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "Erro ao " + opVerbs[op] + " " + resource,
		Code:    CodeStoreFailure,
		Details: repo.Diagnostic(err),
	}
}
