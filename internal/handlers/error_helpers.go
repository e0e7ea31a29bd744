package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CocoPetControl/clinic-api/internal/httperr"
)

// Erros de negócio com sufixo _not_found viram 404; o resto é 400.
// Devolve false quando o erro não é de negócio (caller trata como 500).
func respondBusiness(c *gin.Context, err error) bool {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		return false
	}

	if strings.HasSuffix(be.Code, "_not_found") {
		httperr.NotFound(c, be.Code, "Recurso não encontrado.")
		return true
	}

	httperr.BadRequest(c, be.Code, "Requisição inválida.")
	return true
}
