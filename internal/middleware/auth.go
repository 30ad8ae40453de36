package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"selecao-projetos/internal/models"
)

const (
	ChavePessoaID    = "pessoa_id"
	ChaveTipoUsuario = "tipo_usuario"
	ChaveNome        = "nome"
	ChaveProjetos    = "projetos"
	ChavePagina      = "pagina_atual"
	ChaveProjeto     = "projeto_atual"

	// redefinição de senha (transitórios, nunca persistidos)
	ChaveCodigoVerificacao = "codigo_verificacao"
	ChaveEmailVerificado   = "email_verificado"
	ChaveCodigoValidado    = "codigo_validado"
)

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		if sess.Get(ChavePessoaID) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
			return
		}
		c.Next()
	}
}

func RequireRole(roles ...models.TipoUsuario) gin.HandlerFunc {
	roleSet := map[models.TipoUsuario]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		sess := sessions.Default(c)
		roleStr, ok := sess.Get(ChaveTipoUsuario).(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
			return
		}
		if _, ok := roleSet[models.TipoUsuario(roleStr)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "acesso negado"})
			return
		}
		c.Next()
	}
}
