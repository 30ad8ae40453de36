package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"selecao-projetos/internal/database"
	"selecao-projetos/internal/models"
)

// InjectPessoa carrega a pessoa logada no contexto da requisição.
func InjectPessoa(store *database.PessoaStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if idRaw := sess.Get(ChavePessoaID); idRaw != nil {
			if id, ok := idRaw.(uint); ok && id > 0 {
				if p, err := store.PessoaPorID(id); err == nil && p != nil {
					c.Set("PessoaAtual", *p)
				}
			}
		}

		c.Next()
	}
}

// PessoaAtual devolve a pessoa logada, se houver.
func PessoaAtual(c *gin.Context) (models.Pessoa, bool) {
	v, ok := c.Get("PessoaAtual")
	if !ok {
		return models.Pessoa{}, false
	}
	p, ok := v.(models.Pessoa)
	return p, ok
}
