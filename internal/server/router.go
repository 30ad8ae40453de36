package server

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"selecao-projetos/internal/config"
	"selecao-projetos/internal/database"
	"selecao-projetos/internal/handlers"
	"selecao-projetos/internal/middleware"
	"selecao-projetos/internal/models"
)

// Deps reúne os handlers já construídos. O router só decide quem pode
// chegar em cada rota.
type Deps struct {
	Pessoas  *database.PessoaStore
	Auth     *handlers.AuthHandler
	Sessao   *handlers.SessaoHandler
	Gestao   *handlers.PessoasHandler
	Convites *handlers.ConvitesHandler
	Editais  *handlers.EditaisHandler
	Projetos *handlers.ProjetosHandler
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("selecao_session", store))

	r.Use(middleware.InjectPessoa(deps.Pessoas))

	// AUTENTICAÇÃO
	r.POST("/api/login", deps.Auth.Login)
	r.POST("/api/logout", deps.Auth.Logout)
	r.POST("/api/primeiro-acesso/validar", deps.Auth.ValidarPrimeiroAcesso)
	r.POST("/api/primeiro-acesso/senha", deps.Auth.SalvarSenhaPrimeiroAcesso)
	r.POST("/api/recuperacao/codigo", deps.Auth.EnviarCodigoRecuperacao)
	r.POST("/api/recuperacao/verificar", deps.Auth.VerificarCodigoRecuperacao)
	r.POST("/api/recuperacao/senha", deps.Auth.SalvarNovaSenha)

	auth := r.Group("/api")
	auth.Use(middleware.RequireAuth())

	// SESSÃO E NAVEGAÇÃO
	auth.GET("/sessao", deps.Sessao.Sessao)
	auth.POST("/sessao/pagina", deps.Sessao.DefinirPagina)
	auth.POST("/sessao/projeto", deps.Sessao.DefinirProjeto)

	// qualquer pessoa logada enxerga os próprios projetos
	auth.GET("/projetos/meus", deps.Projetos.MeusProjetos)

	// GESTÃO DE PESSOAS — admin e equipe
	gestao := auth.Group("/")
	gestao.Use(middleware.RequireRole(models.RoleAdmin, models.RoleEquipe))

	gestao.GET("/pessoas/equipe", deps.Gestao.ListarEquipe)
	gestao.GET("/pessoas/avaliadores", deps.Gestao.ListarAvaliadores)
	gestao.GET("/pessoas/visitantes", deps.Gestao.ListarVisitantes)
	gestao.GET("/pessoas/convites", deps.Gestao.ListarConvites)
	gestao.PUT("/pessoas/:id", deps.Gestao.Editar)
	gestao.POST("/pessoas/:id/status", deps.Gestao.AlternarStatus)

	gestao.GET("/convites/modelo", deps.Convites.BaixarModelo)
	gestao.POST("/convites", deps.Convites.ConvidarIndividual)
	gestao.POST("/convites/lote", deps.Convites.ImportarLote)

	gestao.GET("/projetos", deps.Projetos.Listar)
	gestao.POST("/projetos", deps.Projetos.Criar)

	// EDITAIS — só admin
	admin := auth.Group("/")
	admin.Use(middleware.RequireRole(models.RoleAdmin))

	admin.GET("/editais", deps.Editais.Listar)
	admin.POST("/editais", deps.Editais.Criar)
	admin.GET("/editais/:id", deps.Editais.Detalhar)
	admin.PUT("/editais/:id", deps.Editais.Atualizar)
	admin.POST("/editais/:id/estagios", deps.Editais.AdicionarEstagio)
	admin.POST("/editais/:id/projetos/importar", deps.Projetos.ImportarRecebimento)

	admin.POST("/estagios/:estagio_id/perguntas", deps.Editais.AdicionarPergunta)
	admin.POST("/estagios/:estagio_id/perguntas/ordem", deps.Editais.ReordenarPerguntas)
	admin.PUT("/perguntas/:pergunta_id", deps.Editais.AtualizarPergunta)
	admin.DELETE("/perguntas/:pergunta_id", deps.Editais.RemoverPergunta)

	admin.POST("/editais/:id/estagios/:estagio_id/avaliadores", deps.Editais.SelecionarAvaliadores)
	admin.GET("/editais/:id/estagios/:estagio_id/distribuicao", deps.Editais.Distribuicao)
	admin.POST("/editais/:id/estagios/:estagio_id/distribuicao", deps.Editais.DistribuirProjetos)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
