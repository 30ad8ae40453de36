package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"selecao-projetos/internal/middleware"
	"selecao-projetos/internal/models"
)

type Pagina struct {
	Slug   string `json:"slug"`
	Titulo string `json:"titulo"`
}

type Secao struct {
	Titulo  string   `json:"titulo"`
	Paginas []Pagina `json:"paginas"`
}

var paginasPessoas = Secao{
	Titulo: "Pessoas",
	Paginas: []Pagina{
		{Slug: "pessoas_equipe", Titulo: "Equipe"},
		{Slug: "pessoas_avaliadores", Titulo: "Avaliadores"},
		{Slug: "pessoas_visitantes", Titulo: "Visitantes"},
		{Slug: "pessoas_cadastrar", Titulo: "Convidar pessoas"},
		{Slug: "pessoas_convites", Titulo: "Convites pendentes"},
	},
}

// menus é o conjunto fixo de páginas de cada home lógica. Sessão sem
// login (ou tipo desconhecido) só enxerga a página de login.
var menus = map[string][]Secao{
	"home_admin": {
		{
			Titulo: "Editais",
			Paginas: []Pagina{
				{Slug: "editais_lista", Titulo: "Editais"},
				{Slug: "editais_gerenciar", Titulo: "Gerenciar"},
			},
		},
		paginasPessoas,
	},
	"home_equipe": {
		paginasPessoas,
	},
	"selecionar_projeto": {
		{
			Titulo:  "Projetos",
			Paginas: []Pagina{{Slug: "selecionar_projeto", Titulo: "Selecione o projeto"}},
		},
	},
	"ver_projeto": {
		{
			Titulo:  "Projeto",
			Paginas: []Pagina{{Slug: "projeto_visao_geral", Titulo: "Visão geral"}},
		},
	},
	"login": {
		{Paginas: []Pagina{{Slug: "login", Titulo: "Entrar"}}},
	},
}

// paginaInicial devolve a home de cada tipo de usuário. Quem tem exatamente
// um projeto associado cai direto nele.
func paginaInicial(tipo models.TipoUsuario, projetos []string) string {
	switch tipo {
	case models.RoleAdmin:
		return "home_admin"
	case models.RoleEquipe:
		return "home_equipe"
	case models.RoleAvaliador, models.RoleBeneficiario, models.RoleVisitante:
		if len(projetos) == 1 {
			return "ver_projeto"
		}
		return "selecionar_projeto"
	}
	return "login"
}

// paginasAlcancaveis lista as homes lógicas que um tipo pode navegar.
func paginasAlcancaveis(tipo models.TipoUsuario) []string {
	switch tipo {
	case models.RoleAdmin:
		return []string{"home_admin", "ver_projeto", "selecionar_projeto"}
	case models.RoleEquipe:
		return []string{"home_equipe", "ver_projeto", "selecionar_projeto"}
	case models.RoleAvaliador, models.RoleBeneficiario, models.RoleVisitante:
		return []string{"ver_projeto", "selecionar_projeto"}
	}
	return nil
}

func projetosDaSessao(sess sessions.Session) []string {
	raw, _ := sess.Get(middleware.ChaveProjetos).(string)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func sessaoView(sess sessions.Session) gin.H {
	idRaw := sess.Get(middleware.ChavePessoaID)
	if idRaw == nil {
		return gin.H{"logado": false, "menu": menus["login"]}
	}
	tipo, _ := sess.Get(middleware.ChaveTipoUsuario).(string)
	nome, _ := sess.Get(middleware.ChaveNome).(string)
	pagina, _ := sess.Get(middleware.ChavePagina).(string)
	projetoAtual, _ := sess.Get(middleware.ChaveProjeto).(string)

	menu, ok := menus[pagina]
	if !ok {
		menu = menus["login"]
	}
	return gin.H{
		"logado":        true,
		"pessoa_id":     idRaw,
		"nome":          nome,
		"tipo_usuario":  tipo,
		"projetos":      projetosDaSessao(sess),
		"pagina_atual":  pagina,
		"projeto_atual": projetoAtual,
		"menu":          menu,
	}
}

type SessaoHandler struct{}

func NewSessaoHandler() *SessaoHandler { return &SessaoHandler{} }

func (h *SessaoHandler) Sessao(c *gin.Context) {
	c.JSON(http.StatusOK, sessaoView(sessions.Default(c)))
}

type paginaForm struct {
	Pagina string `json:"pagina"`
}

// DefinirPagina muda a home lógica atual, dentro do que o tipo alcança.
func (h *SessaoHandler) DefinirPagina(c *gin.Context) {
	var form paginaForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}
	sess := sessions.Default(c)
	tipo, _ := sess.Get(middleware.ChaveTipoUsuario).(string)

	permitida := false
	for _, p := range paginasAlcancaveis(models.TipoUsuario(tipo)) {
		if p == form.Pagina {
			permitida = true
			break
		}
	}
	if !permitida {
		c.JSON(http.StatusForbidden, gin.H{"error": "acesso negado"})
		return
	}

	sess.Set(middleware.ChavePagina, form.Pagina)
	_ = sess.Save()
	c.JSON(http.StatusOK, sessaoView(sess))
}

type projetoForm struct {
	Codigo string `json:"codigo"`
}

// DefinirProjeto seleciona o projeto atual. Avaliadores, beneficiários e
// visitantes só podem escolher entre os projetos associados a eles.
func (h *SessaoHandler) DefinirProjeto(c *gin.Context) {
	var form projetoForm
	if err := c.ShouldBindJSON(&form); err != nil || form.Codigo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}
	sess := sessions.Default(c)
	tipo, _ := sess.Get(middleware.ChaveTipoUsuario).(string)

	switch models.TipoUsuario(tipo) {
	case models.RoleAdmin, models.RoleEquipe:
		// equipe e admin acessam qualquer projeto
	default:
		if !models.Lista(projetosDaSessao(sess)).Contem(form.Codigo) {
			c.JSON(http.StatusForbidden, gin.H{"error": "projeto não associado a este usuário"})
			return
		}
	}

	sess.Set(middleware.ChaveProjeto, form.Codigo)
	sess.Set(middleware.ChavePagina, "ver_projeto")
	_ = sess.Save()
	c.JSON(http.StatusOK, sessaoView(sess))
}
