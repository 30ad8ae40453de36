package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"selecao-projetos/internal/edital"
	"selecao-projetos/internal/models"
	"selecao-projetos/internal/planilha"
)

// projetoStore é o acesso a projetos que os handlers precisam.
type projetoStore interface {
	Projetos() ([]models.Projeto, error)
	PorEdital(codigoEdital string) ([]models.Projeto, error)
	PorCodigos(codigos []string) ([]models.Projeto, error)
	CodigosDoEdital(codigoEdital string) ([]string, error)
	Criar(p *models.Projeto) error
	CriarProjetos(projetos []*models.Projeto) error
}

type ProjetosHandler struct {
	store   projetoStore
	editais *edital.Service
	sheets  *planilha.SheetsClient
}

func NewProjetosHandler(store projetoStore, editais *edital.Service, sheets *planilha.SheetsClient) *ProjetosHandler {
	return &ProjetosHandler{store: store, editais: editais, sheets: sheets}
}

// MeusProjetos lista os projetos associados à pessoa logada, para a
// página de seleção de projeto. A sessão guarda só os códigos; aqui eles
// viram registros completos (código, sigla, nome).
func (h *ProjetosHandler) MeusProjetos(c *gin.Context) {
	codigos := projetosDaSessao(sessions.Default(c))
	if len(codigos) == 0 {
		c.JSON(http.StatusOK, gin.H{"projetos": []models.Projeto{}})
		return
	}
	projetos, err := h.store.PorCodigos(codigos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao listar projetos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projetos": projetos})
}

func (h *ProjetosHandler) Listar(c *gin.Context) {
	var (
		projetos []models.Projeto
		err      error
	)
	if codigoEdital := c.Query("edital"); codigoEdital != "" {
		projetos, err = h.store.PorEdital(codigoEdital)
	} else {
		projetos, err = h.store.Projetos()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao listar projetos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projetos": projetos})
}

type novoProjetoForm struct {
	Codigo       string `json:"codigo"`
	CodigoEdital string `json:"codigo_edital"`
	Sigla        string `json:"sigla"`
	Nome         string `json:"nome"`
}

func (h *ProjetosHandler) Criar(c *gin.Context) {
	var form novoProjetoForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}
	form.Codigo = strings.TrimSpace(form.Codigo)
	form.CodigoEdital = strings.TrimSpace(form.CodigoEdital)
	if form.Codigo == "" || form.CodigoEdital == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "código e edital são obrigatórios"})
		return
	}

	existentes, err := h.store.CodigosDoEdital(form.CodigoEdital)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao consultar projetos"})
		return
	}
	for _, codigo := range existentes {
		if codigo == form.Codigo {
			c.JSON(http.StatusBadRequest, gin.H{"error": "já existe um projeto com este código neste edital"})
			return
		}
	}

	p := &models.Projeto{
		Codigo:       form.Codigo,
		CodigoEdital: form.CodigoEdital,
		Sigla:        strings.TrimSpace(form.Sigla),
		Nome:         strings.TrimSpace(form.Nome),
	}
	if err := h.store.Criar(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao salvar o projeto"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"projeto": p})
}

// ImportarRecebimento lê a planilha de recebimento vinculada ao edital e
// cadastra os projetos que ainda não existem. Códigos já cadastrados no
// edital são ignorados, nunca sobrescritos.
func (h *ProjetosHandler) ImportarRecebimento(c *gin.Context) {
	editalID, ok := paramID(c, "id")
	if !ok {
		return
	}
	e, err := h.editais.PorID(editalID)
	if err != nil {
		h.erroImportacao(c, err)
		return
	}
	if e.IDPlanilhaRecebimento == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "o edital não tem planilha de recebimento vinculada"})
		return
	}

	linhas, err := h.sheets.Valores(c.Request.Context(), e.IDPlanilhaRecebimento, "A:Z")
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if len(linhas) < 2 {
		c.JSON(http.StatusOK, gin.H{"importados": 0, "ignorados": 0})
		return
	}

	colunas := localizarColunas(linhas[0])
	if colunas.codigo < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a planilha não tem uma coluna de código"})
		return
	}

	existentes, err := h.store.CodigosDoEdital(e.Codigo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao consultar projetos"})
		return
	}
	conhecidos := make(map[string]bool, len(existentes))
	for _, codigo := range existentes {
		conhecidos[codigo] = true
	}

	var novos []*models.Projeto
	ignorados := 0
	for _, linha := range linhas[1:] {
		codigo := strings.TrimSpace(celula(linha, colunas.codigo))
		if codigo == "" {
			continue
		}
		if conhecidos[codigo] {
			ignorados++
			continue
		}
		conhecidos[codigo] = true
		novos = append(novos, &models.Projeto{
			Codigo:       codigo,
			CodigoEdital: e.Codigo,
			Sigla:        strings.TrimSpace(celula(linha, colunas.sigla)),
			Nome:         strings.TrimSpace(celula(linha, colunas.nome)),
		})
	}

	if len(novos) > 0 {
		if err := h.store.CriarProjetos(novos); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao salvar os projetos"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"importados": len(novos), "ignorados": ignorados})
}

type posicoesColunas struct {
	codigo int
	sigla  int
	nome   int
}

func localizarColunas(cabecalho []string) posicoesColunas {
	pos := posicoesColunas{codigo: -1, sigla: -1, nome: -1}
	for i, titulo := range cabecalho {
		switch normalizarTitulo(titulo) {
		case "codigo", "código":
			pos.codigo = i
		case "sigla":
			pos.sigla = i
		case "nome", "nome do projeto":
			pos.nome = i
		}
	}
	return pos
}

func normalizarTitulo(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func celula(linha []string, i int) string {
	if i < 0 || i >= len(linha) {
		return ""
	}
	return linha[i]
}

func (h *ProjetosHandler) erroImportacao(c *gin.Context, err error) {
	if errors.Is(err, edital.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "edital não encontrado"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao carregar o edital"})
}
