package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"selecao-projetos/internal/convite"
	"selecao-projetos/internal/middleware"
	"selecao-projetos/internal/planilha"
)

type ConvitesHandler struct {
	svc *convite.Service
}

func NewConvitesHandler(svc *convite.Service) *ConvitesHandler {
	return &ConvitesHandler{svc: svc}
}

// ConvidarIndividual cadastra uma pessoa convidada e dispara o e-mail.
func (h *ConvitesHandler) ConvidarIndividual(c *gin.Context) {
	atual, ok := middleware.PessoaAtual(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "não autenticado"})
		return
	}

	var in convite.EntradaConvite
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}

	p, enviado, err := h.svc.ConvidarIndividual(atual.TipoUsuario, in)
	if err != nil {
		h.erroConvite(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"mensagem":       "Pessoa cadastrada com sucesso!",
		"pessoa":         p,
		"e_mail_enviado": enviado,
	})
}

// ImportarLote valida o arquivo XLSX de convite em massa. Sem
// ?confirmar=1 devolve só a prévia; com ele, insere os beneficiários e
// envia os convites, reportando as falhas de envio.
func (h *ConvitesHandler) ImportarLote(c *gin.Context) {
	arquivo, _, err := c.Request.FormFile("arquivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "envie um arquivo XLSX preenchido"})
		return
	}
	defer arquivo.Close()

	linhas, err := planilha.LerXLSX(arquivo)
	if err != nil {
		// erro de parsing é mostrado por inteiro: ferramenta de operador
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lote, err := h.svc.ValidarLote(linhas)
	if err != nil {
		var el *convite.ErroLote
		if errors.As(err, &el) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   el.Motivo.Error(),
				"linhas":  el.Linhas,
				"colunas": el.Colunas,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao validar o arquivo"})
		return
	}

	if c.Query("confirmar") != "1" {
		c.JSON(http.StatusOK, gin.H{"previa": lote})
		return
	}

	rel, err := h.svc.ConfirmarLote(lote)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao cadastrar o lote"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"relatorio": rel})
}

// BaixarModelo devolve o XLSX vazio com os cabeçalhos esperados pelo
// convite em massa.
func (h *ConvitesHandler) BaixarModelo(c *gin.Context) {
	conteudo, err := planilha.GerarModelo(convite.CabecalhosModelo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao gerar o modelo"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="modelo_convite.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", conteudo)
}

func (h *ConvitesHandler) erroConvite(c *gin.Context, err error) {
	switch {
	case errors.Is(err, convite.ErrMissingField),
		errors.Is(err, convite.ErrMissingSubtipo),
		errors.Is(err, convite.ErrInvalidEmail),
		errors.Is(err, convite.ErrInvalidRole),
		errors.Is(err, convite.ErrEmailExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, convite.ErrRoleNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno"})
	}
}
