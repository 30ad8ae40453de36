package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"selecao-projetos/internal/edital"
)

type EditaisHandler struct {
	svc *edital.Service
}

func NewEditaisHandler(svc *edital.Service) *EditaisHandler {
	return &EditaisHandler{svc: svc}
}

func (h *EditaisHandler) Listar(c *gin.Context) {
	editais, err := h.svc.Listar()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao listar editais"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"editais": editais})
}

func (h *EditaisHandler) Detalhar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	e, err := h.svc.PorID(id)
	if err != nil {
		h.erroEdital(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"edital": e})
}

func (h *EditaisHandler) Criar(c *gin.Context) {
	var in edital.EntradaEdital
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}
	e, err := h.svc.CriarEdital(in)
	if err != nil {
		h.erroEdital(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensagem": "Edital salvo com sucesso.", "edital": e})
}

func (h *EditaisHandler) Atualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in edital.EntradaEdital
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}
	e, err := h.svc.AtualizarEdital(id, in)
	if err != nil {
		h.erroEdital(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Edital atualizado com sucesso.", "edital": e})
}

type estagioForm struct {
	Nome  string `json:"nome"`
	Ordem int    `json:"ordem"`
}

func (h *EditaisHandler) AdicionarEstagio(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var form estagioForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}
	est, err := h.svc.AdicionarEstagio(id, form.Nome, form.Ordem)
	if err != nil {
		h.erroEdital(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"estagio": est})
}

func (h *EditaisHandler) AdicionarPergunta(c *gin.Context) {
	estagioID, ok := paramID(c, "estagio_id")
	if !ok {
		return
	}
	var in edital.EntradaPergunta
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}
	p, err := h.svc.AdicionarPergunta(estagioID, in)
	if err != nil {
		h.erroEdital(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pergunta": p})
}

func (h *EditaisHandler) AtualizarPergunta(c *gin.Context) {
	perguntaID, ok := paramID(c, "pergunta_id")
	if !ok {
		return
	}
	var in edital.EntradaPergunta
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}
	p, err := h.svc.AtualizarPergunta(perguntaID, in)
	if err != nil {
		h.erroEdital(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pergunta": p})
}

func (h *EditaisHandler) RemoverPergunta(c *gin.Context) {
	perguntaID, ok := paramID(c, "pergunta_id")
	if !ok {
		return
	}
	if err := h.svc.RemoverPergunta(perguntaID); err != nil {
		h.erroEdital(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removida": true})
}

type reordenarForm struct {
	IDs []uint `json:"ids"`
}

func (h *EditaisHandler) ReordenarPerguntas(c *gin.Context) {
	estagioID, ok := paramID(c, "estagio_id")
	if !ok {
		return
	}
	var form reordenarForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}
	if err := h.svc.ReordenarPerguntas(estagioID, form.IDs); err != nil {
		h.erroEdital(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reordenadas": true})
}

type selecaoAvaliadoresForm struct {
	PessoaIDs []uint `json:"pessoa_ids"`
}

func (h *EditaisHandler) SelecionarAvaliadores(c *gin.Context) {
	editalID, ok := paramID(c, "id")
	if !ok {
		return
	}
	estagioID, ok := paramID(c, "estagio_id")
	if !ok {
		return
	}
	var form selecaoAvaliadoresForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}
	if err := h.svc.SelecionarAvaliadores(editalID, estagioID, form.PessoaIDs); err != nil {
		h.erroEdital(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selecionados": true})
}

type distribuicaoForm struct {
	PessoaID uint     `json:"pessoa_id"`
	Projetos []string `json:"projetos"`
}

func (h *EditaisHandler) DistribuirProjetos(c *gin.Context) {
	editalID, ok := paramID(c, "id")
	if !ok {
		return
	}
	estagioID, ok := paramID(c, "estagio_id")
	if !ok {
		return
	}
	var form distribuicaoForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}
	if err := h.svc.DistribuirProjetos(editalID, estagioID, form.PessoaID, form.Projetos); err != nil {
		h.erroEdital(c, err)
		return
	}
	// o quadro devolvido reflete o que acabou de ser salvo, nunca
	// seleções ainda em edição no cliente
	quadro, err := h.svc.Distribuicao(editalID, estagioID)
	if err != nil {
		h.erroEdital(c, err)
		return
	}
	c.JSON(http.StatusOK, quadro)
}

func (h *EditaisHandler) Distribuicao(c *gin.Context) {
	editalID, ok := paramID(c, "id")
	if !ok {
		return
	}
	estagioID, ok := paramID(c, "estagio_id")
	if !ok {
		return
	}
	quadro, err := h.svc.Distribuicao(editalID, estagioID)
	if err != nil {
		h.erroEdital(c, err)
		return
	}
	c.JSON(http.StatusOK, quadro)
}

func (h *EditaisHandler) erroEdital(c *gin.Context, err error) {
	switch {
	case errors.Is(err, edital.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, edital.ErrMissingField),
		errors.Is(err, edital.ErrMissingName),
		errors.Is(err, edital.ErrMissingText),
		errors.Is(err, edital.ErrMissingOptions),
		errors.Is(err, edital.ErrInvalidType),
		errors.Is(err, edital.ErrDuplicateValue),
		errors.Is(err, edital.ErrDuplicateOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno"})
	}
}

func paramID(c *gin.Context, nome string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(nome), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return 0, false
	}
	return uint(id), true
}
