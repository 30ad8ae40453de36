package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"selecao-projetos/internal/convite"
	"selecao-projetos/internal/database"
	"selecao-projetos/internal/models"
)

type PessoasHandler struct {
	store *database.PessoaStore
}

func NewPessoasHandler(store *database.PessoaStore) *PessoasHandler {
	return &PessoasHandler{store: store}
}

func (h *PessoasHandler) ListarEquipe(c *gin.Context) {
	h.listarPorTipos(c, models.RoleAdmin, models.RoleEquipe)
}

func (h *PessoasHandler) ListarAvaliadores(c *gin.Context) {
	h.listarPorTipos(c, models.RoleAvaliador)
}

func (h *PessoasHandler) ListarVisitantes(c *gin.Context) {
	h.listarPorTipos(c, models.RoleVisitante)
}

func (h *PessoasHandler) listarPorTipos(c *gin.Context, tipos ...models.TipoUsuario) {
	pessoas, err := h.store.PorTipos(tipos...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao listar pessoas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pessoas": pessoas})
}

// ListarConvites lista os convites pendentes (status convidado).
func (h *PessoasHandler) ListarConvites(c *gin.Context) {
	pessoas, err := h.store.PorStatus(models.StatusConvidado)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao listar convites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pessoas": pessoas})
}

type pessoaForm struct {
	NomeCompleto     string   `json:"nome_completo"`
	Email            string   `json:"e_mail"`
	Telefone         string   `json:"telefone"`
	TipoUsuario      string   `json:"tipo_usuario"`
	TipoBeneficiario string   `json:"tipo_beneficiario"`
	Status           string   `json:"status"`
	Projetos         []string `json:"projetos"`
}

// Editar substitui os campos editáveis da pessoa. Trocar o tipo para algo
// que não é beneficiário descarta o subtipo.
func (h *PessoasHandler) Editar(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	var form pessoaForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}

	p, err := h.store.PessoaPorID(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao buscar pessoa"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "pessoa não encontrada"})
		return
	}

	form.NomeCompleto = strings.TrimSpace(form.NomeCompleto)
	form.Email = strings.TrimSpace(form.Email)
	if form.NomeCompleto == "" || form.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nome e e-mail são obrigatórios"})
		return
	}
	if !convite.ValidarEmail(form.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "e-mail inválido"})
		return
	}
	tipo := models.TipoUsuario(form.TipoUsuario)
	if !models.TipoUsuarioValido(tipo) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tipo de usuário inválido"})
		return
	}
	status := models.StatusPessoa(form.Status)
	if status != models.StatusAtivo && status != models.StatusInativo && status != models.StatusConvidado {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status inválido"})
		return
	}

	if !strings.EqualFold(form.Email, p.Email) {
		existe, err := h.store.EmailExiste(form.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao verificar e-mail"})
			return
		}
		if existe {
			c.JSON(http.StatusBadRequest, gin.H{"error": "o e-mail '" + form.Email + "' já está cadastrado"})
			return
		}
	}

	p.NomeCompleto = form.NomeCompleto
	p.Email = form.Email
	p.Telefone = strings.TrimSpace(form.Telefone)
	p.TipoUsuario = tipo
	p.Status = status
	p.Projetos = form.Projetos
	if tipo == models.RoleBeneficiario {
		sub := models.TipoBeneficiario(form.TipoBeneficiario)
		if !models.TipoBeneficiarioValido(sub) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tipo de beneficiário inválido"})
			return
		}
		p.TipoBeneficiario = sub
	} else {
		p.TipoBeneficiario = ""
	}

	if err := h.store.Atualizar(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao salvar pessoa"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Pessoa atualizada com sucesso!", "pessoa": p})
}

type statusForm struct {
	Status string `json:"status"`
}

// AlternarStatus ativa ou inativa uma conta. Contas nunca são removidas.
func (h *PessoasHandler) AlternarStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	var form statusForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}
	status := models.StatusPessoa(form.Status)
	if status != models.StatusAtivo && status != models.StatusInativo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status inválido"})
		return
	}

	p, err := h.store.PessoaPorID(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao buscar pessoa"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "pessoa não encontrada"})
		return
	}

	p.Status = status
	if err := h.store.Atualizar(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao salvar pessoa"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pessoa": p})
}
