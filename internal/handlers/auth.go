package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"selecao-projetos/internal/auth"
	"selecao-projetos/internal/middleware"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginForm struct {
	Email string `json:"e_mail"`
	Senha string `json:"senha"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}

	s, err := h.svc.Authenticate(form.Email, form.Senha)
	switch {
	case errors.Is(err, auth.ErrNotFound), errors.Is(err, auth.ErrInvalidCredentials):
		// mesma mensagem nos dois casos, para não revelar cadastros
		c.JSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha inválidos!"})
		return
	case errors.Is(err, auth.ErrInactiveAccount):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno"})
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.ChavePessoaID, s.PessoaID)
	sess.Set(middleware.ChaveTipoUsuario, string(s.TipoUsuario))
	sess.Set(middleware.ChaveNome, s.Nome)
	sess.Set(middleware.ChaveProjetos, strings.Join(s.Projetos, ","))
	sess.Set(middleware.ChavePagina, paginaInicial(s.TipoUsuario, s.Projetos))
	if len(s.Projetos) == 1 {
		sess.Set(middleware.ChaveProjeto, s.Projetos[0])
	}
	_ = sess.Save()

	c.JSON(http.StatusOK, sessaoView(sess))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"logado": false, "menu": menus["login"]})
}

type primeiroAcessoForm struct {
	Email  string `json:"e_mail"`
	Codigo string `json:"codigo"`
}

// ValidarPrimeiroAcesso confere e-mail + código de convite antes de o
// cliente exibir o formulário de senha.
func (h *AuthHandler) ValidarPrimeiroAcesso(c *gin.Context) {
	var form primeiroAcessoForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}
	if _, err := h.svc.ValidarConvite(form.Email, form.Codigo); err != nil {
		h.erroAuth(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valido": true})
}

type senhaPrimeiroAcessoForm struct {
	Email       string `json:"e_mail"`
	Codigo      string `json:"codigo"`
	Senha       string `json:"senha"`
	Confirmacao string `json:"confirmacao"`
}

func (h *AuthHandler) SalvarSenhaPrimeiroAcesso(c *gin.Context) {
	var form senhaPrimeiroAcessoForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}
	if err := h.svc.ConcluirPrimeiroAcesso(form.Email, form.Codigo, form.Senha, form.Confirmacao); err != nil {
		h.erroAuth(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagem": "Senha cadastrada com sucesso. Faça o login normalmente."})
}

type recuperarForm struct {
	Email string `json:"e_mail"`
}

// EnviarCodigoRecuperacao envia o código de verificação e o guarda na
// sessão; ele nunca vai para o banco.
func (h *AuthHandler) EnviarCodigoRecuperacao(c *gin.Context) {
	var form recuperarForm
	if err := c.ShouldBindJSON(&form); err != nil || form.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "por favor, insira um e-mail"})
		return
	}

	codigo, err := h.svc.EnviarCodigoVerificacao(form.Email)
	if err != nil {
		h.erroAuth(c, err)
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.ChaveCodigoVerificacao, codigo)
	sess.Set(middleware.ChaveEmailVerificado, strings.TrimSpace(form.Email))
	sess.Set(middleware.ChaveCodigoValidado, false)
	_ = sess.Save()

	c.JSON(http.StatusOK, gin.H{"mensagem": "Código enviado para " + form.Email})
}

type codigoForm struct {
	Codigo string `json:"codigo"`
}

func (h *AuthHandler) VerificarCodigoRecuperacao(c *gin.Context) {
	var form codigoForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}

	sess := sessions.Default(c)
	esperado, _ := sess.Get(middleware.ChaveCodigoVerificacao).(string)
	if esperado == "" || form.Codigo != esperado {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "código inválido, tente novamente"})
		return
	}

	sess.Set(middleware.ChaveCodigoValidado, true)
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"valido": true})
}

type novaSenhaForm struct {
	Senha       string `json:"senha"`
	Confirmacao string `json:"confirmacao"`
}

func (h *AuthHandler) SalvarNovaSenha(c *gin.Context) {
	var form novaSenhaForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dados inválidos"})
		return
	}

	sess := sessions.Default(c)
	validado, _ := sess.Get(middleware.ChaveCodigoValidado).(bool)
	email, _ := sess.Get(middleware.ChaveEmailVerificado).(string)
	if !validado || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "código não verificado"})
		return
	}

	if err := h.svc.RedefinirSenha(email, form.Senha, form.Confirmacao); err != nil {
		h.erroAuth(c, err)
		return
	}

	sess.Delete(middleware.ChaveCodigoVerificacao)
	sess.Delete(middleware.ChaveEmailVerificado)
	sess.Delete(middleware.ChaveCodigoValidado)
	_ = sess.Save()

	c.JSON(http.StatusOK, gin.H{"mensagem": "Senha redefinida com sucesso!"})
}

func (h *AuthHandler) erroAuth(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCode), errors.Is(err, auth.ErrNoPendingInvite):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInactiveAccount):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrMismatch), errors.Is(err, auth.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrTransport):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno"})
	}
}
