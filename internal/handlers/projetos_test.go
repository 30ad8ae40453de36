package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selecao-projetos/internal/middleware"
	"selecao-projetos/internal/models"
)

type stubProjetoStore struct {
	projetos []models.Projeto
	pedidos  [][]string
}

func (s *stubProjetoStore) Projetos() ([]models.Projeto, error)        { return s.projetos, nil }
func (s *stubProjetoStore) PorEdital(string) ([]models.Projeto, error) { return s.projetos, nil }

func (s *stubProjetoStore) PorCodigos(codigos []string) ([]models.Projeto, error) {
	s.pedidos = append(s.pedidos, codigos)
	var out []models.Projeto
	for _, p := range s.projetos {
		for _, c := range codigos {
			if p.Codigo == c {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (s *stubProjetoStore) CodigosDoEdital(string) ([]string, error) { return nil, nil }
func (s *stubProjetoStore) Criar(*models.Projeto) error              { return nil }
func (s *stubProjetoStore) CriarProjetos([]*models.Projeto) error    { return nil }

// servidorProjetos monta um router mínimo com sessão de cookie e uma rota
// de entrada que grava os códigos de projeto na sessão.
func servidorProjetos(store *stubProjetoStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("teste_session", cookie.NewStore([]byte("segredo"))))
	r.POST("/entrar", func(c *gin.Context) {
		sess := sessions.Default(c)
		sess.Set(middleware.ChavePessoaID, uint(7))
		sess.Set(middleware.ChaveProjetos, c.Query("projetos"))
		_ = sess.Save()
		c.Status(http.StatusOK)
	})
	h := NewProjetosHandler(store, nil, nil)
	r.GET("/api/projetos/meus", h.MeusProjetos)
	return r
}

func entrar(t *testing.T, r *gin.Engine, projetos string) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/entrar?projetos="+projetos, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func TestMeusProjetos(t *testing.T) {
	store := &stubProjetoStore{projetos: []models.Projeto{
		{Codigo: "P1", Sigla: "ALFA", Nome: "Projeto Alfa"},
		{Codigo: "P2", Sigla: "BETA", Nome: "Projeto Beta"},
		{Codigo: "P3", Sigla: "GAMA", Nome: "Projeto Gama"},
	}}
	r := servidorProjetos(store)
	cookies := entrar(t, r, "P1,P3")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/projetos/meus", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var corpo struct {
		Projetos []models.Projeto `json:"projetos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &corpo))

	// devolve os registros completos, só dos códigos da sessão
	require.Len(t, corpo.Projetos, 2)
	assert.Equal(t, "ALFA", corpo.Projetos[0].Sigla)
	assert.Equal(t, "GAMA", corpo.Projetos[1].Sigla)
	require.Len(t, store.pedidos, 1)
	assert.Equal(t, []string{"P1", "P3"}, store.pedidos[0])
}

func TestMeusProjetosSemProjetos(t *testing.T) {
	store := &stubProjetoStore{}
	r := servidorProjetos(store)
	cookies := entrar(t, r, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/projetos/meus", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var corpo struct {
		Projetos []models.Projeto `json:"projetos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &corpo))
	assert.Empty(t, corpo.Projetos)
	// sessão sem projetos nem chega ao banco
	assert.Empty(t, store.pedidos)
}
