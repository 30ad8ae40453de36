package edital

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"selecao-projetos/internal/models"
)

type chaveAtribuicao struct {
	pessoaID, editalID, estagioID uint
}

// memStore guarda tudo em mapas, espelhando o contrato do banco.
type memStore struct {
	editais     map[uint]*models.Edital
	estagios    map[uint]*models.Estagio
	perguntas   map[uint]*models.Pergunta
	atribuicoes map[chaveAtribuicao]*models.AtribuicaoEstagio
	projetos    map[string][]string
	pessoas     map[uint]string

	nextID uint
}

func newMemStore() *memStore {
	return &memStore{
		editais:     make(map[uint]*models.Edital),
		estagios:    make(map[uint]*models.Estagio),
		perguntas:   make(map[uint]*models.Pergunta),
		atribuicoes: make(map[chaveAtribuicao]*models.AtribuicaoEstagio),
		projetos:    make(map[string][]string),
		pessoas:     make(map[uint]string),
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) Editais() ([]models.Edital, error) {
	out := make([]models.Edital, 0, len(s.editais))
	for _, e := range s.editais {
		out = append(out, *e)
	}
	return out, nil
}

func (s *memStore) EditalPorID(id uint) (*models.Edital, error) {
	e, ok := s.editais[id]
	if !ok {
		return nil, nil
	}
	copia := *e
	copia.Estagios = nil
	for _, est := range s.estagios {
		if est.EditalID == id {
			copia.Estagios = append(copia.Estagios, *est)
		}
	}
	sort.Slice(copia.Estagios, func(i, j int) bool {
		return copia.Estagios[i].Ordem < copia.Estagios[j].Ordem
	})
	return &copia, nil
}

func (s *memStore) EditalPorCodigo(codigo string) (*models.Edital, error) {
	for id, e := range s.editais {
		if e.Codigo == codigo {
			return s.EditalPorID(id)
		}
	}
	return nil, nil
}

func (s *memStore) CriarEdital(e *models.Edital) error {
	e.ID = s.id()
	s.editais[e.ID] = e
	return nil
}

func (s *memStore) AtualizarEdital(e *models.Edital) error {
	s.editais[e.ID] = e
	return nil
}

func (s *memStore) EstagioPorID(id uint) (*models.Estagio, error) {
	est, ok := s.estagios[id]
	if !ok {
		return nil, nil
	}
	copia := *est
	copia.Perguntas = nil
	for _, p := range s.perguntas {
		if p.EstagioID == id {
			copia.Perguntas = append(copia.Perguntas, *p)
		}
	}
	sort.Slice(copia.Perguntas, func(i, j int) bool {
		return copia.Perguntas[i].Ordem < copia.Perguntas[j].Ordem
	})
	return &copia, nil
}

func (s *memStore) CriarEstagio(est *models.Estagio) error {
	est.ID = s.id()
	s.estagios[est.ID] = est
	return nil
}

func (s *memStore) PerguntaPorID(id uint) (*models.Pergunta, error) {
	p, ok := s.perguntas[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}

func (s *memStore) CriarPergunta(p *models.Pergunta) error {
	p.ID = s.id()
	s.perguntas[p.ID] = p
	return nil
}

func (s *memStore) AtualizarPergunta(p *models.Pergunta) error {
	s.perguntas[p.ID] = p
	return nil
}

func (s *memStore) RemoverPergunta(id uint) error {
	delete(s.perguntas, id)
	return nil
}

func (s *memStore) SalvarOrdemPergunta(perguntaID uint, ordem int) error {
	s.perguntas[perguntaID].Ordem = ordem
	return nil
}

func (s *memStore) Atribuicoes(editalID, estagioID uint) ([]models.AtribuicaoEstagio, error) {
	var out []models.AtribuicaoEstagio
	for _, a := range s.atribuicoes {
		if a.EditalID == editalID && a.EstagioID == estagioID {
			copia := *a
			copia.Pessoa = models.Pessoa{NomeCompleto: s.pessoas[a.PessoaID]}
			out = append(out, copia)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PessoaID < out[j].PessoaID })
	return out, nil
}

func (s *memStore) AtribuicaoPorChave(pessoaID, editalID, estagioID uint) (*models.AtribuicaoEstagio, error) {
	a, ok := s.atribuicoes[chaveAtribuicao{pessoaID, editalID, estagioID}]
	if !ok {
		return nil, nil
	}
	copia := *a
	return &copia, nil
}

func (s *memStore) CriarAtribuicao(a *models.AtribuicaoEstagio) error {
	a.ID = s.id()
	s.atribuicoes[chaveAtribuicao{a.PessoaID, a.EditalID, a.EstagioID}] = a
	return nil
}

func (s *memStore) AtualizarAtribuicao(a *models.AtribuicaoEstagio) error {
	s.atribuicoes[chaveAtribuicao{a.PessoaID, a.EditalID, a.EstagioID}] = a
	return nil
}

func (s *memStore) RemoverAtribuicao(pessoaID, editalID, estagioID uint) error {
	delete(s.atribuicoes, chaveAtribuicao{pessoaID, editalID, estagioID})
	return nil
}

func (s *memStore) CodigosProjetos(codigoEdital string) ([]string, error) {
	return s.projetos[codigoEdital], nil
}

func novoServico(store Store) *Service {
	return NewService(store, zap.NewNop().Sugar())
}

func criarEditalTeste(t *testing.T, svc *Service) *models.Edital {
	t.Helper()
	e, err := svc.CriarEdital(EntradaEdital{
		Codigo:         "ED-2026-01",
		Nome:           "Edital de Fomento 2026",
		DataLancamento: "15/01/2026",
	})
	require.NoError(t, err)
	return e
}

func TestCriarEdital(t *testing.T) {
	svc := novoServico(newMemStore())

	_, err := svc.CriarEdital(EntradaEdital{Codigo: "ED-1"})
	assert.ErrorIs(t, err, ErrMissingField)

	e := criarEditalTeste(t, svc)
	assert.NotZero(t, e.ID)

	// o código é único entre editais
	_, err = svc.CriarEdital(EntradaEdital{
		Codigo:         "ED-2026-01",
		Nome:           "Outro edital",
		DataLancamento: "01/02/2026",
	})
	assert.ErrorIs(t, err, ErrDuplicateValue)
}

func TestAtualizarEdital(t *testing.T) {
	svc := novoServico(newMemStore())
	e := criarEditalTeste(t, svc)

	// manter o próprio código não conta como duplicidade
	atualizado, err := svc.AtualizarEdital(e.ID, EntradaEdital{
		Codigo:         "ED-2026-01",
		Nome:           "Edital de Fomento 2026 (retificado)",
		DataLancamento: "20/01/2026",
	})
	require.NoError(t, err)
	assert.Equal(t, "Edital de Fomento 2026 (retificado)", atualizado.Nome)

	outro, err := svc.CriarEdital(EntradaEdital{
		Codigo:         "ED-2026-02",
		Nome:           "Segundo edital",
		DataLancamento: "01/03/2026",
	})
	require.NoError(t, err)

	_, err = svc.AtualizarEdital(outro.ID, EntradaEdital{
		Codigo:         "ED-2026-01",
		Nome:           "Segundo edital",
		DataLancamento: "01/03/2026",
	})
	assert.ErrorIs(t, err, ErrDuplicateValue)

	_, err = svc.AtualizarEdital(999, EntradaEdital{
		Codigo:         "ED-2026-03",
		Nome:           "Fantasma",
		DataLancamento: "01/04/2026",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdicionarEstagio(t *testing.T) {
	svc := novoServico(newMemStore())
	e := criarEditalTeste(t, svc)

	_, err := svc.AdicionarEstagio(e.ID, "  ", 1)
	assert.ErrorIs(t, err, ErrMissingName)

	_, err = svc.AdicionarEstagio(e.ID, "Habilitação", 1)
	require.NoError(t, err)
	_, err = svc.AdicionarEstagio(e.ID, "Mérito", 2)
	require.NoError(t, err)

	// a ordem é única dentro do edital
	_, err = svc.AdicionarEstagio(e.ID, "Recurso", 2)
	assert.ErrorIs(t, err, ErrDuplicateOrder)
}

func TestAdicionarPergunta(t *testing.T) {
	svc := novoServico(newMemStore())
	e := criarEditalTeste(t, svc)
	est, err := svc.AdicionarEstagio(e.ID, "Mérito", 1)
	require.NoError(t, err)

	_, err = svc.AdicionarPergunta(est.ID, EntradaPergunta{Tipo: "inexistente", Texto: "x"})
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = svc.AdicionarPergunta(est.ID, EntradaPergunta{Tipo: models.PerguntaTextoCurto, Texto: "   "})
	assert.ErrorIs(t, err, ErrMissingText)

	// escolha sem nenhuma opção preenchida é rejeitada
	_, err = svc.AdicionarPergunta(est.ID, EntradaPergunta{
		Tipo:   models.PerguntaEscolhaUnica,
		Texto:  "Qual a área?",
		Opcoes: []string{" ", ""},
	})
	assert.ErrorIs(t, err, ErrMissingOptions)

	p1, err := svc.AdicionarPergunta(est.ID, EntradaPergunta{Tipo: models.PerguntaTextoCurto, Texto: "Título do projeto"})
	require.NoError(t, err)
	p2, err := svc.AdicionarPergunta(est.ID, EntradaPergunta{
		Tipo:   models.PerguntaEscolhaUnica,
		Texto:  "Qual a área?",
		Opcoes: []string{"Cultura", " ", "Esporte"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, p1.Ordem)
	assert.Equal(t, 2, p2.Ordem)
	assert.Equal(t, models.Lista{"Cultura", "Esporte"}, p2.Opcoes)
}

func TestAtualizarPergunta(t *testing.T) {
	svc := novoServico(newMemStore())
	e := criarEditalTeste(t, svc)
	est, err := svc.AdicionarEstagio(e.ID, "Mérito", 1)
	require.NoError(t, err)
	p, err := svc.AdicionarPergunta(est.ID, EntradaPergunta{
		Tipo:   models.PerguntaEscolhaUnica,
		Texto:  "Qual a área?",
		Opcoes: []string{"Cultura"},
	})
	require.NoError(t, err)

	// mudar para um tipo sem opções limpa as opções guardadas
	atualizada, err := svc.AtualizarPergunta(p.ID, EntradaPergunta{
		Tipo:  models.PerguntaTextoLongo,
		Texto: "Descreva a área de atuação",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PerguntaTextoLongo, atualizada.Tipo)
	assert.Empty(t, atualizada.Opcoes)
	assert.Equal(t, p.Ordem, atualizada.Ordem)
}

func TestReordenarPerguntas(t *testing.T) {
	store := newMemStore()
	svc := novoServico(store)
	e := criarEditalTeste(t, svc)
	est, err := svc.AdicionarEstagio(e.ID, "Mérito", 1)
	require.NoError(t, err)

	var ids []uint
	for _, texto := range []string{"Q1", "Q2", "Q3"} {
		p, err := svc.AdicionarPergunta(est.ID, EntradaPergunta{Tipo: models.PerguntaTextoCurto, Texto: texto})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	// a lista precisa cobrir exatamente as perguntas do estágio
	err = svc.ReordenarPerguntas(est.ID, []uint{ids[0], ids[1]})
	assert.ErrorIs(t, err, ErrNotFound)
	err = svc.ReordenarPerguntas(est.ID, []uint{ids[0], ids[1], 999})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.ReordenarPerguntas(est.ID, []uint{ids[1], ids[0], ids[2]}))

	recarregado, err := store.EstagioPorID(est.ID)
	require.NoError(t, err)
	require.Len(t, recarregado.Perguntas, 3)
	assert.Equal(t, "Q2", recarregado.Perguntas[0].Texto)
	assert.Equal(t, "Q1", recarregado.Perguntas[1].Texto)
	assert.Equal(t, "Q3", recarregado.Perguntas[2].Texto)
}

func TestSelecionarAvaliadores(t *testing.T) {
	store := newMemStore()
	svc := novoServico(store)
	e := criarEditalTeste(t, svc)
	est, err := svc.AdicionarEstagio(e.ID, "Mérito", 1)
	require.NoError(t, err)

	require.NoError(t, svc.SelecionarAvaliadores(e.ID, est.ID, []uint{10, 11}))
	atuais, _ := store.Atribuicoes(e.ID, est.ID)
	require.Len(t, atuais, 2)

	// repetir a mesma seleção não duplica nada
	require.NoError(t, svc.SelecionarAvaliadores(e.ID, est.ID, []uint{10, 11}))
	atuais, _ = store.Atribuicoes(e.ID, est.ID)
	require.Len(t, atuais, 2)

	// desmarcar remove a atribuição, marcar cria
	require.NoError(t, svc.SelecionarAvaliadores(e.ID, est.ID, []uint{11, 12}))
	atuais, _ = store.Atribuicoes(e.ID, est.ID)
	require.Len(t, atuais, 2)
	assert.Equal(t, uint(11), atuais[0].PessoaID)
	assert.Equal(t, uint(12), atuais[1].PessoaID)

	err = svc.SelecionarAvaliadores(e.ID, 999, []uint{10})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDistribuirProjetos(t *testing.T) {
	store := newMemStore()
	svc := novoServico(store)
	e := criarEditalTeste(t, svc)
	est, err := svc.AdicionarEstagio(e.ID, "Mérito", 1)
	require.NoError(t, err)

	// distribui mesmo sem atribuição prévia
	require.NoError(t, svc.DistribuirProjetos(e.ID, est.ID, 10, []string{"P1", "P2"}))
	a, _ := store.AtribuicaoPorChave(10, e.ID, est.ID)
	require.NotNil(t, a)
	assert.Equal(t, models.Lista{"P1", "P2"}, a.Projetos)

	// a nova lista substitui a anterior por inteiro
	require.NoError(t, svc.DistribuirProjetos(e.ID, est.ID, 10, []string{"P3"}))
	a, _ = store.AtribuicaoPorChave(10, e.ID, est.ID)
	assert.Equal(t, models.Lista{"P3"}, a.Projetos)
}

func TestDistribuicao(t *testing.T) {
	store := newMemStore()
	store.pessoas[10] = "Ana"
	store.pessoas[11] = "Bruno"
	svc := novoServico(store)
	e := criarEditalTeste(t, svc)
	store.projetos[e.Codigo] = []string{"P1", "P2", "P3"}
	est, err := svc.AdicionarEstagio(e.ID, "Mérito", 1)
	require.NoError(t, err)

	require.NoError(t, svc.DistribuirProjetos(e.ID, est.ID, 10, []string{"P1", "P2"}))
	require.NoError(t, svc.DistribuirProjetos(e.ID, est.ID, 11, []string{"P2"}))

	quadro, err := svc.Distribuicao(e.ID, est.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"P1": 1, "P2": 2, "P3": 0}, quadro.PorProjeto)
	assert.Equal(t, []ContagemAvaliador{
		{Avaliador: "Ana", Projetos: 2},
		{Avaliador: "Bruno", Projetos: 1},
	}, quadro.PorAvaliador)

	_, err = svc.Distribuicao(999, est.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
