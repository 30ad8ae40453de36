package edital

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"selecao-projetos/internal/models"
)

var (
	ErrNotFound       = errors.New("registro não encontrado")
	ErrMissingField   = errors.New("todos os campos são obrigatórios")
	ErrDuplicateValue = errors.New("já existe um edital com este código")
	ErrDuplicateOrder = errors.New("já existe um estágio com esta ordem neste edital")
	ErrMissingName    = errors.New("o nome do estágio é obrigatório")
	ErrMissingText    = errors.New("o texto da pergunta é obrigatório")
	ErrMissingOptions = errors.New("perguntas de escolha precisam de pelo menos uma opção")
	ErrInvalidType    = errors.New("tipo de pergunta inválido")
)

// Store é o acesso a editais, estágios, perguntas e atribuições.
type Store interface {
	Editais() ([]models.Edital, error)
	// EditalPorID devolve (nil, nil) quando não há registro; estágios e
	// perguntas vêm carregados e ordenados.
	EditalPorID(id uint) (*models.Edital, error)
	EditalPorCodigo(codigo string) (*models.Edital, error)
	CriarEdital(*models.Edital) error
	AtualizarEdital(*models.Edital) error

	EstagioPorID(id uint) (*models.Estagio, error)
	CriarEstagio(*models.Estagio) error

	PerguntaPorID(id uint) (*models.Pergunta, error)
	CriarPergunta(*models.Pergunta) error
	AtualizarPergunta(*models.Pergunta) error
	RemoverPergunta(id uint) error
	SalvarOrdemPergunta(perguntaID uint, ordem int) error

	// Atribuicoes devolve as linhas do estágio com Pessoa carregada.
	Atribuicoes(editalID, estagioID uint) ([]models.AtribuicaoEstagio, error)
	AtribuicaoPorChave(pessoaID, editalID, estagioID uint) (*models.AtribuicaoEstagio, error)
	CriarAtribuicao(*models.AtribuicaoEstagio) error
	AtualizarAtribuicao(*models.AtribuicaoEstagio) error
	RemoverAtribuicao(pessoaID, editalID, estagioID uint) error

	CodigosProjetos(codigoEdital string) ([]string, error)
}

type Service struct {
	store Store
	log   *zap.SugaredLogger
}

func NewService(store Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log}
}

type EntradaEdital struct {
	Codigo                string `json:"codigo_edital"`
	Nome                  string `json:"nome_edital"`
	DataLancamento        string `json:"data_lancamento"`
	IDPlanilhaRecebimento string `json:"id_planilha_recebimento"`
}

func (in *EntradaEdital) normalizar() {
	in.Codigo = strings.TrimSpace(in.Codigo)
	in.Nome = strings.TrimSpace(in.Nome)
	in.DataLancamento = strings.TrimSpace(in.DataLancamento)
	in.IDPlanilhaRecebimento = strings.TrimSpace(in.IDPlanilhaRecebimento)
}

func (s *Service) Listar() ([]models.Edital, error) {
	return s.store.Editais()
}

func (s *Service) PorID(id uint) (*models.Edital, error) {
	e, err := s.store.EditalPorID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *Service) CriarEdital(in EntradaEdital) (*models.Edital, error) {
	in.normalizar()
	if in.Codigo == "" || in.Nome == "" || in.DataLancamento == "" {
		return nil, ErrMissingField
	}
	existente, err := s.store.EditalPorCodigo(in.Codigo)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, ErrDuplicateValue
	}

	e := &models.Edital{
		Codigo:                in.Codigo,
		Nome:                  in.Nome,
		DataLancamento:        in.DataLancamento,
		IDPlanilhaRecebimento: in.IDPlanilhaRecebimento,
	}
	if err := s.store.CriarEdital(e); err != nil {
		return nil, err
	}
	return e, nil
}

// AtualizarEdital substitui os campos escalares do edital.
func (s *Service) AtualizarEdital(id uint, in EntradaEdital) (*models.Edital, error) {
	in.normalizar()
	if in.Codigo == "" || in.Nome == "" || in.DataLancamento == "" {
		return nil, ErrMissingField
	}
	e, err := s.store.EditalPorID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	outro, err := s.store.EditalPorCodigo(in.Codigo)
	if err != nil {
		return nil, err
	}
	if outro != nil && outro.ID != e.ID {
		return nil, ErrDuplicateValue
	}

	e.Codigo = in.Codigo
	e.Nome = in.Nome
	e.DataLancamento = in.DataLancamento
	e.IDPlanilhaRecebimento = in.IDPlanilhaRecebimento
	if err := s.store.AtualizarEdital(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) AdicionarEstagio(editalID uint, nome string, ordem int) (*models.Estagio, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return nil, ErrMissingName
	}
	e, err := s.store.EditalPorID(editalID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	for _, est := range e.Estagios {
		if est.Ordem == ordem {
			return nil, ErrDuplicateOrder
		}
	}

	est := &models.Estagio{EditalID: e.ID, Nome: nome, Ordem: ordem}
	if err := s.store.CriarEstagio(est); err != nil {
		return nil, err
	}
	return est, nil
}

type EntradaPergunta struct {
	Tipo   models.TipoPergunta `json:"tipo"`
	Texto  string              `json:"texto"`
	Opcoes []string            `json:"opcoes"`
}

func (in *EntradaPergunta) validar() error {
	if !models.TipoPerguntaValido(in.Tipo) {
		return ErrInvalidType
	}
	if strings.TrimSpace(in.Texto) == "" {
		return ErrMissingText
	}
	if in.Tipo.EhEscolha() {
		temOpcao := false
		for _, o := range in.Opcoes {
			if strings.TrimSpace(o) != "" {
				temOpcao = true
				break
			}
		}
		if !temOpcao {
			return ErrMissingOptions
		}
	}
	return nil
}

// AdicionarPergunta acrescenta a pergunta ao final do estágio
// (ordem = quantidade atual + 1).
func (s *Service) AdicionarPergunta(estagioID uint, in EntradaPergunta) (*models.Pergunta, error) {
	if err := in.validar(); err != nil {
		return nil, err
	}
	est, err := s.store.EstagioPorID(estagioID)
	if err != nil {
		return nil, err
	}
	if est == nil {
		return nil, ErrNotFound
	}

	p := &models.Pergunta{
		EstagioID: est.ID,
		Ordem:     len(est.Perguntas) + 1,
		Tipo:      in.Tipo,
		Texto:     strings.TrimSpace(in.Texto),
	}
	if in.Tipo.EhEscolha() {
		p.Opcoes = limparOpcoes(in.Opcoes)
	}
	if err := s.store.CriarPergunta(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) AtualizarPergunta(perguntaID uint, in EntradaPergunta) (*models.Pergunta, error) {
	if err := in.validar(); err != nil {
		return nil, err
	}
	p, err := s.store.PerguntaPorID(perguntaID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	p.Tipo = in.Tipo
	p.Texto = strings.TrimSpace(in.Texto)
	if in.Tipo.EhEscolha() {
		p.Opcoes = limparOpcoes(in.Opcoes)
	} else {
		p.Opcoes = nil
	}
	if err := s.store.AtualizarPergunta(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) RemoverPergunta(perguntaID uint) error {
	p, err := s.store.PerguntaPorID(perguntaID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNotFound
	}
	return s.store.RemoverPergunta(p.ID)
}

// ReordenarPerguntas reatribui as ordens 1..N seguindo a sequência de IDs
// informada, que deve cobrir exatamente as perguntas do estágio.
func (s *Service) ReordenarPerguntas(estagioID uint, idsOrdenados []uint) error {
	est, err := s.store.EstagioPorID(estagioID)
	if err != nil {
		return err
	}
	if est == nil {
		return ErrNotFound
	}
	if len(idsOrdenados) != len(est.Perguntas) {
		return ErrNotFound
	}
	doEstagio := make(map[uint]bool, len(est.Perguntas))
	for _, p := range est.Perguntas {
		doEstagio[p.ID] = true
	}
	for _, id := range idsOrdenados {
		if !doEstagio[id] {
			return ErrNotFound
		}
		delete(doEstagio, id)
	}

	for i, id := range idsOrdenados {
		if err := s.store.SalvarOrdemPergunta(id, i+1); err != nil {
			return err
		}
	}
	return nil
}

// SelecionarAvaliadores sincroniza a lista de avaliadores marcados para o
// estágio: cria a atribuição de quem foi marcado (idempotente) e remove a
// de quem foi desmarcado. A pessoa em si nunca é removida.
func (s *Service) SelecionarAvaliadores(editalID, estagioID uint, pessoaIDs []uint) error {
	est, err := s.store.EstagioPorID(estagioID)
	if err != nil {
		return err
	}
	if est == nil || est.EditalID != editalID {
		return ErrNotFound
	}

	atuais, err := s.store.Atribuicoes(editalID, estagioID)
	if err != nil {
		return err
	}
	marcados := make(map[uint]bool, len(pessoaIDs))
	for _, id := range pessoaIDs {
		marcados[id] = true
	}
	existentes := make(map[uint]bool, len(atuais))
	for _, a := range atuais {
		existentes[a.PessoaID] = true
		if !marcados[a.PessoaID] {
			if err := s.store.RemoverAtribuicao(a.PessoaID, editalID, estagioID); err != nil {
				return err
			}
		}
	}
	for _, id := range pessoaIDs {
		if existentes[id] {
			continue
		}
		a := &models.AtribuicaoEstagio{PessoaID: id, EditalID: editalID, EstagioID: estagioID}
		if err := s.store.CriarAtribuicao(a); err != nil {
			return err
		}
	}
	return nil
}

// DistribuirProjetos sobrescreve a lista de projetos do avaliador naquele
// estágio com exatamente o conjunto informado.
func (s *Service) DistribuirProjetos(editalID, estagioID, pessoaID uint, codigos []string) error {
	a, err := s.store.AtribuicaoPorChave(pessoaID, editalID, estagioID)
	if err != nil {
		return err
	}
	if a == nil {
		a = &models.AtribuicaoEstagio{PessoaID: pessoaID, EditalID: editalID, EstagioID: estagioID}
		if err := s.store.CriarAtribuicao(a); err != nil {
			return err
		}
	}
	a.Projetos = codigos
	return s.store.AtualizarAtribuicao(a)
}

// QuadroDistribuicao é o modelo de visão da página de distribuição: as
// atribuições salvas e os dois placares, sempre recalculados do que está
// persistido (seleções ainda não salvas não aparecem).
type QuadroDistribuicao struct {
	Atribuicoes  []models.AtribuicaoEstagio `json:"atribuicoes"`
	PorProjeto   map[string]int             `json:"por_projeto"`
	PorAvaliador []ContagemAvaliador        `json:"por_avaliador"`
}

func (s *Service) Distribuicao(editalID, estagioID uint) (*QuadroDistribuicao, error) {
	e, err := s.store.EditalPorID(editalID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	atribuicoes, err := s.store.Atribuicoes(editalID, estagioID)
	if err != nil {
		return nil, err
	}
	conhecidos, err := s.store.CodigosProjetos(e.Codigo)
	if err != nil {
		return nil, err
	}

	pares := make([]Atribuicao, 0, len(atribuicoes))
	for _, a := range atribuicoes {
		pares = append(pares, Atribuicao{Avaliador: a.Pessoa.NomeCompleto, Projetos: a.Projetos})
	}
	return &QuadroDistribuicao{
		Atribuicoes:  atribuicoes,
		PorProjeto:   TallyPorProjeto(conhecidos, pares),
		PorAvaliador: TallyPorAvaliador(pares),
	}, nil
}

func limparOpcoes(opcoes []string) []string {
	out := make([]string, 0, len(opcoes))
	for _, o := range opcoes {
		if v := strings.TrimSpace(o); v != "" {
			out = append(out, v)
		}
	}
	return out
}
