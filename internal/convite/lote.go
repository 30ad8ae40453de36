package convite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"selecao-projetos/internal/mailer"
	"selecao-projetos/internal/models"
)

// Erros de validação do lote. Qualquer um deles aborta a importação
// inteira: nenhum cadastro é realizado até o arquivo ser corrigido.
var (
	ErrArquivoVazio          = errors.New("o arquivo enviado está vazio")
	ErrColunasFaltando       = errors.New("faltam colunas obrigatórias no arquivo")
	ErrEmailsInvalidos       = errors.New("existem e-mails inválidos")
	ErrSubtipoInvalido       = errors.New("existem registros com tipo_beneficiario inválido (valores válidos: técnico ou financeiro)")
	ErrEmailsDuplicados      = errors.New("existem e-mails duplicados dentro do próprio arquivo")
	ErrEmailsJaCadastrados   = errors.New("existem e-mails que já estão cadastrados")
	ErrProjetosDesconhecidos = errors.New("existem projetos com códigos inválidos ou inexistentes")
)

// CabecalhosModelo é a linha de cabeçalho do modelo de planilha que os
// operadores baixam para o convite em massa.
var CabecalhosModelo = []string{
	"nome_completo",
	"e_mail",
	"tipo_beneficiario (técnico ou financeiro)",
	"telefone (opcional)",
	"projetos (códigos separados por vírgula) (opcional)",
}

var mapaCabecalhos = map[string]string{
	"nome_completo": "nome_completo",
	"e_mail":        "e_mail",
	"tipo_beneficiario (técnico ou financeiro)":           "tipo_beneficiario",
	"tipo_beneficiario":                                   "tipo_beneficiario",
	"telefone (opcional)":                                 "telefone",
	"telefone":                                            "telefone",
	"projetos (códigos separados por vírgula) (opcional)": "projetos",
	"projetos":                                            "projetos",
}

// LinhaImportacao é uma linha de dados já extraída do arquivo. Num começa
// em 1 na primeira linha abaixo do cabeçalho.
type LinhaImportacao struct {
	Num              int      `json:"linha"`
	NomeCompleto     string   `json:"nome_completo"`
	Email            string   `json:"e_mail"`
	TipoBeneficiario string   `json:"tipo_beneficiario"`
	Telefone         string   `json:"telefone"`
	Projetos         []string `json:"projetos"`
}

// ErroLote carrega o motivo da rejeição e as linhas ofensoras, para o
// operador corrigir e reenviar o arquivo.
type ErroLote struct {
	Motivo  error
	Linhas  []int
	Colunas []string
}

func (e *ErroLote) Error() string {
	switch {
	case len(e.Colunas) > 0:
		return fmt.Sprintf("%s: %s", e.Motivo, strings.Join(e.Colunas, ", "))
	case len(e.Linhas) > 0:
		return fmt.Sprintf("%s (linhas %v)", e.Motivo, e.Linhas)
	default:
		return e.Motivo.Error()
	}
}

func (e *ErroLote) Unwrap() error { return e.Motivo }

// ValidarLote roda a validação completa sobre as linhas da planilha
// (cabeçalho incluído) e devolve as linhas prontas para confirmação.
func (s *Service) ValidarLote(linhas [][]string) ([]LinhaImportacao, error) {
	if len(linhas) == 0 {
		return nil, &ErroLote{Motivo: ErrArquivoVazio}
	}

	// 1) resolve o cabeçalho para os nomes canônicos
	colunas := make(map[string]int)
	for i, h := range linhas[0] {
		chave := strings.ToLower(strings.TrimSpace(h))
		if nome, ok := mapaCabecalhos[chave]; ok {
			colunas[nome] = i
		}
	}

	var faltando []string
	for _, obrigatoria := range []string{"nome_completo", "e_mail", "tipo_beneficiario"} {
		if _, ok := colunas[obrigatoria]; !ok {
			faltando = append(faltando, obrigatoria)
		}
	}
	if len(faltando) > 0 {
		return nil, &ErroLote{Motivo: ErrColunasFaltando, Colunas: faltando}
	}

	celula := func(linha []string, nome string) string {
		idx, ok := colunas[nome]
		if !ok || idx >= len(linha) {
			return ""
		}
		return strings.TrimSpace(linha[idx])
	}

	// 2) extrai as linhas de dados, ignorando as totalmente em branco
	var lote []LinhaImportacao
	for i, linha := range linhas[1:] {
		vazia := true
		for _, c := range linha {
			if strings.TrimSpace(c) != "" {
				vazia = false
				break
			}
		}
		if vazia {
			continue
		}
		lote = append(lote, LinhaImportacao{
			Num:              i + 1,
			NomeCompleto:     celula(linha, "nome_completo"),
			Email:            celula(linha, "e_mail"),
			TipoBeneficiario: celula(linha, "tipo_beneficiario"),
			Telefone:         celula(linha, "telefone"),
			Projetos:         separarCodigos(celula(linha, "projetos")),
		})
	}
	if len(lote) == 0 {
		return nil, &ErroLote{Motivo: ErrArquivoVazio}
	}

	// 3) e-mails sintaticamente válidos
	var invalidos []int
	for _, l := range lote {
		if !ValidarEmail(l.Email) {
			invalidos = append(invalidos, l.Num)
		}
	}
	if len(invalidos) > 0 {
		return nil, &ErroLote{Motivo: ErrEmailsInvalidos, Linhas: invalidos}
	}

	// 4) tipo_beneficiario dentro da enumeração, nunca em branco
	var subtipos []int
	for _, l := range lote {
		if !models.TipoBeneficiarioValido(models.TipoBeneficiario(l.TipoBeneficiario)) {
			subtipos = append(subtipos, l.Num)
		}
	}
	if len(subtipos) > 0 {
		return nil, &ErroLote{Motivo: ErrSubtipoInvalido, Linhas: subtipos}
	}

	// 5) duplicidade dentro do próprio arquivo
	porEmail := make(map[string][]int)
	for _, l := range lote {
		porEmail[strings.ToLower(l.Email)] = append(porEmail[strings.ToLower(l.Email)], l.Num)
	}
	var duplicados []int
	for _, l := range lote {
		if len(porEmail[strings.ToLower(l.Email)]) > 1 {
			duplicados = append(duplicados, l.Num)
		}
	}
	if len(duplicados) > 0 {
		return nil, &ErroLote{Motivo: ErrEmailsDuplicados, Linhas: duplicados}
	}

	// 6) duplicidade contra o banco
	cadastrados, err := s.store.EmailsCadastrados()
	if err != nil {
		return nil, err
	}
	existentes := make(map[string]bool, len(cadastrados))
	for _, e := range cadastrados {
		existentes[strings.ToLower(e)] = true
	}
	var conflitos []int
	for _, l := range lote {
		if existentes[strings.ToLower(l.Email)] {
			conflitos = append(conflitos, l.Num)
		}
	}
	if len(conflitos) > 0 {
		return nil, &ErroLote{Motivo: ErrEmailsJaCadastrados, Linhas: conflitos}
	}

	// 7) códigos de projeto conhecidos
	codigos, err := s.store.CodigosProjetos()
	if err != nil {
		return nil, err
	}
	conhecidos := make(map[string]bool, len(codigos))
	for _, c := range codigos {
		conhecidos[c] = true
	}
	var projetosInvalidos []int
	for _, l := range lote {
		for _, c := range l.Projetos {
			if !conhecidos[c] {
				projetosInvalidos = append(projetosInvalidos, l.Num)
				break
			}
		}
	}
	if len(projetosInvalidos) > 0 {
		return nil, &ErroLote{Motivo: ErrProjetosDesconhecidos, Linhas: projetosInvalidos}
	}

	return lote, nil
}

type FalhaEnvio struct {
	Email string `json:"e_mail"`
	Erro  string `json:"erro"`
}

type RelatorioImportacao struct {
	Lote      string       `json:"lote"`
	Inseridas int          `json:"inseridas"`
	Enviados  int          `json:"enviados"`
	Falhas    []FalhaEnvio `json:"falhas"`
}

// ConfirmarLote insere todas as linhas como beneficiários convidados
// (cada uma com código próprio de 6 dígitos) e depois envia os convites
// um a um. Falha de envio não desfaz os cadastros já gravados; as falhas
// entram no relatório.
func (s *Service) ConfirmarLote(lote []LinhaImportacao) (*RelatorioImportacao, error) {
	hoje := s.hoje()
	pessoas := make([]*models.Pessoa, 0, len(lote))
	for _, l := range lote {
		pessoas = append(pessoas, &models.Pessoa{
			NomeCompleto:     l.NomeCompleto,
			Email:            l.Email,
			Telefone:         l.Telefone,
			TipoUsuario:      models.RoleBeneficiario,
			TipoBeneficiario: models.TipoBeneficiario(l.TipoBeneficiario),
			Status:           models.StatusConvidado,
			CodigoConvite:    s.gerarCodigo(),
			DataConvite:      hoje,
			Projetos:         l.Projetos,
		})
	}
	if err := s.store.CriarPessoas(pessoas); err != nil {
		return nil, err
	}

	rel := &RelatorioImportacao{
		Lote:      uuid.NewString(),
		Inseridas: len(pessoas),
	}
	for _, p := range pessoas {
		assunto, corpo := mailer.CorpoConvite(p.NomeCompleto, p.CodigoConvite, s.baseURL)
		if err := s.mailer.Send(p.Email, assunto, corpo); err != nil {
			s.log.Errorw("falha ao enviar convite do lote",
				"lote", rel.Lote, "email", p.Email, "error", err)
			rel.Falhas = append(rel.Falhas, FalhaEnvio{Email: p.Email, Erro: err.Error()})
			continue
		}
		rel.Enviados++
	}
	return rel, nil
}

func separarCodigos(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, parte := range strings.Split(s, ",") {
		if v := strings.TrimSpace(parte); v != "" {
			out = append(out, v)
		}
	}
	return out
}
