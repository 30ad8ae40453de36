package auth

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"selecao-projetos/internal/mailer"
	"selecao-projetos/internal/models"
)

var (
	ErrNotFound           = errors.New("usuário não encontrado")
	ErrInvalidCredentials = errors.New("e-mail ou senha inválidos")
	ErrInactiveAccount    = errors.New("usuário inativo, entre em contato com o administrador")
	ErrInvalidCode        = errors.New("código inválido, verifique o e-mail enviado")
	ErrNoPendingInvite    = errors.New("não há convite pendente para este usuário")
	ErrMismatch           = errors.New("as senhas não coincidem")
	ErrWeakPassword       = errors.New("a senha deve ter pelo menos 8 caracteres e conter letras e números")
	ErrTransport          = errors.New("erro ao enviar o e-mail, tente novamente")
)

// Store é o acesso a pessoas que o autenticador precisa.
type Store interface {
	// PessoaPorEmail busca por e-mail exato, sem diferenciar maiúsculas.
	// Devolve (nil, nil) quando não há registro.
	PessoaPorEmail(email string) (*models.Pessoa, error)

	// SalvarSenha grava o hash sem alterar status (fluxo de redefinição).
	SalvarSenha(pessoaID uint, hash string) error

	// AtivarComSenha grava o hash, muda status para ativo e limpa o
	// código de convite (fluxo de primeiro acesso).
	AtivarComSenha(pessoaID uint, hash string) error
}

// Sessao é o que uma autenticação bem-sucedida devolve para a camada HTTP.
type Sessao struct {
	PessoaID    uint               `json:"pessoa_id"`
	Nome        string             `json:"nome"`
	TipoUsuario models.TipoUsuario `json:"tipo_usuario"`
	Projetos    []string           `json:"projetos"`
}

type Service struct {
	store   Store
	mailer  mailer.Mailer
	log     *zap.SugaredLogger
	baseURL string

	randInt func(n int) int // mockable
}

func NewService(store Store, m mailer.Mailer, baseURL string, log *zap.SugaredLogger) *Service {
	return &Service{
		store:   store,
		mailer:  m,
		log:     log,
		baseURL: baseURL,
		randInt: rand.Intn,
	}
}

// Authenticate valida e-mail e senha e devolve os dados da sessão.
// O status só é verificado depois de as credenciais conferirem.
func (s *Service) Authenticate(email, senha string) (*Sessao, error) {
	p, err := s.store.PessoaPorEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if p.Senha == "" {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(p.Senha), []byte(senha)) != nil {
		return nil, ErrInvalidCredentials
	}
	if p.Status != models.StatusAtivo {
		return nil, ErrInactiveAccount
	}
	return &Sessao{
		PessoaID:    p.ID,
		Nome:        p.NomeCompleto,
		TipoUsuario: p.TipoUsuario,
		Projetos:    p.Projetos,
	}, nil
}

// ValidarSenha aplica a política de senha: mínimo de 8 caracteres,
// contendo letras e números.
func ValidarSenha(senha string) bool {
	if len(senha) < 8 {
		return false
	}
	var temLetra, temDigito bool
	for _, c := range senha {
		switch {
		case c >= '0' && c <= '9':
			temDigito = true
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			temLetra = true
		}
	}
	return temLetra && temDigito
}

// GerarCodigoConvite gera o código numérico de 6 dígitos enviado nos convites.
func (s *Service) GerarCodigoConvite() string {
	return fmt.Sprintf("%06d", s.randInt(1000000))
}

// gerarCodigoVerificacao gera o código de 3 dígitos da redefinição de senha.
func (s *Service) gerarCodigoVerificacao() string {
	return fmt.Sprintf("%d", 100+s.randInt(900))
}

// EnviarCodigoVerificacao envia por e-mail um código de redefinição de
// senha e o devolve para ser guardado na sessão. O código nunca é
// persistido no banco.
func (s *Service) EnviarCodigoVerificacao(email string) (string, error) {
	p, err := s.store.PessoaPorEmail(strings.TrimSpace(email))
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", ErrNotFound
	}
	if p.Status != models.StatusAtivo {
		return "", ErrInactiveAccount
	}

	codigo := s.gerarCodigoVerificacao()
	assunto, corpo := mailer.CorpoCodigoVerificacao(codigo)
	if err := s.mailer.Send(p.Email, assunto, corpo); err != nil {
		s.log.Errorw("falha ao enviar código de verificação", "email", p.Email, "error", err)
		return "", ErrTransport
	}
	return codigo, nil
}

// ValidarConvite confere o código de convite do primeiro acesso.
func (s *Service) ValidarConvite(email, codigo string) (*models.Pessoa, error) {
	p, err := s.store.PessoaPorEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if p.CodigoConvite == "" {
		return nil, ErrNoPendingInvite
	}
	if p.CodigoConvite != strings.TrimSpace(codigo) {
		return nil, ErrInvalidCode
	}
	return p, nil
}

// ConcluirPrimeiroAcesso valida o convite e grava a primeira senha,
// ativando a conta e consumindo o código.
func (s *Service) ConcluirPrimeiroAcesso(email, codigo, novaSenha, confirmacao string) error {
	p, err := s.ValidarConvite(email, codigo)
	if err != nil {
		return err
	}
	hash, err := s.hashSenha(novaSenha, confirmacao)
	if err != nil {
		return err
	}
	return s.store.AtivarComSenha(p.ID, hash)
}

// RedefinirSenha grava uma nova senha para uma conta já ativa. A
// validação do código de verificação acontece na camada HTTP, contra o
// valor guardado na sessão.
func (s *Service) RedefinirSenha(email, novaSenha, confirmacao string) error {
	p, err := s.store.PessoaPorEmail(strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNotFound
	}
	hash, err := s.hashSenha(novaSenha, confirmacao)
	if err != nil {
		return err
	}
	return s.store.SalvarSenha(p.ID, hash)
}

func (s *Service) hashSenha(novaSenha, confirmacao string) (string, error) {
	if novaSenha != confirmacao {
		return "", ErrMismatch
	}
	if !ValidarSenha(novaSenha) {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(novaSenha), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
