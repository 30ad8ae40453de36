package convite

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"selecao-projetos/internal/mailer"
	"selecao-projetos/internal/models"
)

var (
	ErrMissingField   = errors.New("todos os campos obrigatórios devem ser preenchidos")
	ErrMissingSubtipo = errors.New("o tipo de beneficiário é obrigatório para beneficiários")
	ErrInvalidEmail   = errors.New("e-mail inválido")
	ErrEmailExists    = errors.New("e-mail já cadastrado")
	ErrInvalidRole    = errors.New("tipo de usuário inválido")
	ErrRoleNotAllowed = errors.New("seu perfil não pode convidar este tipo de usuário")
)

var emailRegex = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

func ValidarEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// Store é o acesso a pessoas e projetos que os convites precisam.
type Store interface {
	EmailExiste(email string) (bool, error)
	EmailsCadastrados() ([]string, error)
	CriarPessoa(*models.Pessoa) error
	CriarPessoas([]*models.Pessoa) error
	CodigosProjetos() ([]string, error)
}

type Service struct {
	store   Store
	mailer  mailer.Mailer
	log     *zap.SugaredLogger
	baseURL string

	randInt func(n int) int // mockable
	now     func() time.Time
}

func NewService(store Store, m mailer.Mailer, baseURL string, log *zap.SugaredLogger) *Service {
	return &Service{
		store:   store,
		mailer:  m,
		log:     log,
		baseURL: baseURL,
		randInt: rand.Intn,
		now:     time.Now,
	}
}

func (s *Service) gerarCodigo() string {
	return fmt.Sprintf("%06d", s.randInt(1000000))
}

func (s *Service) hoje() string {
	return s.now().Format("02/01/2006")
}

// rolesPermitidos define quais tipos cada perfil pode convidar.
var rolesPermitidos = map[models.TipoUsuario][]models.TipoUsuario{
	models.RoleAdmin: {
		models.RoleAdmin, models.RoleEquipe, models.RoleAvaliador,
		models.RoleBeneficiario, models.RoleVisitante,
	},
	models.RoleEquipe: {
		models.RoleBeneficiario, models.RoleVisitante,
	},
}

type EntradaConvite struct {
	NomeCompleto     string                  `json:"nome_completo"`
	Email            string                  `json:"e_mail"`
	Telefone         string                  `json:"telefone"`
	TipoUsuario      models.TipoUsuario      `json:"tipo_usuario"`
	TipoBeneficiario models.TipoBeneficiario `json:"tipo_beneficiario"`
	Projetos         []string                `json:"projetos"`
}

// ConvidarIndividual cria uma pessoa com status convidado e envia o
// e-mail com o código de primeiro acesso. A falha no envio não desfaz o
// cadastro; o segundo retorno informa se o e-mail saiu.
func (s *Service) ConvidarIndividual(convidadoPor models.TipoUsuario, in EntradaConvite) (*models.Pessoa, bool, error) {
	in.NomeCompleto = strings.TrimSpace(in.NomeCompleto)
	in.Email = strings.TrimSpace(in.Email)
	in.Telefone = strings.TrimSpace(in.Telefone)

	if in.NomeCompleto == "" || in.Email == "" || in.Telefone == "" || in.TipoUsuario == "" {
		return nil, false, ErrMissingField
	}
	if !models.TipoUsuarioValido(in.TipoUsuario) {
		return nil, false, ErrInvalidRole
	}
	permitido := false
	for _, r := range rolesPermitidos[convidadoPor] {
		if r == in.TipoUsuario {
			permitido = true
			break
		}
	}
	if !permitido {
		return nil, false, ErrRoleNotAllowed
	}
	if in.TipoUsuario == models.RoleBeneficiario && !models.TipoBeneficiarioValido(in.TipoBeneficiario) {
		return nil, false, ErrMissingSubtipo
	}
	if !ValidarEmail(in.Email) {
		return nil, false, ErrInvalidEmail
	}
	existe, err := s.store.EmailExiste(in.Email)
	if err != nil {
		return nil, false, err
	}
	if existe {
		return nil, false, ErrEmailExists
	}

	codigo := s.gerarCodigo()
	p := &models.Pessoa{
		NomeCompleto:  in.NomeCompleto,
		Email:         in.Email,
		Telefone:      in.Telefone,
		TipoUsuario:   in.TipoUsuario,
		Status:        models.StatusConvidado,
		CodigoConvite: codigo,
		DataConvite:   s.hoje(),
		Projetos:      in.Projetos,
	}
	if in.TipoUsuario == models.RoleBeneficiario {
		p.TipoBeneficiario = in.TipoBeneficiario
	}
	if err := s.store.CriarPessoa(p); err != nil {
		return nil, false, err
	}

	assunto, corpo := mailer.CorpoConvite(p.NomeCompleto, codigo, s.baseURL)
	if err := s.mailer.Send(p.Email, assunto, corpo); err != nil {
		s.log.Errorw("falha ao enviar convite", "email", p.Email, "error", err)
		return p, false, nil
	}
	return p, true, nil
}
