package models

import "gorm.io/gorm"

type TipoUsuario string

const (
	RoleAdmin        TipoUsuario = "admin"
	RoleEquipe       TipoUsuario = "equipe"
	RoleAvaliador    TipoUsuario = "avaliador"
	RoleBeneficiario TipoUsuario = "beneficiario"
	RoleVisitante    TipoUsuario = "visitante"
)

type StatusPessoa string

const (
	StatusConvidado StatusPessoa = "convidado"
	StatusAtivo     StatusPessoa = "ativo"
	StatusInativo   StatusPessoa = "inativo"
)

type TipoBeneficiario string

const (
	BeneficiarioTecnico    TipoBeneficiario = "técnico"
	BeneficiarioFinanceiro TipoBeneficiario = "financeiro"
)

func TipoUsuarioValido(t TipoUsuario) bool {
	switch t {
	case RoleAdmin, RoleEquipe, RoleAvaliador, RoleBeneficiario, RoleVisitante:
		return true
	}
	return false
}

func TipoBeneficiarioValido(t TipoBeneficiario) bool {
	return t == BeneficiarioTecnico || t == BeneficiarioFinanceiro
}

type Pessoa struct {
	gorm.Model
	NomeCompleto string      `gorm:"size:255;not null" json:"nome_completo"`
	Email        string      `gorm:"column:e_mail;size:255;uniqueIndex;not null" json:"e_mail"`
	Telefone     string      `gorm:"size:50" json:"telefone"`
	TipoUsuario  TipoUsuario `gorm:"type:varchar(20);not null" json:"tipo_usuario"`

	// preenchido apenas quando tipo_usuario == beneficiario
	TipoBeneficiario TipoBeneficiario `gorm:"type:varchar(20)" json:"tipo_beneficiario,omitempty"`

	Status StatusPessoa `gorm:"type:varchar(20);not null" json:"status"`

	// hash bcrypt; vazio até o primeiro acesso
	Senha string `gorm:"size:100" json:"-"`

	// código de 6 dígitos, presente apenas enquanto status == convidado
	CodigoConvite string `gorm:"size:6" json:"codigo_convite,omitempty"`
	DataConvite   string `gorm:"size:10" json:"data_convite,omitempty"` // dd/mm/aaaa

	// códigos dos projetos associados à pessoa
	Projetos Lista `gorm:"type:text" json:"projetos"`

	Atribuicoes []AtribuicaoEstagio `json:"-"`
}

// AtribuicaoEstagio liga um avaliador a um estágio de um edital e guarda
// os códigos dos projetos que ele deve avaliar naquele estágio.
type AtribuicaoEstagio struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PessoaID  uint `gorm:"not null;uniqueIndex:idx_atribuicao" json:"pessoa_id"`
	EditalID  uint `gorm:"not null;uniqueIndex:idx_atribuicao" json:"edital_id"`
	EstagioID uint `gorm:"not null;uniqueIndex:idx_atribuicao" json:"estagio_id"`

	Projetos Lista `gorm:"type:text" json:"projetos"`

	Pessoa Pessoa `json:"-"`
}
