package database

import (
	"errors"

	"gorm.io/gorm"

	"selecao-projetos/internal/models"
)

type PessoaStore struct {
	db *gorm.DB
}

func NewPessoaStore(db *gorm.DB) *PessoaStore {
	return &PessoaStore{db: db}
}

func (s *PessoaStore) PessoaPorEmail(email string) (*models.Pessoa, error) {
	var p models.Pessoa
	err := s.db.Where("LOWER(e_mail) = LOWER(?)", email).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PessoaStore) PessoaPorID(id uint) (*models.Pessoa, error) {
	var p models.Pessoa
	err := s.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PessoaStore) SalvarSenha(pessoaID uint, hash string) error {
	return s.db.Model(&models.Pessoa{}).
		Where("id = ?", pessoaID).
		Update("senha", hash).Error
}

func (s *PessoaStore) AtivarComSenha(pessoaID uint, hash string) error {
	return s.db.Model(&models.Pessoa{}).
		Where("id = ?", pessoaID).
		Updates(map[string]interface{}{
			"senha":          hash,
			"status":         models.StatusAtivo,
			"codigo_convite": "",
		}).Error
}

func (s *PessoaStore) EmailExiste(email string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Pessoa{}).
		Where("LOWER(e_mail) = LOWER(?)", email).
		Count(&count).Error
	return count > 0, err
}

func (s *PessoaStore) EmailsCadastrados() ([]string, error) {
	var emails []string
	err := s.db.Model(&models.Pessoa{}).Pluck("e_mail", &emails).Error
	return emails, err
}

func (s *PessoaStore) CriarPessoa(p *models.Pessoa) error {
	return s.db.Create(p).Error
}

func (s *PessoaStore) CriarPessoas(pessoas []*models.Pessoa) error {
	return s.db.Create(pessoas).Error
}

// PorTipos lista pessoas dos tipos dados, ordenadas por nome. O campo
// senha nunca é serializado (tag json), mas também não sai do banco.
func (s *PessoaStore) PorTipos(tipos ...models.TipoUsuario) ([]models.Pessoa, error) {
	var pessoas []models.Pessoa
	err := s.db.Omit("senha").
		Where("tipo_usuario IN ?", tipos).
		Order("nome_completo").
		Find(&pessoas).Error
	return pessoas, err
}

func (s *PessoaStore) PorStatus(status models.StatusPessoa) ([]models.Pessoa, error) {
	var pessoas []models.Pessoa
	err := s.db.Omit("senha").
		Where("status = ?", status).
		Order("nome_completo").
		Find(&pessoas).Error
	return pessoas, err
}

func (s *PessoaStore) Atualizar(p *models.Pessoa) error {
	return s.db.Model(p).
		Select("nome_completo", "e_mail", "telefone", "tipo_usuario",
			"tipo_beneficiario", "status", "projetos").
		Updates(p).Error
}
