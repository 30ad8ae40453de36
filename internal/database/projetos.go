package database

import (
	"gorm.io/gorm"

	"selecao-projetos/internal/models"
)

type ProjetoStore struct {
	db *gorm.DB
}

func NewProjetoStore(db *gorm.DB) *ProjetoStore {
	return &ProjetoStore{db: db}
}

func (s *ProjetoStore) Projetos() ([]models.Projeto, error) {
	var projetos []models.Projeto
	err := s.db.Order("codigo").Find(&projetos).Error
	return projetos, err
}

func (s *ProjetoStore) PorEdital(codigoEdital string) ([]models.Projeto, error) {
	var projetos []models.Projeto
	err := s.db.Where("codigo_edital = ?", codigoEdital).Order("codigo").Find(&projetos).Error
	return projetos, err
}

func (s *ProjetoStore) PorCodigos(codigos []string) ([]models.Projeto, error) {
	var projetos []models.Projeto
	err := s.db.Where("codigo IN ?", codigos).Order("codigo").Find(&projetos).Error
	return projetos, err
}

func (s *ProjetoStore) CodigosProjetos() ([]string, error) {
	var codigos []string
	err := s.db.Model(&models.Projeto{}).Pluck("codigo", &codigos).Error
	return codigos, err
}

func (s *ProjetoStore) CodigosDoEdital(codigoEdital string) ([]string, error) {
	var codigos []string
	err := s.db.Model(&models.Projeto{}).
		Where("codigo_edital = ?", codigoEdital).
		Pluck("codigo", &codigos).Error
	return codigos, err
}

func (s *ProjetoStore) Criar(p *models.Projeto) error {
	return s.db.Create(p).Error
}

func (s *ProjetoStore) CriarProjetos(projetos []*models.Projeto) error {
	return s.db.Create(projetos).Error
}

// ConviteStore reúne pessoas e projetos no contrato que o serviço de
// convites espera.
type ConviteStore struct {
	*PessoaStore
	*ProjetoStore
}

func NewConviteStore(db *gorm.DB) *ConviteStore {
	return &ConviteStore{
		PessoaStore:  NewPessoaStore(db),
		ProjetoStore: NewProjetoStore(db),
	}
}
