package database

import (
	"errors"

	"gorm.io/gorm"

	"selecao-projetos/internal/models"
)

type EditalStore struct {
	db *gorm.DB
}

func NewEditalStore(db *gorm.DB) *EditalStore {
	return &EditalStore{db: db}
}

func (s *EditalStore) comEstagios() *gorm.DB {
	return s.db.
		Preload("Estagios", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordem")
		}).
		Preload("Estagios.Perguntas", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordem")
		})
}

func (s *EditalStore) Editais() ([]models.Edital, error) {
	var editais []models.Edital
	err := s.comEstagios().Order("codigo").Find(&editais).Error
	return editais, err
}

func (s *EditalStore) EditalPorID(id uint) (*models.Edital, error) {
	var e models.Edital
	err := s.comEstagios().First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EditalStore) EditalPorCodigo(codigo string) (*models.Edital, error) {
	var e models.Edital
	err := s.comEstagios().Where("codigo = ?", codigo).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EditalStore) CriarEdital(e *models.Edital) error {
	return s.db.Create(e).Error
}

func (s *EditalStore) AtualizarEdital(e *models.Edital) error {
	return s.db.Model(e).
		Select("codigo", "nome", "data_lancamento", "id_planilha_recebimento").
		Updates(e).Error
}

func (s *EditalStore) EstagioPorID(id uint) (*models.Estagio, error) {
	var est models.Estagio
	err := s.db.
		Preload("Perguntas", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordem")
		}).
		First(&est, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &est, nil
}

func (s *EditalStore) CriarEstagio(est *models.Estagio) error {
	return s.db.Create(est).Error
}

func (s *EditalStore) PerguntaPorID(id uint) (*models.Pergunta, error) {
	var p models.Pergunta
	err := s.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *EditalStore) CriarPergunta(p *models.Pergunta) error {
	return s.db.Create(p).Error
}

func (s *EditalStore) AtualizarPergunta(p *models.Pergunta) error {
	return s.db.Model(p).
		Select("tipo", "texto", "opcoes").
		Updates(p).Error
}

func (s *EditalStore) RemoverPergunta(id uint) error {
	return s.db.Delete(&models.Pergunta{}, id).Error
}

func (s *EditalStore) SalvarOrdemPergunta(perguntaID uint, ordem int) error {
	return s.db.Model(&models.Pergunta{}).
		Where("id = ?", perguntaID).
		Update("ordem", ordem).Error
}

func (s *EditalStore) Atribuicoes(editalID, estagioID uint) ([]models.AtribuicaoEstagio, error) {
	var atribuicoes []models.AtribuicaoEstagio
	err := s.db.
		Preload("Pessoa").
		Where("edital_id = ? AND estagio_id = ?", editalID, estagioID).
		Find(&atribuicoes).Error
	return atribuicoes, err
}

func (s *EditalStore) AtribuicaoPorChave(pessoaID, editalID, estagioID uint) (*models.AtribuicaoEstagio, error) {
	var a models.AtribuicaoEstagio
	err := s.db.
		Where("pessoa_id = ? AND edital_id = ? AND estagio_id = ?", pessoaID, editalID, estagioID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *EditalStore) CriarAtribuicao(a *models.AtribuicaoEstagio) error {
	return s.db.Create(a).Error
}

func (s *EditalStore) AtualizarAtribuicao(a *models.AtribuicaoEstagio) error {
	return s.db.Model(a).Update("projetos", a.Projetos).Error
}

func (s *EditalStore) RemoverAtribuicao(pessoaID, editalID, estagioID uint) error {
	return s.db.
		Where("pessoa_id = ? AND edital_id = ? AND estagio_id = ?", pessoaID, editalID, estagioID).
		Delete(&models.AtribuicaoEstagio{}).Error
}

func (s *EditalStore) CodigosProjetos(codigoEdital string) ([]string, error) {
	var codigos []string
	err := s.db.Model(&models.Projeto{}).
		Where("codigo_edital = ?", codigoEdital).
		Pluck("codigo", &codigos).Error
	return codigos, err
}
