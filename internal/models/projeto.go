package models

import "gorm.io/gorm"

// Projeto é uma proposta submetida a um edital, identificada pelo código
// de recebimento (único dentro do edital).
type Projeto struct {
	gorm.Model
	Codigo       string `gorm:"size:50;not null;uniqueIndex:idx_projeto_edital" json:"codigo"`
	CodigoEdital string `gorm:"size:50;not null;uniqueIndex:idx_projeto_edital" json:"codigo_edital"`

	Sigla string `gorm:"size:50" json:"sigla"`
	Nome  string `gorm:"column:nome_do_projeto;size:255" json:"nome_do_projeto"`

	BeneficiarioID *uint `json:"beneficiario_id,omitempty"`
}
