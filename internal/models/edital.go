package models

import "gorm.io/gorm"

type Edital struct {
	gorm.Model
	Codigo         string `gorm:"size:50;uniqueIndex;not null" json:"codigo_edital"`
	Nome           string `gorm:"size:255;not null" json:"nome_edital"`
	DataLancamento string `gorm:"size:10;not null" json:"data_lancamento"` // dd/mm/aaaa

	// planilha de recebimento de propostas (opcional)
	IDPlanilhaRecebimento string `gorm:"size:100" json:"id_planilha_recebimento"`

	Estagios []Estagio `json:"estagios,omitempty"`
}

// Estagio é uma fase ordenada de avaliação dentro de um edital.
type Estagio struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	EditalID uint   `gorm:"not null;uniqueIndex:idx_estagio_ordem" json:"edital_id"`
	Nome     string `gorm:"size:255;not null" json:"nome"`
	Ordem    int    `gorm:"not null;uniqueIndex:idx_estagio_ordem" json:"ordem"`

	Perguntas []Pergunta `json:"perguntas,omitempty"`
}

type TipoPergunta string

const (
	PerguntaTextoCurto      TipoPergunta = "texto_curto"
	PerguntaTextoLongo      TipoPergunta = "texto_longo"
	PerguntaNumero          TipoPergunta = "numero"
	PerguntaMultiplaEscolha TipoPergunta = "multipla_escolha"
	PerguntaEscolhaUnica    TipoPergunta = "escolha_unica"
	PerguntaTitulo          TipoPergunta = "titulo"
	PerguntaSubtitulo       TipoPergunta = "subtitulo"
	PerguntaParagrafo       TipoPergunta = "paragrafo"
)

func TipoPerguntaValido(t TipoPergunta) bool {
	switch t {
	case PerguntaTextoCurto, PerguntaTextoLongo, PerguntaNumero,
		PerguntaMultiplaEscolha, PerguntaEscolhaUnica,
		PerguntaTitulo, PerguntaSubtitulo, PerguntaParagrafo:
		return true
	}
	return false
}

// EhEscolha reporta se o tipo exige lista de opções.
func (t TipoPergunta) EhEscolha() bool {
	return t == PerguntaMultiplaEscolha || t == PerguntaEscolhaUnica
}

type Pergunta struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	EstagioID uint         `gorm:"not null;index" json:"estagio_id"`
	Ordem     int          `gorm:"not null" json:"ordem"`
	Tipo      TipoPergunta `gorm:"type:varchar(30);not null" json:"tipo"`
	Texto     string       `gorm:"type:text" json:"texto"`

	// presente apenas para tipos de escolha
	Opcoes Lista `gorm:"type:text" json:"opcoes,omitempty"`
}
