package edital

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTallyPorProjeto(t *testing.T) {
	atribuicoes := []Atribuicao{
		{Avaliador: "A", Projetos: []string{"P1", "P2"}},
		{Avaliador: "B", Projetos: []string{"P2"}},
	}
	placar := TallyPorProjeto([]string{"P1", "P2", "P3"}, atribuicoes)
	assert.Equal(t, map[string]int{"P1": 1, "P2": 2, "P3": 0}, placar)
}

func TestTallyPorProjetoVazio(t *testing.T) {
	placar := TallyPorProjeto([]string{"P1"}, nil)
	assert.Equal(t, map[string]int{"P1": 0}, placar)
}

func TestTallyPorAvaliador(t *testing.T) {
	atribuicoes := []Atribuicao{
		{Avaliador: "B", Projetos: []string{"P2"}},
		{Avaliador: "A", Projetos: []string{"P1", "P2"}},
	}
	placar := TallyPorAvaliador(atribuicoes)
	assert.Equal(t, []ContagemAvaliador{
		{Avaliador: "A", Projetos: 2},
		{Avaliador: "B", Projetos: 1},
	}, placar)
}

func TestTallyPorAvaliadorDesempateNoNome(t *testing.T) {
	atribuicoes := []Atribuicao{
		{Avaliador: "Zeca", Projetos: []string{"P1"}},
		{Avaliador: "Ana", Projetos: []string{"P2"}},
	}
	placar := TallyPorAvaliador(atribuicoes)
	assert.Equal(t, "Ana", placar[0].Avaliador)
	assert.Equal(t, "Zeca", placar[1].Avaliador)
}
