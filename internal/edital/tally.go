package edital

import "sort"

// Atribuicao é o par avaliador -> projetos usado pelos placares.
type Atribuicao struct {
	Avaliador string
	Projetos  []string
}

type ContagemAvaliador struct {
	Avaliador string `json:"avaliador"`
	Projetos  int    `json:"projetos"`
}

// TallyPorProjeto conta quantos avaliadores listam cada projeto. Todo
// projeto conhecido do edital entra no placar, mesmo com contagem zero.
func TallyPorProjeto(conhecidos []string, atribuicoes []Atribuicao) map[string]int {
	placar := make(map[string]int, len(conhecidos))
	for _, codigo := range conhecidos {
		placar[codigo] = 0
	}
	for _, a := range atribuicoes {
		for _, codigo := range a.Projetos {
			placar[codigo]++
		}
	}
	return placar
}

// TallyPorAvaliador conta os projetos de cada avaliador, em ordem
// decrescente de contagem (nome como desempate, para exibição estável).
func TallyPorAvaliador(atribuicoes []Atribuicao) []ContagemAvaliador {
	placar := make([]ContagemAvaliador, 0, len(atribuicoes))
	for _, a := range atribuicoes {
		placar = append(placar, ContagemAvaliador{Avaliador: a.Avaliador, Projetos: len(a.Projetos)})
	}
	sort.Slice(placar, func(i, j int) bool {
		if placar[i].Projetos != placar[j].Projetos {
			return placar[i].Projetos > placar[j].Projetos
		}
		return placar[i].Avaliador < placar[j].Avaliador
	})
	return placar
}
