package domain

import "strings"

// NormalizeExecutantes converte o texto livre de executantes em um conjunto
// canônico de nomes: separa por vírgula ou ponto-e-vírgula, remove espaços
// nas pontas, converte para minúsculas, colapsa espaços internos e descarta
// entradas vazias. A ordem de primeira aparição é preservada.
//
// A função é isolada aqui de propósito: se um dia existir um cadastro real de
// executantes, ela pode ser trocada por uma resolução de identidade sem mexer
// na lógica de intervalos do detector de conflitos.
func NormalizeExecutantes(texto string) []string {
	texto = strings.ReplaceAll(texto, ";", ",")

	var nomes []string
	visto := make(map[string]bool)

	for _, parte := range strings.Split(texto, ",") {
		nome := strings.ToLower(strings.TrimSpace(parte))
		nome = strings.Join(strings.Fields(nome), " ")
		if nome == "" || visto[nome] {
			continue
		}
		visto[nome] = true
		nomes = append(nomes, nome)
	}

	return nomes
}

// ExecutantesComuns devolve a interseção de dois conjuntos já normalizados,
// preservando a ordem do primeiro.
func ExecutantesComuns(a, b []string) []string {
	emB := make(map[string]bool, len(b))
	for _, nome := range b {
		emB[nome] = true
	}

	var comuns []string
	for _, nome := range a {
		if emB[nome] {
			comuns = append(comuns, nome)
		}
	}
	return comuns
}
