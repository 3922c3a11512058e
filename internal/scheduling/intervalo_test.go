package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minutos(m int) *int {
	return &m
}

func TestNovoIntervalo(t *testing.T) {
	casos := []struct {
		nome     string
		horario  string
		duracao  *int
		esperado intervalo
	}{
		{"com duração", "09:00", minutos(60), intervalo{inicio: 540, fim: 600, comDuracao: true}},
		{"sem duração vira ponto", "08:00", nil, intervalo{inicio: 480, fim: 480}},
		{"duração zero vira ponto", "08:00", minutos(0), intervalo{inicio: 480, fim: 480}},
		{"duração negativa vira ponto", "08:00", minutos(-15), intervalo{inicio: 480, fim: 480}},
		{"meia-noite", "00:00", minutos(30), intervalo{inicio: 0, fim: 30, comDuracao: true}},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			got, err := novoIntervalo(c.horario, c.duracao)
			require.NoError(t, err)
			assert.Equal(t, c.esperado, got)
		})
	}

	_, err := novoIntervalo("25:99", nil)
	assert.Error(t, err)
	_, err = novoIntervalo("9h30", nil)
	assert.Error(t, err)
}

func TestSobrepoe(t *testing.T) {
	timed := func(inicio, fim int) intervalo {
		return intervalo{inicio: inicio, fim: fim, comDuracao: true}
	}
	ponto := func(inicio int) intervalo {
		return intervalo{inicio: inicio, fim: inicio}
	}

	casos := []struct {
		nome     string
		a, b     intervalo
		esperado bool
	}{
		{"encostados não sobrepõem", timed(480, 540), timed(540, 600), false},
		{"encostados no outro sentido", timed(540, 600), timed(480, 540), false},
		{"sobreposição real", timed(480, 540), timed(500, 560), true},
		{"contido", timed(480, 600), timed(500, 520), true},
		{"disjuntos", timed(480, 540), timed(600, 660), false},
		{"pontos no mesmo início", ponto(480), ponto(480), true},
		{"pontos em inícios diferentes", ponto(480), ponto(485), false},
		{"ponto contra intervalo no mesmo início", ponto(540), timed(540, 600), true},
		{"ponto dentro do intervalo mas início diferente", ponto(550), timed(540, 600), false},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.esperado, c.a.sobrepoe(c.b))
		})
	}
}
