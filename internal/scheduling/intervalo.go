package scheduling

import (
	"fmt"
	"time"
)

const layoutHorario = "15:04"

func parseHorario(s string) (int, error) {
	t, err := time.Parse(layoutHorario, s)
	if err != nil {
		return 0, fmt.Errorf("horário inválido %q: esperado HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// intervalo representa o horário de uma programação em minutos desde a
// meia-noite, como intervalo meio-aberto [inicio, fim).
type intervalo struct {
	inicio     int
	fim        int
	comDuracao bool
}

// novoIntervalo monta o intervalo de uma programação. Duração ausente, zero ou
// negativa degrada o intervalo para um ponto no tempo (fim == inicio), de
// propósito: muitas ordens importadas não têm estimativa de duração e ainda
// assim precisam ser comparáveis sem bloquear o dia inteiro.
func novoIntervalo(horario string, duracaoMin *int) (intervalo, error) {
	inicio, err := parseHorario(horario)
	if err != nil {
		return intervalo{}, err
	}
	if duracaoMin == nil || *duracaoMin <= 0 {
		return intervalo{inicio: inicio, fim: inicio}, nil
	}
	return intervalo{inicio: inicio, fim: inicio + *duracaoMin, comDuracao: true}, nil
}

// sobrepoe aplica a Regra B: com duração dos dois lados, sobreposição real dos
// intervalos meio-abertos (programações encostadas não conflitam); se qualquer
// lado não tem duração, apenas o início idêntico conflita.
func (a intervalo) sobrepoe(b intervalo) bool {
	if a.comDuracao && b.comDuracao {
		return !(a.fim <= b.inicio || b.fim <= a.inicio)
	}
	return a.inicio == b.inicio
}
