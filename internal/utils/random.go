package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pcm-dev/programador-os/backend/internal/domain"
)

var nomesComuns = []string{
	"ana", "bruno", "carlos", "daniela", "eduardo", "fernanda", "gustavo",
	"helena", "igor", "joão", "karina", "lucas", "maria", "nelson", "otávio",
	"paula", "rafael", "sérgio", "tatiane", "vanessa",
}
var sobrenomesComuns = []string{
	"silva", "santos", "oliveira", "souza", "lima", "pereira", "costa",
	"ferreira", "almeida", "nascimento", "carvalho", "gomes", "ribeiro",
}

func GerarNomeExecutante() string {
	return nomesComuns[rand.Intn(len(nomesComuns))] + " " + sobrenomesComuns[rand.Intn(len(sobrenomesComuns))]
}

// GerarEquipe monta um texto livre de executantes como os planejadores
// digitam: um a três nomes separados por vírgula.
func GerarEquipe() string {
	n := rand.Intn(3) + 1
	nomes := make([]string, 0, n)
	for i := 0; i < n; i++ {
		nomes = append(nomes, GerarNomeExecutante())
	}
	return strings.Join(nomes, ", ")
}

var tiposServico = []string{"Mecânica", "Elétrica", "Instrumentação", "Lubrificação", "Inspeção"}
var setores = []string{"Aciaria", "Laminação", "Caldeiraria", "Utilidades", "Pátio de Sucata"}
var codigosIntervencao = []string{"CM01", "CM02", "CM05", "PM01", "PM03", "IN02"}

func GerarOrdemAleatoria(seq int) *domain.OrdemServico {
	codigo := codigosIntervencao[rand.Intn(len(codigosIntervencao))]
	return &domain.OrdemServico{
		NumeroOS:          fmt.Sprintf("%06d", 200000+seq),
		Descricao:         fmt.Sprintf("manutenção %s no equipamento %03d", strings.ToLower(tiposServico[rand.Intn(len(tiposServico))]), rand.Intn(1000)),
		TipoServico:       tiposServico[rand.Intn(len(tiposServico))],
		Setor:             setores[rand.Intn(len(setores))],
		CodigoIntervencao: codigo,
		Categoria:         domain.CategoriaDaIntervencao(codigo),
	}
}

var nomesPlanejador = []string{"Parada Geral", "Rotina", "Parada de Utilidades", "Grande Reparo"}

func GerarNomePlanejador() string {
	return fmt.Sprintf("%s %d-%02d", nomesPlanejador[rand.Intn(len(nomesPlanejador))], time.Now().Year(), rand.Intn(52)+1)
}

// GerarHorarioAleatorio devolve um horário alinhado a meia hora e o período
// correspondente.
func GerarHorarioAleatorio() (string, domain.Periodo) {
	hora := rand.Intn(10) + 7 // 07h às 16h
	minuto := 30 * rand.Intn(2)

	periodo := domain.PeriodoManha
	if hora >= 12 {
		periodo = domain.PeriodoTarde
	}
	return fmt.Sprintf("%02d:%02d", hora, minuto), periodo
}

// GerarDuracaoAleatoria devolve nil em parte dos casos porque muitas ordens
// importadas não têm estimativa de duração.
func GerarDuracaoAleatoria() *int {
	if rand.Intn(3) == 0 {
		return nil
	}
	d := 30 * (rand.Intn(8) + 1)
	return &d
}

func GerarDataAleatoria() domain.Data {
	dias := rand.Intn(14)
	t := time.Now().AddDate(0, 0, dias)
	return domain.Data{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}
