package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pcm-dev/programador-os/backend/internal/domain"
)

// Cabeçalhos reconhecidos nas planilhas exportadas do ERP, já normalizados
// (maiúsculas, espaços colapsados). Cada exportação usa um nome diferente
// para a mesma coluna.
var aliasesColuna = map[string]string{
	"OS":                  "numero_os",
	"Nº OS":               "numero_os",
	"N OS":                "numero_os",
	"NUMERO OS":           "numero_os",
	"NÚMERO OS":           "numero_os",
	"ORDEM":               "numero_os",
	"DESCRICAO":           "descricao",
	"DESCRIÇÃO":           "descricao",
	"DESCRICAO DO SERVICO": "descricao",
	"TIPO":                "tipo_servico",
	"TIPO SERVICO":        "tipo_servico",
	"TIPO DE SERVICO":     "tipo_servico",
	"TIPO DE SERVIÇO":     "tipo_servico",
	"SETOR":               "setor",
	"AREA":                "setor",
	"ÁREA":                "setor",
	"INTERVENCAO":         "codigo_intervencao",
	"INTERVENÇÃO":         "codigo_intervencao",
	"COD INTERVENCAO":     "codigo_intervencao",
	"CÓD INTERVENÇÃO":     "codigo_intervencao",
	"CODIGO INTERVENCAO":  "codigo_intervencao",
	"CÓDIGO INTERVENÇÃO":  "codigo_intervencao",
}

func normalizaCabecalho(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

// Resumo é o relatório de uma importação, guardado no redis para consulta
// posterior em GET /importacoes/ultima.
type Resumo struct {
	Arquivo     string    `json:"arquivo"`
	Total       int       `json:"total"`
	Importadas  int       `json:"importadas"`
	Ignoradas   int       `json:"ignoradas"`
	RealizadaEm time.Time `json:"realizada_em"`
}

// LerPlanilha extrai ordens de serviço de uma planilha xlsx, resolvendo as
// colunas pelo cabeçalho da primeira linha. Linhas sem número de OS são
// ignoradas. A categoria não vem da planilha: é derivada do código de
// intervenção na hora da leitura.
func LerPlanilha(r io.Reader) ([]*domain.OrdemServico, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("não foi possível abrir a planilha: %w", err)
	}
	defer f.Close()

	linhas, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(linhas) == 0 {
		return nil, errors.New("a planilha está vazia")
	}

	// campo -> índice da coluna; a primeira ocorrência de cada campo vence
	indice := map[string]int{}
	for i, celula := range linhas[0] {
		campo, ok := aliasesColuna[normalizaCabecalho(celula)]
		if !ok {
			continue
		}
		if _, existe := indice[campo]; !existe {
			indice[campo] = i
		}
	}
	if _, ok := indice["numero_os"]; !ok {
		return nil, errors.New("a planilha não tem uma coluna com o número da OS")
	}

	var ordens []*domain.OrdemServico
	for _, linha := range linhas[1:] {
		numero := valorColuna(linha, indice, "numero_os")
		if numero == "" {
			continue
		}

		codigo := valorColuna(linha, indice, "codigo_intervencao")
		ordens = append(ordens, &domain.OrdemServico{
			NumeroOS:          numero,
			Descricao:         valorColuna(linha, indice, "descricao"),
			TipoServico:       valorColuna(linha, indice, "tipo_servico"),
			Setor:             valorColuna(linha, indice, "setor"),
			CodigoIntervencao: codigo,
			Categoria:         domain.CategoriaDaIntervencao(codigo),
		})
	}

	return ordens, nil
}

func valorColuna(linha []string, indice map[string]int, campo string) string {
	i, ok := indice[campo]
	if !ok || i >= len(linha) {
		return ""
	}
	return strings.TrimSpace(linha[i])
}
