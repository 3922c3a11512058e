package domain

import (
	"strings"
	"time"
)

type Categoria string

const (
	CategoriaCorretiva  Categoria = "Corretiva"
	CategoriaPreventiva Categoria = "Preventiva"
)

// Prefixo que identifica intervenções corretivas no código vindo do ERP.
const prefixoIntervencaoCorretiva = "CM"

// CategoriaDaIntervencao deriva a categoria da ordem a partir do código de
// intervenção. A categoria nunca é gravada pelo cliente, sempre derivada.
func CategoriaDaIntervencao(codigo string) Categoria {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(codigo)), prefixoIntervencaoCorretiva) {
		return CategoriaCorretiva
	}
	return CategoriaPreventiva
}

// OrdemServico é criada apenas pela importação de planilha e é imutável
// depois disso. O serviço de programação apenas a consulta.
type OrdemServico struct {
	ID                int64     `json:"id"`
	NumeroOS          string    `json:"numero_os"`
	Descricao         string    `json:"descricao"`
	TipoServico       string    `json:"tipo_servico"`
	Setor             string    `json:"setor"`
	CodigoIntervencao string    `json:"codigo_intervencao"`
	Categoria         Categoria `json:"categoria"`
	CriadaEm          time.Time `json:"criada_em"`
}
