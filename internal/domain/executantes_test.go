package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeExecutantes(t *testing.T) {
	casos := []struct {
		nome     string
		texto    string
		esperado []string
	}{
		{"texto vazio", "", nil},
		{"apenas separadores", " ; , ; ", nil},
		{"caixa e espaços nas pontas", "João Silva, Maria", []string{"joão silva", "maria"}},
		{"ponto e vírgula e espaços internos", "  joão   silva ; carlos", []string{"joão silva", "carlos"}},
		{"duplicados colapsam", "Ana; ana ;  ANA", []string{"ana"}},
		{"separadores misturados", "bruno;carla, daniel", []string{"bruno", "carla", "daniel"}},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			assert.Equal(t, c.esperado, NormalizeExecutantes(c.texto))
		})
	}
}

func TestExecutantesComuns(t *testing.T) {
	a := NormalizeExecutantes("João Silva, Maria")
	b := NormalizeExecutantes("  joão   silva ; carlos")

	assert.Equal(t, []string{"joão silva"}, ExecutantesComuns(a, b))
	assert.Empty(t, ExecutantesComuns(a, NormalizeExecutantes("bruno")))
	assert.Empty(t, ExecutantesComuns(nil, b))
}

func TestCategoriaDaIntervencao(t *testing.T) {
	casos := []struct {
		codigo   string
		esperado Categoria
	}{
		{"CM01", CategoriaCorretiva},
		{" cm07 ", CategoriaCorretiva},
		{"PM01", CategoriaPreventiva},
		{"IN02", CategoriaPreventiva},
		{"", CategoriaPreventiva},
	}

	for _, c := range casos {
		assert.Equal(t, c.esperado, CategoriaDaIntervencao(c.codigo), "código %q", c.codigo)
	}
}
