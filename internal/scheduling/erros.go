package scheduling

import "fmt"

// ErroValidacao rejeita a operação antes de qualquer escrita, nomeando o
// campo ofensor.
type ErroValidacao struct {
	Campo  string
	Motivo string
}

func (e *ErroValidacao) Error() string {
	return fmt.Sprintf("%s: %s", e.Campo, e.Motivo)
}

// ErroNaoEncontrado indica que o planejador, a ordem ou a programação
// referenciada não existe (ou a programação não pertence ao planejador dado).
type ErroNaoEncontrado struct {
	Recurso string
}

func (e *ErroNaoEncontrado) Error() string {
	return fmt.Sprintf("%s não encontrado", e.Recurso)
}

// ErroConflito carrega a lista completa de colisões. É um erro acionável pelo
// usuário, não um defeito do sistema.
type ErroConflito struct {
	Motivo    string
	Conflitos []RegistroConflito
}

func (e *ErroConflito) Error() string {
	return e.Motivo
}
