package domain

// Tipos de evento publicados na fila de notificações.
const (
	EventoProgramacaoCriada     = "programacao_criada"
	EventoProgramacaoAtualizada = "programacao_atualizada"
	EventoProgramacaoRemovida   = "programacao_removida"
)

// EventoProgramacao é o envelope serializado para a fila de notificações e
// consumido pelo worker de e-mail (cmd/notify).
type EventoProgramacao struct {
	Tipo        string       `json:"tipo"`
	Planejador  string       `json:"planejador"`
	Programacao *Programacao `json:"programacao,omitempty"`
	RemovidaID  int64        `json:"removida_id,omitempty"`
}
