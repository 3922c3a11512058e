package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pcm-dev/programador-os/backend/internal/domain"
)

// FilaNotificacoes é consumida pelo worker de e-mail (cmd/notify).
const FilaNotificacoes = "notificacoes_queue"

// publicarEvento envia o evento para a fila de notificações. A programação já
// está gravada quando chegamos aqui: o e-mail é melhor-esforço, então falha de
// publicação não derruba a requisição, só vira log.
func (h *Handler) publicarEvento(evento *domain.EventoProgramacao) {
	body, err := json.Marshal(evento)
	if err != nil {
		slog.Warn("não foi possível serializar o evento de programação", "tipo", evento.Tipo, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	err = h.eventsChannel.PublishWithContext(
		ctx,
		"",
		FilaNotificacoes,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		slog.Warn("não foi possível publicar o evento de programação", "tipo", evento.Tipo, "error", err)
	}
}
