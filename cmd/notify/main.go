package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/pcm-dev/programador-os/backend/internal/config"
	"github.com/pcm-dev/programador-os/backend/internal/domain"
	"github.com/pcm-dev/programador-os/backend/internal/handler"
)

func main() {
	/**********************************************
	 * criar o logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * carregar a configuração
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("não foi possível carregar a configuração", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * criar o cliente de e-mail
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("não foi possível criar o cliente de e-mail", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("não foi possível conectar ao servidor de e-mail", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * conectar ao rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("não foi possível conectar ao rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("não foi possível abrir o canal", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		handler.FilaNotificacoes,
		true,  // durável
		false, // sem auto-delete, para a fila sobreviver sem consumidores
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("não foi possível declarar a fila", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // ack manual
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("não foi possível consumir a fila", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("evento recebido", slog.String("message", string(msg.Body)))

				evento := domain.EventoProgramacao{}
				if err := json.Unmarshal(msg.Body, &evento); err != nil {
					logger.Error("não foi possível desserializar o evento", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				assunto, corpo, err := montarEmail(&evento)
				if err != nil {
					logger.Error("evento sem conteúdo para notificar", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				m := mail.NewMsg()
				if err := m.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("não foi possível definir o remetente", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(cfg.Email.Coordenador); err != nil {
					logger.Error("não foi possível definir o destinatário", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				m.Subject(assunto)
				m.SetBodyString(mail.TypeTextPlain, corpo)

				if err := client.DialAndSend(m); err != nil {
					logger.Error("falha no envio do e-mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // devolve para a fila
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("aguardando eventos... (CTRL+C para sair)")
	<-sigChan

	slog.Info("encerrando o notify worker...")
	cancel()
	wg.Wait()
	slog.Info("notify worker encerrado com sucesso")
}

func montarEmail(evento *domain.EventoProgramacao) (string, string, error) {
	switch evento.Tipo {
	case domain.EventoProgramacaoCriada, domain.EventoProgramacaoAtualizada:
		p := evento.Programacao
		if p == nil {
			return "", "", fmt.Errorf("evento %s sem programação", evento.Tipo)
		}

		acao := "criada"
		if evento.Tipo == domain.EventoProgramacaoAtualizada {
			acao = "atualizada"
		}
		assunto := fmt.Sprintf("Programador de OS - programação %s no planejador %s", acao, evento.Planejador)

		var b strings.Builder
		fmt.Fprintf(&b, "Programação %s no planejador %q.\n\n", acao, evento.Planejador)
		fmt.Fprintf(&b, "OS:          %s - %s\n", p.NumeroOS, p.Descricao)
		fmt.Fprintf(&b, "Categoria:   %s\n", p.Categoria)
		fmt.Fprintf(&b, "Data:        %s a %s (%s)\n", p.Data, p.DataConclusao, p.Periodo)
		if p.DuracaoMin != nil {
			fmt.Fprintf(&b, "Horário:     %s (%d min)\n", p.Horario, *p.DuracaoMin)
		} else {
			fmt.Fprintf(&b, "Horário:     %s (sem duração estimada)\n", p.Horario)
		}
		fmt.Fprintf(&b, "Executantes: %s\n", p.ExecutantesTexto)
		if p.Observacoes != "" {
			fmt.Fprintf(&b, "Observações: %s\n", p.Observacoes)
		}
		return assunto, b.String(), nil

	case domain.EventoProgramacaoRemovida:
		assunto := fmt.Sprintf("Programador de OS - programação removida do planejador %s", evento.Planejador)
		corpo := fmt.Sprintf("A programação %d foi removida do planejador %q.\n", evento.RemovidaID, evento.Planejador)
		return assunto, corpo, nil

	default:
		return "", "", fmt.Errorf("tipo de evento desconhecido: %s", evento.Tipo)
	}
}
