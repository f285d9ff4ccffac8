package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/config"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		return
	}

	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("failed to create mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("failed to connect to the mail server", slog.String("error", err.Error()))
		return
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open a rabbitmq channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"email_queue",
		true,  // durable, survive broker restarts
		false, // no auto-delete while consumers are absent
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to declare the email queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // manual acks, failed sends get requeued
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to start consuming", slog.String("error", err.Error()))
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
				logger.Info("message received", slog.String("message", string(msg.Body)))
				mailMessage := domain.MailMessage{}
				if err := json.Unmarshal(msg.Body, &mailMessage); err != nil {
					logger.Error("failed to decode mail message", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				m := mail.NewMsg()
				if err := m.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("failed to set the mail sender", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(mailMessage.To); err != nil {
					logger.Error("failed to set the mail recipient", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				switch mailMessage.Type {
				case "create_user":
					tmpl, err := template.ParseFiles("./templates/new_account_email.html")
					if err != nil {
						logger.Error("failed to parse mail template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
						logger.Error("failed to render mail body", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("Camp Duty Scheduler - Your Account")
				case "roster_published":
					tmpl, err := template.ParseFiles("./templates/roster_published_email.html")
					if err != nil {
						logger.Error("failed to parse mail template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
						logger.Error("failed to render mail body", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("Camp Duty Scheduler - Roster Generated")
				default:
					logger.Error("unsupported mail type", slog.String("type", mailMessage.Type))
					_ = msg.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(m); err != nil {
					logger.Error("failed to send mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // requeue for another attempt
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for messages... (CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down mail worker...")
	cancel()
	wg.Wait()
	slog.Info("mail worker stopped")
}
