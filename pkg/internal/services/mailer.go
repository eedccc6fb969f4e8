package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/wneessen/go-mail"
)

// MailTask is the handle returned for every queued message. Enqueueing
// never blocks the request; completion and failure stay observable here
// instead of vanishing on a detached thread.
type MailTask struct {
	ID      string
	To      string
	Subject string
	Body    string

	done chan struct{}
	err  error
}

// Done closes once delivery was attempted, successfully or not.
func (t *MailTask) Done() <-chan struct{} {
	return t.done
}

// Err reports the delivery outcome; only meaningful after Done closed.
func (t *MailTask) Err() error {
	return t.err
}

type Mailer struct {
	queue chan *MailTask
	once  sync.Once
}

var MailQueue = &Mailer{queue: make(chan *MailTask, 64)}

// Enqueue hands a message to the delivery worker and returns immediately.
// There is no retry; a failed task records its error and is dropped.
func (m *Mailer) Enqueue(to, subject, body string) *MailTask {
	m.once.Do(func() {
		go m.run()
	})

	task := &MailTask{
		ID:      uuid.NewString(),
		To:      to,
		Subject: subject,
		Body:    body,
		done:    make(chan struct{}),
	}

	select {
	case m.queue <- task:
	default:
		task.err = fmt.Errorf("mail queue is full")
		close(task.done)
	}

	return task
}

func (m *Mailer) run() {
	for task := range m.queue {
		task.err = m.deliver(task)
		if task.err != nil {
			log.Error().Err(task.err).Str("task", task.ID).Str("to", task.To).
				Msg("An error occurred when delivering email...")
		} else {
			log.Info().Str("task", task.ID).Str("to", task.To).Msg("Email delivered.")
		}
		close(task.done)
	}
}

func (m *Mailer) deliver(task *MailTask) error {
	server := viper.GetString("mailer.server")
	if len(server) == 0 {
		// Mailer unconfigured; drop quietly in development setups.
		log.Warn().Str("task", task.ID).Msg("Mailer is not configured, dropping email...")
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(viper.GetString("mailer.sender")); err != nil {
		return err
	}
	if err := msg.To(task.To); err != nil {
		return err
	}
	msg.Subject(viper.GetString("mailer.subject_prefix") + task.Subject)
	msg.SetBodyString(mail.TypeTextPlain, task.Body)

	client, err := mail.NewClient(server,
		mail.WithPort(viper.GetInt("mailer.port")),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(viper.GetString("mailer.username")),
		mail.WithPassword(viper.GetString("mailer.password")),
	)
	if err != nil {
		return err
	}

	return client.DialAndSend(msg)
}
