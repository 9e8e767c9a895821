package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/internal/infrastructure/outbox"
	"github.com/taskdeck/backend/usecase"
)

// MailSender delivers a single message. Implemented by the SMTP sender.
type MailSender interface {
	Send(to, subject, htmlBody string) error
}

// DispatcherConfig controls how frequently the outbox is drained.
type DispatcherConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// MailDispatcher drains the durable outbox on a schedule and delivers queued
// messages over SMTP. Requests enqueue and return; delivery never blocks the
// request path.
type MailDispatcher struct {
	store  *outbox.Store
	sender MailSender
	logger *zap.Logger
	cron   *cron.Cron
	cfg    DispatcherConfig
}

func NewMailDispatcher(store *outbox.Store, sender MailSender, logger *zap.Logger, cfg DispatcherConfig) *MailDispatcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &MailDispatcher{
		store:  store,
		sender: sender,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = d.cron.AddFunc(schedule, func() {
		if err := d.Drain(); err != nil {
			d.logger.Error("outbox drain failed", zap.Error(err))
		}
	})

	return d
}

// Start launches the cron scheduler.
func (d *MailDispatcher) Start() {
	if d == nil || d.cron == nil {
		return
	}
	d.cron.Start()
	d.logger.Info("mail dispatcher started")
}

// Stop gracefully stops the scheduler.
func (d *MailDispatcher) Stop(ctx context.Context) {
	if d == nil || d.cron == nil {
		return
	}
	stopCtx := d.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	d.logger.Info("mail dispatcher stopped")
}

// EnqueueMail persists a message for asynchronous delivery.
func (d *MailDispatcher) EnqueueMail(ctx context.Context, mail usecase.Mail) error {
	if d == nil || d.store == nil {
		return fmt.Errorf("mail dispatcher not configured")
	}
	return d.store.Enqueue(outbox.Message{
		To:       mail.To,
		Subject:  mail.Subject,
		HTMLBody: mail.HTMLBody,
	})
}

// Drain delivers queued messages synchronously, retrying failures up to the
// configured limit before dropping them.
func (d *MailDispatcher) Drain() error {
	if d == nil || d.store == nil {
		return nil
	}

	messages, err := d.store.GetBatch(d.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if err := d.sender.Send(msg.To, msg.Subject, msg.HTMLBody); err != nil {
			d.logger.Error("mail delivery failed",
				zap.String("message_id", msg.ID),
				zap.String("to", msg.To),
				zap.Error(err))

			msg.Retries++
			if msg.Retries >= d.cfg.MaxRetries {
				d.logger.Warn("dropping mail (max retries reached)", zap.String("message_id", msg.ID))
				_ = d.store.Remove(msg)
				continue
			}

			if err := d.store.Remove(msg); err != nil {
				d.logger.Warn("failed to remove mail from outbox", zap.Error(err))
			}
			if err := d.store.Requeue(msg); err != nil {
				d.logger.Error("failed to requeue mail", zap.Error(err))
			}
			continue
		}

		d.logger.Info("mail delivered", zap.String("message_id", msg.ID), zap.String("to", msg.To))
		if err := d.store.Remove(msg); err != nil {
			d.logger.Warn("failed to purge delivered mail", zap.Error(err))
		}
	}
	return nil
}

// Size returns the number of queued messages.
func (d *MailDispatcher) Size() int {
	if d == nil || d.store == nil {
		return 0
	}
	size, err := d.store.Size()
	if err != nil {
		return 0
	}
	return size
}

var _ usecase.MailEnqueuer = (*MailDispatcher)(nil)
