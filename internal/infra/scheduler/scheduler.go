package scheduler

import (
	"context"
	"fmt"
	"time"

	"homework_notification_bot/internal/domain/homework"
	domainTelegram "homework_notification_bot/internal/domain/telegram"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReportSource exposes the last successfully sent report. The status poller
// implements it.
type ReportSource interface {
	LastReport() homework.Report
}

// DigestScheduler runs an optional cron job that sends a once-a-day summary
// of the last known review status to the chat. It is entirely separate from
// the poll loop and never touches its state beyond the read-only snapshot.
type DigestScheduler struct {
	cronEngine *cron.Cron
	source     ReportSource
	telegram   domainTelegram.Client
	logger     *logrus.Logger
	chatID     int64
	cronSpec   string
}

func NewDigestScheduler(
	source ReportSource,
	tc domainTelegram.Client,
	logger *logrus.Logger,
	chatID int64,
	cronSpec string, // e.g. "0 9 * * *" (9 AM daily)
) *DigestScheduler {
	return &DigestScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		source:     source,
		telegram:   tc,
		logger:     logger,
		chatID:     chatID,
		cronSpec:   cronSpec,
	}
}

func (s *DigestScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily digest.")
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := s.sendDigest(ctx); err != nil {
			s.logger.Errorf("Daily digest delivery failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("could not add daily digest cron job: %w", err)
	}

	s.cronEngine.Start()
	s.logger.Infof("Digest scheduler started with spec %q.", s.cronSpec)
	return nil
}

func (s *DigestScheduler) sendDigest(ctx context.Context) error {
	report := s.source.LastReport()
	text := "Ежедневная сводка: уведомлений о статусе работ ещё не было."
	if report.Message != "" {
		text = "Ежедневная сводка: " + report.Message
	}
	return s.telegram.SendMessage(ctx, s.chatID, text, nil)
}

func (s *DigestScheduler) Stop() {
	s.logger.Info("Stopping digest scheduler...")
	ctx := s.cronEngine.Stop() // Waits for a running job to finish.
	<-ctx.Done()
	s.logger.Info("Digest scheduler gracefully stopped.")
}
