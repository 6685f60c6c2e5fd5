// internal/app/poller.go
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"homework_notification_bot/internal/domain/homework"
	domainTelegram "homework_notification_bot/internal/domain/telegram"
	"homework_notification_bot/internal/infra/metrics"
	"homework_notification_bot/internal/infra/practicum"
	itelegram "homework_notification_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
)

const (
	noNewWorkText = "Нет новых работ"
	failurePrefix = "Сбой в работе программы: "

	// previewRunes is how much of an outgoing message is echoed into logs.
	previewRunes = 10
)

// StatusClient fetches raw status responses from the homework API.
type StatusClient interface {
	HomeworkStatuses(ctx context.Context, fromDate int64) (homework.RawResponse, error)
}

// StatusPoller is the loop controller: each cycle it fetches the latest
// submissions, validates the response, formats the newest submission's
// status and relays it to the chat once per distinct report. It exclusively
// owns the poll cursor and the last-sent report for the process lifetime.
type StatusPoller struct {
	api      StatusClient
	telegram domainTelegram.Client
	recorder metrics.Recorder
	logger   *logrus.Logger
	chatID   int64
	interval time.Duration

	// cursor is the lower bound (unix seconds) of the next fetch window.
	// Touched only by the polling goroutine.
	cursor int64

	mu            sync.Mutex
	lastReport    homework.Report
	lastErrorText string
}

func NewStatusPoller(
	api StatusClient,
	tc domainTelegram.Client,
	recorder metrics.Recorder,
	logger *logrus.Logger,
	chatID int64,
	interval time.Duration,
) *StatusPoller {
	return &StatusPoller{
		api:      api,
		telegram: tc,
		recorder: recorder,
		logger:   logger,
		chatID:   chatID,
		interval: interval,
		cursor:   time.Now().Unix(),
	}
}

// Run executes poll cycles until ctx is cancelled. The interval sleep
// starts strictly after each cycle's work; errors never stop the loop.
func (p *StatusPoller) Run(ctx context.Context) {
	p.logger.Infof("Status poller started. Polling every %s.", p.interval)
	for {
		if ctx.Err() != nil {
			p.logger.Info("Status poller stopped.")
			return
		}
		p.RunCycle(ctx)
		select {
		case <-ctx.Done():
			p.logger.Info("Status poller stopped.")
			return
		case <-time.After(p.interval):
		}
	}
}

// RunCycle performs a single fetch-validate-format-notify cycle. All
// transient errors are classified, logged and reported here; none escape.
func (p *StatusPoller) RunCycle(ctx context.Context) {
	p.recorder.RecordCycle()
	if err := p.cycle(ctx); err != nil {
		p.handleCycleError(ctx, err)
	}
}

func (p *StatusPoller) cycle(ctx context.Context) error {
	start := time.Now()
	raw, err := p.api.HomeworkStatuses(ctx, p.cursor)
	p.recorder.RecordFetchLatency(time.Since(start))
	if err != nil {
		return err
	}

	currentDate, works, err := homework.CheckResponse(raw)
	if err != nil {
		return err
	}
	p.cursor = currentDate
	p.recorder.RecordPollSuccess(time.Now())

	if len(works) == 0 {
		// Nothing new: log the placeholder but never notify the chat.
		p.logger.Infof("%s: no submissions updated since %s.", noNewWorkText, time.Unix(p.cursor, 0).Format(time.RFC3339))
		return nil
	}

	newest := works[len(works)-1]
	message, err := homework.ParseStatus(newest)
	if err != nil {
		return err
	}

	candidate := homework.Report{SubmissionName: newest.Name, Message: message}
	if candidate == p.LastReport() {
		p.logger.Info("Review status unchanged since last notification. Nothing to send.")
		return nil
	}

	if err := p.send(ctx, message); err != nil {
		return err
	}
	p.recorder.RecordNotificationSent()
	p.setLastReport(candidate)
	return nil
}

// handleCycleError logs a failed cycle and relays it to the chat once per
// distinct error text. A delivery failure is only logged: reporting it via
// the channel that just failed would loop.
func (p *StatusPoller) handleCycleError(ctx context.Context, err error) {
	kind := classifyError(err)
	p.recorder.RecordCycleError(kind)

	var deliveryErr *itelegram.DeliveryError
	if errors.As(err, &deliveryErr) {
		p.recorder.RecordDeliveryFailure()
		p.logger.Errorf("Notification delivery failed: %v", err)
		return
	}

	p.logger.WithField("kind", kind).Errorf("Poll cycle failed: %v", err)

	failureText := failurePrefix + err.Error()
	if failureText == p.lastReportedError() {
		p.logger.Debug("Failure already reported to chat. Skipping repeat notification.")
		return
	}

	if sendErr := p.send(ctx, failureText); sendErr != nil {
		p.recorder.RecordDeliveryFailure()
		p.logger.Errorf("Could not deliver failure notification: %v", sendErr)
		return
	}
	p.setLastReportedError(failureText)
}

func (p *StatusPoller) send(ctx context.Context, text string) error {
	p.logger.Infof("Sending message '%s..' to chat %d", preview(text), p.chatID)
	if err := p.telegram.SendMessage(ctx, p.chatID, text, nil); err != nil {
		return err
	}
	p.logger.Infof("Message '%s..' sent successfully", preview(text))
	return nil
}

// LastReport returns a snapshot of the most recently sent report. Safe to
// call from other goroutines (the digest scheduler reads it).
func (p *StatusPoller) LastReport() homework.Report {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastReport
}

func (p *StatusPoller) setLastReport(r homework.Report) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastReport = r
}

func (p *StatusPoller) lastReportedError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErrorText
}

func (p *StatusPoller) setLastReportedError(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastErrorText = text
}

func classifyError(err error) string {
	var (
		connErr       *practicum.ConnectionError
		apiErr        *practicum.APIRequestError
		decodeErr     *practicum.DecodeError
		responseErr   *homework.MalformedResponseError
		submissionErr *homework.MalformedSubmissionError
		deliveryErr   *itelegram.DeliveryError
	)
	switch {
	case errors.As(err, &connErr):
		return "connection"
	case errors.As(err, &apiErr):
		return "api_request"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &responseErr):
		return "malformed_response"
	case errors.As(err, &submissionErr):
		return "malformed_submission"
	case errors.As(err, &deliveryErr):
		return "delivery"
	default:
		return "internal"
	}
}

func preview(text string) string {
	r := []rune(text)
	if len(r) <= previewRunes {
		return text
	}
	return string(r[:previewRunes])
}
