package telemetry

import (
	"fmt"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"rhystmorgan/folioterm/internal/transport"
)

// DefaultReportInterval limits how often transport failures reach Sentry
const DefaultReportInterval = 10 * time.Minute

// InitSentry configures the global Sentry client. An empty DSN leaves
// reporting disabled.
func InitSentry(dsn, release string, debug bool) (bool, error) {
	if dsn == "" {
		return false, nil
	}

	environment := "production"
	if debug {
		environment = "development"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     "folioterm@" + release,
	})
	if err != nil {
		return false, fmt.Errorf("failed to initialize sentry: %w", err)
	}
	return true, nil
}

// FlushSentry waits for buffered events to be sent
func FlushSentry(timeout time.Duration) {
	sentry.Flush(timeout)
}

// Reporter forwards transport failures to Sentry. Reports are debounced so
// a dead endpoint does not flood the project.
type Reporter struct {
	logger   *zap.SugaredLogger
	interval time.Duration
	capture  func(err error, context map[string]interface{})

	mu       sync.Mutex
	lastSent time.Time
	now      func() time.Time
}

func NewReporter(enabled bool, logger *zap.SugaredLogger) *Reporter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	r := &Reporter{
		logger:   logger,
		interval: DefaultReportInterval,
		now:      time.Now,
	}
	if enabled {
		r.capture = captureWithHub
	}
	return r
}

// ReportTransportFailure logs err and, at most once per interval, sends
// it to Sentry with the submission id and error classification.
func (r *Reporter) ReportTransportFailure(submissionID string, err error) {
	if err == nil {
		return
	}

	classified := transport.ClassifyError(err)
	context := map[string]interface{}{
		"submission_id": submissionID,
		"error_type":    string(classified.Type),
		"status_code":   classified.StatusCode,
	}

	r.logger.Errorw("Contact submission failed", "submission_id", submissionID, "error_type", classified.Type, "reason", classified.UserMessage(), "error", err)

	if r.capture == nil {
		return
	}

	r.mu.Lock()
	now := r.now()
	if !r.lastSent.IsZero() && now.Sub(r.lastSent) < r.interval {
		r.mu.Unlock()
		return
	}
	r.lastSent = now
	r.mu.Unlock()

	r.capture(err, context)
}

func captureWithHub(err error, context map[string]interface{}) {
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		scope.SetTag("component", "contact_form")
		scope.SetContext("submission", context)
		hub.CaptureException(err)
	})
}
