package telemetry

import (
	"time"

	"rhystmorgan/folioterm/internal/form"
)

// Observer feeds controller events into metrics and failure reporting
type Observer struct {
	metrics  *Metrics
	reporter *Reporter
}

func NewObserver(metrics *Metrics, reporter *Reporter) *Observer {
	return &Observer{metrics: metrics, reporter: reporter}
}

func (o *Observer) SubmitHandled(outcome form.SubmissionOutcome) {
	if o.metrics != nil {
		o.metrics.recordSubmit(outcome)
	}
}

func (o *Observer) SubmitFinished(id string, elapsed time.Duration, err error) {
	if o.metrics != nil {
		o.metrics.recordDelivery(elapsed, err)
	}
	if err != nil && o.reporter != nil {
		o.reporter.ReportTransportFailure(id, err)
	}
}
