package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Observer receives submission pipeline events. It is injected into the RSVP
// service so the pipeline carries no package-level counters of its own.
type Observer interface {
	SubmissionReceived()
	SubmissionRejected(stage string)
	SubmissionStored()
	EmailQueued()
	EmailFailed()
}

type prometheusObserver struct {
	received *prometheus.CounterVec
	stored   prometheus.Counter
	rejected *prometheus.CounterVec
	email    *prometheus.CounterVec
}

// NewPrometheusObserver registers pipeline counters on the default registry.
func NewPrometheusObserver() Observer {
	return &prometheusObserver{
		received: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rsvp_submissions_received_total",
			Help: "RSVP submissions entering the pipeline",
		}, []string{"outcome"}),
		stored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rsvp_submissions_stored_total",
			Help: "RSVP submissions durably persisted",
		}),
		rejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rsvp_submissions_rejected_total",
			Help: "RSVP submissions rejected, by pipeline stage",
		}, []string{"stage"}),
		email: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rsvp_confirmation_emails_total",
			Help: "Confirmation email dispatch outcomes",
		}, []string{"outcome"}),
	}
}

func (o *prometheusObserver) SubmissionReceived() {
	o.received.WithLabelValues("received").Inc()
}

func (o *prometheusObserver) SubmissionRejected(stage string) {
	o.rejected.WithLabelValues(stage).Inc()
}

func (o *prometheusObserver) SubmissionStored() {
	o.stored.Inc()
}

func (o *prometheusObserver) EmailQueued() {
	o.email.WithLabelValues("queued").Inc()
}

func (o *prometheusObserver) EmailFailed() {
	o.email.WithLabelValues("failed").Inc()
}

type nopObserver struct{}

// NewNopObserver returns an Observer that discards everything. Used in tests.
func NewNopObserver() Observer {
	return nopObserver{}
}

func (nopObserver) SubmissionReceived()            {}
func (nopObserver) SubmissionRejected(stage string) {}
func (nopObserver) SubmissionStored()              {}
func (nopObserver) EmailQueued()                   {}
func (nopObserver) EmailFailed()                   {}
