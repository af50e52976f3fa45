// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rsvp"

// Result labels.
const (
	ResultOK            = "ok"
	ResultBot           = "bot"
	ResultRejected      = "rejected"
	ResultConfiguration = "configuration_error"
	ResultGateway       = "gateway_error"
	ResultClosed        = "closed"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	submissions  *prometheus.CounterVec
	rowsAppended prometheus.Counter
	statusChecks *prometheus.CounterVec
	pageViews    *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg gets a private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		gatherer: reg,
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "RSVP submissions by result.",
		}, []string{"result"}),
		rowsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_appended_total",
			Help:      "Invitee response rows written to the row store.",
		}),
		statusChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_checks_total",
			Help:      "RSVP status checks by result.",
		}, []string{"result"}),
		pageViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_views_total",
			Help:      "Tracked invitation page views by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.submissions, m.rowsAppended, m.statusChecks, m.pageViews)
	return m
}

func (m *Metrics) Submission(result string, rows int) {
	m.submissions.WithLabelValues(result).Inc()
	if rows > 0 {
		m.rowsAppended.Add(float64(rows))
	}
}

func (m *Metrics) StatusCheck(result string) {
	m.statusChecks.WithLabelValues(result).Inc()
}

func (m *Metrics) PageView(result string) {
	m.pageViews.WithLabelValues(result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
