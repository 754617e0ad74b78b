package metrics

import (
	"context"

	metricsstore "github.com/edumanage/schoolsite/internal/app/store/metrics"
	"github.com/edumanage/schoolsite/internal/app/system/timeouts"
	"github.com/edumanage/schoolsite/internal/domain/models"
	"github.com/prometheus/client_golang/prometheus"
)

// ContentSource returns stored-content totals. It is called once per scrape.
type ContentSource func(ctx context.Context) metricsstore.Counts

type contentCollector struct {
	fetch        ContentSource
	contacts     *prometheus.Desc
	testimonials *prometheus.Desc
}

// WatchContent registers gauges for the contact backlog by status and for
// active/inactive testimonials, read from fetch at scrape time.
func (m *Metrics) WatchContent(fetch ContentSource) error {
	return m.registry.Register(&contentCollector{
		fetch: fetch,
		contacts: prometheus.NewDesc("contact_submissions_stored",
			"Stored contact submissions by status", []string{"status"}, nil),
		testimonials: prometheus.NewDesc("testimonials_stored",
			"Stored testimonials by active flag", []string{"active"}, nil),
	})
}

func (c *contentCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.contacts
	ch <- c.testimonials
}

func (c *contentCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Short())
	defer cancel()
	n := c.fetch(ctx)

	for _, s := range models.ContactStatuses {
		ch <- prometheus.MustNewConstMetric(c.contacts, prometheus.GaugeValue,
			float64(n.ContactsByStatus[s]), string(s))
	}
	ch <- prometheus.MustNewConstMetric(c.testimonials, prometheus.GaugeValue,
		float64(n.TestimonialsActive), "true")
	ch <- prometheus.MustNewConstMetric(c.testimonials, prometheus.GaugeValue,
		float64(n.TestimonialsInactive), "false")
}
