package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecoveryMetrics tracks the follow-up scheduler and bill import volume.
type RecoveryMetrics struct {
	followUpsOpened  prometheus.Counter
	followUpsOpen    prometheus.Gauge
	scanDuration     prometheus.Histogram
	billsImported    prometheus.Counter
	billsReceived    prometheus.Counter
	summaryCacheMiss *prometheus.CounterVec
}

// NewRecoveryMetrics registers recovery metrics on the given registerer.
func NewRecoveryMetrics(registerer prometheus.Registerer, cfg Config) *RecoveryMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	constLabels := cfg.constLabels()

	followUpsOpened := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "claimledger_followups_opened_total",
		Help:        "Follow-ups opened by the overdue bill scan.",
		ConstLabels: constLabels,
	})
	followUpsOpen := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "claimledger_followups_open",
		Help:        "Follow-ups currently open across all hospitals.",
		ConstLabels: constLabels,
	})
	scanDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        "claimledger_followup_scan_duration_seconds",
		Help:        "Duration of one full overdue bill scan.",
		Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		ConstLabels: constLabels,
	})
	billsImported := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "claimledger_bills_imported_total",
		Help:        "Bill rows stored through the import endpoint.",
		ConstLabels: constLabels,
	})
	billsReceived := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "claimledger_bills_received_total",
		Help:        "Bills with a payment receipt recorded.",
		ConstLabels: constLabels,
	})
	summaryCacheMiss := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "claimledger_summary_cache_total",
			Help:        "Recovery summary cache lookups by result.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // hit | miss
	)

	registerer.MustRegister(
		followUpsOpened,
		followUpsOpen,
		scanDuration,
		billsImported,
		billsReceived,
		summaryCacheMiss,
	)
	return &RecoveryMetrics{
		followUpsOpened:  followUpsOpened,
		followUpsOpen:    followUpsOpen,
		scanDuration:     scanDuration,
		billsImported:    billsImported,
		billsReceived:    billsReceived,
		summaryCacheMiss: summaryCacheMiss,
	}
}

func (m *RecoveryMetrics) IncFollowUpsOpened(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.followUpsOpened.Add(float64(count))
}

func (m *RecoveryMetrics) SetFollowUpsOpen(count int) {
	if m == nil {
		return
	}
	m.followUpsOpen.Set(float64(count))
}

func (m *RecoveryMetrics) ObserveScanDuration(duration time.Duration) {
	if m == nil {
		return
	}
	m.scanDuration.Observe(duration.Seconds())
}

func (m *RecoveryMetrics) AddBillsImported(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.billsImported.Add(float64(count))
}

func (m *RecoveryMetrics) IncBillsReceived() {
	if m == nil {
		return
	}
	m.billsReceived.Inc()
}

func (m *RecoveryMetrics) ObserveSummaryCache(result string) {
	if m == nil {
		return
	}
	m.summaryCacheMiss.WithLabelValues(result).Inc()
}
