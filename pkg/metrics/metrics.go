package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VoiceInterpretations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_voice_interpretations_total",
			Help: "Voice commands interpreted, by intent kind and book match source",
		},
		[]string{"kind", "match_source"},
	)

	VoiceActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_voice_actions_total",
			Help: "UI actions derived from interpreted voice commands",
		},
		[]string{"action"},
	)

	VoiceCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "library_voice_command_duration_seconds",
			Help:    "Time spent resolving a voice command, catalog lookup included",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"transport"},
	)

	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_catalog_cache_lookups_total",
			Help: "Catalog snapshot lookups, by result",
		},
		[]string{"result"},
	)

	BorrowingOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_borrowing_operations_total",
			Help: "Borrow and return operations, by outcome",
		},
		[]string{"operation", "outcome"},
	)
)

// MatchSourceLabel keeps the label set small when no book was matched.
func MatchSourceLabel(source string) string {
	if source == "" {
		return "none"
	}
	return source
}
