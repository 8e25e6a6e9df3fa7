package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reelrank_cache_errors_total",
		Help: "Cache primitive calls that failed and degraded to a zero value.",
	}, []string{"op"})

	feedCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reelrank_feed_cache_requests_total",
		Help: "Feed cache lookups by result.",
	}, []string{"result"})

	feedCacheLookup = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reelrank_feed_cache_lookup_seconds",
		Help:    "Feed cache lookup latency by result.",
		Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5},
	}, []string{"result"})

	engagementOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reelrank_engagement_operations_total",
		Help: "Engagement operations by kind and outcome.",
	}, []string{"op", "outcome"})

	uniqueViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reelrank_unique_views_total",
		Help: "Views that were the first by that user within the window.",
	})
)

func IncCacheError(op string) { cacheErrors.WithLabelValues(op).Inc() }

func IncFeedHit()  { feedCacheRequests.WithLabelValues("hit").Inc() }
func IncFeedMiss() { feedCacheRequests.WithLabelValues("miss").Inc() }

func AddHitDuration(seconds float64)  { feedCacheLookup.WithLabelValues("hit").Observe(seconds) }
func AddMissDuration(seconds float64) { feedCacheLookup.WithLabelValues("miss").Observe(seconds) }

// IncEngagement counts a finished engagement operation, e.g. ("like", "noop").
func IncEngagement(op, outcome string) { engagementOps.WithLabelValues(op, outcome).Inc() }

func IncUniqueView() { uniqueViews.Inc() }
