// Package metrics exposes the Prometheus collectors of the bill services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BillsListed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "billed",
		Name:      "bills_listed_total",
		Help:      "Bills returned by list calls.",
	})

	PlaceholdersSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "billed",
		Name:      "bill_placeholders_skipped_total",
		Help:      "Stored bills without a name dropped from lists.",
	})

	DateFormatFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "billed",
		Name:      "bill_date_format_failures_total",
		Help:      "Bills listed with their raw date because it could not be formatted.",
	})

	SubmissionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billed",
		Name:      "bill_submissions_rejected_total",
		Help:      "New-bill submissions rejected before reaching the store.",
	}, []string{"reason"})

	BillsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "billed",
		Name:      "bills_created_total",
		Help:      "Bills accepted by the store.",
	})

	Uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billed",
		Name:      "bill_uploads_total",
		Help:      "Proof uploads by outcome.",
	}, []string{"result"})

	HTTPRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "billed",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

const (
	ReasonFileType      = "file_type"
	ReasonMissingFields = "missing_fields"
)
