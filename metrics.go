package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "damga_requests_total",
		Help: "Number of HTTP requests received by the digest server.",
	}, []string{"method"})

	metricBytesHashed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "damga_hashed_bytes_total",
		Help: "Number of bytes fed into the SHA-1 engine by the digest server.",
	})

	metricSessionsFinalized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "damga_sessions_finalized_total",
		Help: "Number of digest sessions finalized with a digest response.",
	})
)
