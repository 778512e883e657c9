package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	producerMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schedula",
			Name:      "kafka_messages_published_total",
			Help:      "Kafka messages published, by topic.",
		},
		[]string{"topic"},
	)

	producerPublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schedula",
			Name:      "kafka_publish_errors_total",
			Help:      "Kafka publish failures, by topic.",
		},
		[]string{"topic"},
	)

	producerPublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "schedula",
			Name:      "kafka_publish_duration_seconds",
			Help:      "Latency of Kafka publish calls.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"topic"},
	)
)
