// Package kafka wraps segmentio/kafka-go with the small producer surface the
// platform needs for change-notification events.
package kafka

// Config holds Kafka connection parameters.
type Config struct {
	Brokers []string
}
