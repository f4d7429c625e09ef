package kafka

import "strings"

// SplitBrokers разбирает KAFKA_BROKERS вида "host1:9092, host2:9092", пустые элементы отбрасываются.
func SplitBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, part := range parts {
		if broker := strings.TrimSpace(part); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}
