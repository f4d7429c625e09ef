//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=kafka_test
package kafka

import (
	"github.com/IBM/sarama"
)

type producer interface {
	SendMessage(msg *sarama.ProducerMessage) (int32, int64, error)
}
