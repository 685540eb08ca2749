package kafka

import "time"

// Message — обёртка над сообщением Kafka, не зависящая от клиента.
type Message struct {
	Key   []byte
	Value []byte

	Topic     string
	Partition int32
	Offset    int64

	Headers        map[string][]byte
	Timestamp      time.Time
	BlockTimestamp time.Time
}
