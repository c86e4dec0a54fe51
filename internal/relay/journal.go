package relay

import (
	"fmt"
	"log"
	"time"

	"quakewatch/internal/redis"
)

// Journal records delivered messages for operator visibility. Failures to
// record never fail the send; the journal is observability, not a ledger.
type Journal interface {
	Record(messageID, address string)
	SentCount() int64
}

const (
	journalHashKey    = "relay:deliveries"
	journalCounterKey = "relay:sent_count"
)

// RedisJournal keeps the delivery log in Redis so it survives relay
// restarts.
type RedisJournal struct{}

// NewRedisJournal returns a journal backed by the shared Redis connection.
// redis.Init must have been called first.
func NewRedisJournal() *RedisJournal {
	return &RedisJournal{}
}

func (j *RedisJournal) Record(messageID, address string) {
	entry := fmt.Sprintf("%s|%s", address, time.Now().UTC().Format(time.RFC3339))
	if err := redis.HashSet(journalHashKey, messageID, entry); err != nil {
		log.Printf("[relay] journal write failed: %v", err)
		return
	}
	if _, err := redis.Incr(journalCounterKey); err != nil {
		log.Printf("[relay] journal counter failed: %v", err)
	}
}

func (j *RedisJournal) SentCount() int64 {
	n, err := redis.GetInt(journalCounterKey)
	if err != nil {
		log.Printf("[relay] journal read failed: %v", err)
		return 0
	}
	return n
}

// NopJournal discards every record. Used when no Redis is configured and in
// tests.
type NopJournal struct{}

func (NopJournal) Record(string, string) {}
func (NopJournal) SentCount() int64      { return 0 }
