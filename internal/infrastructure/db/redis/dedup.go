package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// IngestDedup provides idempotency checks for the batch ingestion path.
// Key format: ingest:<name>:<source>
type IngestDedup struct {
	client *redis.Client
}

func NewIngestDedup(client *redis.Client) *IngestDedup {
	return &IngestDedup{client: client}
}

// IsDuplicate reports whether this record has already been ingested recently.
func (d *IngestDedup) IsDuplicate(ctx context.Context, name, source string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(name, source)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this record has been ingested (expires after dedupTTL).
func (d *IngestDedup) Mark(ctx context.Context, name, source string) error {
	return d.client.Set(ctx, d.key(name, source), "1", dedupTTL).Err()
}

func (d *IngestDedup) key(name, source string) string {
	return fmt.Sprintf("ingest:%s:%s", name, source)
}
