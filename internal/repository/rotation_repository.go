package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/helpdesk-service/internal/persistence"
)

// RotationCursorRepository persists the round-robin cursor for Tier-1
// assignment. Advance is an atomic increment-and-fetch: concurrent
// ticket creations never observe the same position twice.
type RotationCursorRepository interface {
	// Advance moves the cursor one step modulo poolSize and returns the
	// resulting position. A missing or never-written cursor yields 0.
	Advance(ctx context.Context, poolSize int) (int, error)
}

type postgresRotationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRotationRepository stores the cursor in a single-row table.
func NewPostgresRotationRepository(pool *pgxpool.Pool) RotationCursorRepository {
	return &postgresRotationRepository{pool: pool}
}

func (r *postgresRotationRepository) Advance(ctx context.Context, poolSize int) (int, error) {
	if poolSize <= 0 {
		return 0, fmt.Errorf("rotation: pool size must be positive, got %d", poolSize)
	}
	// The upsert makes read-advance-write a single statement; the wrap is
	// computed against the pool size supplied by the caller, so pool
	// changes between calls may skip or repeat technicians for one cycle.
	const query = `
        INSERT INTO rotation_cursor (id, position) VALUES (1, 0)
        ON CONFLICT (id) DO UPDATE
        SET position = (rotation_cursor.position + 1) % $1, updated_at = NOW()
        RETURNING position`
	var position int
	if err := persistence.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, poolSize).Scan(&position); err != nil {
		return 0, err
	}
	return position, nil
}

const redisRotationKey = "helpdesk:rotation:tier1"

type redisRotationRepository struct {
	client *redis.Client
}

// NewRedisRotationRepository stores a monotonic counter in Redis; INCR
// gives the same atomic increment-and-fetch guarantee as the SQL upsert.
func NewRedisRotationRepository(client *redis.Client) RotationCursorRepository {
	return &redisRotationRepository{client: client}
}

func (r *redisRotationRepository) Advance(ctx context.Context, poolSize int) (int, error) {
	if poolSize <= 0 {
		return 0, fmt.Errorf("rotation: pool size must be positive, got %d", poolSize)
	}
	counter, err := r.client.Incr(ctx, redisRotationKey).Result()
	if err != nil {
		return 0, err
	}
	return int((counter - 1) % int64(poolSize)), nil
}
