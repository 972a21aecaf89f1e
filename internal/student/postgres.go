package student

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectStudentByID = `
	SELECT id, first_name, last_name, email
	FROM students
	WHERE id = $1
`

// querier is the subset of *pgxpool.Pool used by PostgresRepository.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresRepository reads students from the students table.
type PostgresRepository struct {
	db    querier
	close func()
}

// NewPostgresRepository opens a pool for databaseURL and verifies it with a ping.
func NewPostgresRepository(ctx context.Context, databaseURL string) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to parse database URL: %w", err)
	}

	if poolConfig.MaxConns == 0 {
		poolConfig.MaxConns = 10
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: failed to ping database: %w", err)
	}

	return &PostgresRepository{db: pool, close: pool.Close}, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Student, error) {
	var (
		s                          Student
		firstName, lastName, email *string
	)

	err := r.db.QueryRow(ctx, selectStudentByID, id).Scan(&s.ID, &firstName, &lastName, &email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("postgres: get student %d: %w", id, err)
	}

	s.FirstName = deref(firstName)
	s.LastName = deref(lastName)
	s.Email = deref(email)
	return &s, nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *PostgresRepository) Close() {
	if r.close != nil {
		r.close()
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
