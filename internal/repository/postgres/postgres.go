package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/brandazine/stock-nudge/internal/repository"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func NewDB(cfg Config) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

type brandRepository struct {
	db *sqlx.DB
}

type outreachRepository struct {
	db *sqlx.DB
}

func NewBrandRepository(db *sqlx.DB) repository.BrandRepository {
	return &brandRepository{db: db}
}

func NewOutreachRepository(db *sqlx.DB) repository.OutreachRepository {
	return &outreachRepository{db: db}
}
