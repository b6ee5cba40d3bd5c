package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Yassinemathlouthi/skillswap/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID           uuid.UUID
	Handle       string
	Email        string
	PasswordHash string
	Bio          string
	Location     string
	Latitude     *float64
	Longitude    *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasCoordinates reports whether both latitude and longitude are recorded.
// The schema guarantees they are set or cleared together.
func (u User) HasCoordinates() bool {
	return u.Latitude != nil && u.Longitude != nil
}

type UserRepository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByHandle(ctx context.Context, handle string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByHandle(ctx context.Context, handle string) (bool, error)
	UpdateBio(ctx context.Context, id uuid.UUID, bio string) error
	UpdateLocation(ctx context.Context, id uuid.UUID, location string, lat, lon *float64) error
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, handle, email, password_hash, bio, location, latitude, longitude, created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, u User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, handle, email, password_hash, bio, location, latitude, longitude)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Handle, u.Email, u.PasswordHash, u.Bio, u.Location, u.Latitude, u.Longitude,
	)
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByHandle(ctx context.Context, handle string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE handle = $1`, handle)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) ExistsByHandle(ctx context.Context, handle string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE handle = $1)`, handle)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) UpdateBio(ctx context.Context, id uuid.UUID, bio string) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE users SET bio = $1, updated_at = now() WHERE id = $2`,
		bio, id,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdateLocation(ctx context.Context, id uuid.UUID, location string, lat, lon *float64) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE users SET location = $1, latitude = $2, longitude = $3, updated_at = now() WHERE id = $4`,
		location, lat, lon, id,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row database.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Handle, &u.Email, &u.PasswordHash, &u.Bio,
		&u.Location, &u.Latitude, &u.Longitude, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}
