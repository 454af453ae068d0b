package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"campus-canteen/internal/domain"
)

// ErrDuplicateEmail is returned when a signup collides with the unique index
// on users.email.
var ErrDuplicateEmail = errors.New("email is already registered")

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateWithProfile inserts the auth row and its application profile in one
// transaction so a signup can never leave a user without a profile (or a
// profile without its welcome coins).
func (r *UserRepository) CreateWithProfile(email, passwordHash, fullName string, welcomeCoins int) (*domain.User, *domain.Profile, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	user := domain.User{Email: email, PasswordHash: passwordHash}
	err = tx.QueryRow(
		"INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id, created_at",
		email, passwordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, nil, ErrDuplicateEmail
		}
		return nil, nil, err
	}

	profile := domain.Profile{ID: user.ID, FullName: fullName, Coins: welcomeCoins}
	err = tx.QueryRow(
		"INSERT INTO profiles (id, full_name, coins) VALUES ($1, $2, $3) RETURNING created_at",
		user.ID, fullName, welcomeCoins,
	).Scan(&profile.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return &user, &profile, nil
}

func (r *UserRepository) GetByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRow(
		"SELECT id, email, password_hash, reset_requested_at, created_at FROM users WHERE email = $1",
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.ResetRequestedAt, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Get(id int) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRow(
		"SELECT id, email, password_hash, reset_requested_at, created_at FROM users WHERE id = $1",
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.ResetRequestedAt, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SetResetRequested(id int, at time.Time) error {
	_, err := r.DB.Exec("UPDATE users SET reset_requested_at = $1 WHERE id = $2", at, id)
	return err
}

// CompleteReset swaps the password hash and clears the reset marker together,
// re-admitting the identity in the same write that rotates the credential.
func (r *UserRepository) CompleteReset(id int, passwordHash string) error {
	_, err := r.DB.Exec(
		"UPDATE users SET password_hash = $1, reset_requested_at = NULL WHERE id = $2",
		passwordHash, id,
	)
	return err
}
