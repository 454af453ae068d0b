package storage

import (
	"database/sql"

	"campus-canteen/internal/domain"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) Get(id int) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.DB.QueryRow(
		"SELECT id, COALESCE(full_name, ''), coins, created_at FROM profiles WHERE id = $1",
		id,
	).Scan(&profile.ID, &profile.FullName, &profile.Coins, &profile.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) UpdateFullName(id int, fullName string) error {
	_, err := r.DB.Exec("UPDATE profiles SET full_name = $1 WHERE id = $2", fullName, id)
	return err
}
