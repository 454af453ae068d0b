package storage

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func newUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewUserRepository(db), mock
}

func TestUserRepositoryCreateWithProfile(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("budi@campus.test", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))
	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs(1, "Budi", 300).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectCommit()

	user, profile, err := repo.CreateWithProfile("budi@campus.test", "hash", "Budi", 300)
	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, 300, profile.Coins)
}

func TestUserRepositoryCreateWithProfileDuplicateEmail(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("budi@campus.test", "hash").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})
	mock.ExpectRollback()

	_, _, err := repo.CreateWithProfile("budi@campus.test", "hash", "Budi", 300)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}
