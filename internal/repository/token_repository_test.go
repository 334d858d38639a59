package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectRefresh = "SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1"

func refreshRows(userID uint64, exp time.Time, revoked *time.Time) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"})
	if revoked != nil {
		return rows.AddRow(userID, exp, *revoked)
	}
	return rows.AddRow(userID, exp, nil)
}

func TestTokenRepo_ValidateRefresh_Live(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectRefresh)).
		WithArgs("hash-1").
		WillReturnRows(refreshRows(9, time.Now().UTC().Add(time.Hour), nil))

	userID, err := NewTokenRepo(db).ValidateRefresh(context.Background(), "hash-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), userID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepo_ValidateRefresh_Revoked(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	revoked := time.Now().UTC().Add(-time.Minute)
	mock.ExpectQuery(regexp.QuoteMeta(selectRefresh)).
		WithArgs("hash-1").
		WillReturnRows(refreshRows(9, time.Now().UTC().Add(time.Hour), &revoked))

	_, err = NewTokenRepo(db).ValidateRefresh(context.Background(), "hash-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTokenRepo_ValidateRefresh_Expired(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectRefresh)).
		WithArgs("hash-1").
		WillReturnRows(refreshRows(9, time.Now().UTC().Add(-time.Hour), nil))

	_, err = NewTokenRepo(db).ValidateRefresh(context.Background(), "hash-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTokenRepo_StoreAndRevoke(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	exp := time.Now().UTC().Add(24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)")).
		WithArgs(uint64(9), "hash-1", exp).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL")).
		WithArgs("hash-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL")).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := NewTokenRepo(db)
	require.NoError(t, repo.StoreRefresh(context.Background(), 9, "hash-1", exp))
	require.NoError(t, repo.RevokeByHash(context.Background(), "hash-1"))
	require.NoError(t, repo.RevokeAllForUser(context.Background(), 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}
