package main

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var pqUniqueViolation = pq.Error{Code: "23505", Constraint: "users_email_key"}

func newTestApplication(t *testing.T) (*application, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &application{
		logger:    zerolog.Nop(),
		storage:   newStorage(db),
		tokens:    newTokenIssuer([]byte("test-secret")),
		passwords: newPasswordHasher(bcrypt.MinCost),
	}, mock
}
