package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := "INSERT INTO plans (run_id, created_at) VALUES (?, ?)"

	assert.Equal(t, q, SQLite.Rebind(q))
	assert.Equal(t, "INSERT INTO plans (run_id, created_at) VALUES ($1, $2)", Postgres.Rebind(q))
}

func TestConnectFallsBackToSQLite(t *testing.T) {
	conn, dialect, err := Connect("", filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, SQLite, dialect)
	assert.NoError(t, conn.Ping())
}
