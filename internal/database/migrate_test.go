package database

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Entity ids travel as int64, so every key column must be 64-bit.
func TestMigrations_KeysAreBigint(t *testing.T) {
	up, err := migrations.ReadFile("migrations/000001_init.up.sql")
	require.NoError(t, err)

	sql := string(up)

	assert.NotRegexp(t, regexp.MustCompile(`\bSERIAL\b`), sql)
	assert.NotRegexp(t, regexp.MustCompile(`\bINTEGER\b`), sql)

	for _, col := range []string{
		`id\s+BIGSERIAL PRIMARY KEY`,
		`client_id\s+BIGINT NOT NULL REFERENCES clients`,
		`invoice_id\s+BIGINT NOT NULL REFERENCES invoices`,
	} {
		assert.Regexp(t, regexp.MustCompile(col), sql)
	}
}
