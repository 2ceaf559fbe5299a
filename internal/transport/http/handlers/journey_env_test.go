//go:build !container

package handlers_test

import (
	"os"
	"testing"
)

func databaseURL(t *testing.T) string {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return dbURL
}
