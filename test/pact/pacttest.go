//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "shop-users-api"
	ConsumerName = "shop-frontend"

	StateUsersBaseline = "users baseline"
	StatePendingUser   = "pending user with id 101 exists"
	StateUserMissing   = "no user with id 404"
	StateUsersSearch   = "three users named Smith exist"
)

const (
	ExistingUserID  int64 = 101
	MissingUserID   int64 = 404
	ActivationToken       = "pact-activation-token"
	SearchFragment        = "mith"
	SearchLastName        = "Smith"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the frontend consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleUserPayload is the registration body used across interactions.
func ExampleUserPayload() map[string]any {
	return map[string]any{
		"firstName": "Ann",
		"lastName":  "Kowalska",
		"email":     "ann.kowalska@example.com",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
