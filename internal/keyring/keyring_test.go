package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/su2708/studyplan/internal/constants"
)

func TestConnectionStringLifecycle(t *testing.T) {
	gokeyring.MockInit()
	connStr := "postgres://student@localhost:5432/studyplan?sslmode=disable"

	if err := SetConnectionString("  " + connStr + "\n"); err != nil {
		t.Fatalf("SetConnectionString() error = %v", err)
	}
	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() error = %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() error = %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() after delete error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteConnectionString() twice error = %v, want %v", err, ErrNotFound)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()
	if err := SetConnectionString("   "); err == nil {
		t.Error("SetConnectionString() expected error for blank input")
	}
}

func TestResolveConnectionString(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString()

	t.Setenv(constants.DBConnectionEnv, "")
	if _, _, err := ResolveConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("ResolveConnectionString() error = %v, want %v", err, ErrNotFound)
	}

	if err := SetConnectionString("postgres://from-keyring@localhost/db"); err != nil {
		t.Fatalf("SetConnectionString() error = %v", err)
	}
	got, src, err := ResolveConnectionString()
	if err != nil || src != SourceKeyring || got != "postgres://from-keyring@localhost/db" {
		t.Errorf("ResolveConnectionString() = %q, %q, %v", got, src, err)
	}

	t.Setenv(constants.DBConnectionEnv, "postgres://from-env@localhost/db")
	got, src, err = ResolveConnectionString()
	if err != nil || src != SourceEnv || got != "postgres://from-env@localhost/db" {
		t.Errorf("ResolveConnectionString() = %q, %q, %v", got, src, err)
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("IsAvailable() = false with mock keyring")
	}
}
