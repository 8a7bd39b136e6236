package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/omarvaldez/shopstock-backend/pkg/config"
)

func TestNewSQLiteClient(t *testing.T) {
	cfg := config.DBConfig{
		Driver: config.DBDriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}

	client, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if client.DB() == nil {
		t.Fatal("expected gorm connection")
	}
}

func TestNewRequiresTarget(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{Driver: config.DBDriverSQLite}, nil); err == nil {
		t.Fatal("expected error for empty sqlite path")
	}
	if _, err := New(context.Background(), config.DBConfig{Driver: config.DBDriverPostgres}, nil); err == nil {
		t.Fatal("expected error for empty postgres DSN")
	}
}
