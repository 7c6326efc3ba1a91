package persistence

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestMigrationFilesAreOrdered(t *testing.T) {
	files, err := migrationFiles()
	if err != nil {
		t.Fatalf("migrationFiles: unexpected error: %v", err)
	}
	if len(files) == 0 || files[0] != "001_web_sessions.sql" {
		t.Fatalf("migrationFiles: unexpected files %v", files)
	}
	content, err := migrationsFS.ReadFile("migrations/" + files[0])
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(content), "web_sessions") {
		t.Fatalf("first migration does not create web_sessions")
	}
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	if err := RunMigrations(context.Background(), nil, zap.NewNop()); err != nil {
		t.Fatalf("RunMigrations: unexpected error: %v", err)
	}
}
