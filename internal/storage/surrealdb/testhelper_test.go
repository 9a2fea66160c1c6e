package surrealdb

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	tcommon "github.com/sajid-itinnovator/stock-analyzer/tests/common"
	surreal "github.com/surrealdb/surrealdb.go"
)

// testDatabaseName returns a database name unique to the running test.
// SurrealDB rejects "/" in database names, which subtests produce.
func testDatabaseName(t *testing.T, prefix string) string {
	sanitized := strings.NewReplacer("/", "_", " ", "_", "-", "_").Replace(t.Name())
	return fmt.Sprintf("%s_%s_%d", prefix, sanitized, time.Now().UnixNano()%100000)
}

// testDB connects to the shared SurrealDB container and selects a fresh
// database with the application tables defined.
func testDB(t *testing.T) *surreal.DB {
	t.Helper()

	sc := tcommon.StartSurrealDB(t)
	ctx := context.Background()

	db, err := surreal.New(sc.Address())
	if err != nil {
		t.Fatalf("connect to SurrealDB: %v", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": "root",
		"pass": "root",
	}); err != nil {
		t.Fatalf("sign in to SurrealDB: %v", err)
	}

	if err := db.Use(ctx, "stockai_test", testDatabaseName(t, "t")); err != nil {
		t.Fatalf("select namespace/database: %v", err)
	}

	if err := defineTables(ctx, db); err != nil {
		t.Fatalf("define tables: %v", err)
	}

	t.Cleanup(func() {
		db.Close(context.Background())
	})

	return db
}

// testLogger returns a silent logger for tests.
func testLogger() *common.Logger {
	return common.NewSilentLogger()
}
