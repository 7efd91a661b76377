package db

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nurpe/nutri-contracts/internal/model"
)

func TestMigrationsBoundServiceDuration(t *testing.T) {
	schema := strings.Join(migrationStatements, "\n")
	want := fmt.Sprintf("CHECK (duration_days <= %d)", model.MaxDurationDays)
	if !strings.Contains(schema, want) {
		t.Fatalf("schema lacks %q", want)
	}
}
