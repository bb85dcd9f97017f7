package database

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type softRow struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string
	ModifiedBy *uuid.UUID
	DeletedAt  gorm.DeletedAt
}

func (softRow) TableName() string { return "soft_rows" }

type hardRow struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (hardRow) TableName() string { return "hard_rows" }

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=gorm dbname=gorm sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func TestSoftDeleteCapability(t *testing.T) {
	if col, ok := SoftDeleteColumn[softRow](); !ok || col != "deleted_at" {
		t.Fatalf("softRow: col=%q ok=%v", col, ok)
	}
	if IsSoftDeletable[hardRow]() {
		t.Fatal("hardRow has no DeletedAt field")
	}
}

func TestSelectScopesSoftDeletedRows(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []softRow
		return scoped[softRow](tx, QueryOptions{
			Filters: map[string]any{"name": "X"},
			OrderBy: &OrderBy{Column: "name", Ascending: true},
		}).Find(&out)
	})
	if !strings.Contains(sql, `"soft_rows"."deleted_at" IS NULL`) {
		t.Fatalf("default select must hide deleted rows: %s", sql)
	}
	if !strings.Contains(sql, `"name" = 'X'`) || !strings.Contains(sql, `ORDER BY "name"`) {
		t.Fatalf("filters/order missing: %s", sql)
	}

	sql = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []softRow
		return scoped[softRow](tx, QueryOptions{IncludeDeleted: true}).Find(&out)
	})
	if strings.Contains(sql, "deleted_at") {
		t.Fatalf("include deleted must drop the scope: %s", sql)
	}
}

func TestSelectNilFilterIsNull(t *testing.T) {
	db := dryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []hardRow
		return scoped[hardRow](tx, QueryOptions{
			Filters: map[string]any{"name": nil},
			OrderBy: &OrderBy{Column: "name"},
			Limit:   5,
		}).Find(&out)
	})
	if !strings.Contains(sql, `"name" IS NULL`) || !strings.Contains(sql, "DESC") || !strings.Contains(sql, "LIMIT 5") {
		t.Fatalf("sql = %s", sql)
	}
}

func TestDeleteQuery(t *testing.T) {
	db := dryRunDB(t)
	id := uuid.New()
	by := uuid.New()
	now := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return deleteQuery[softRow](tx, map[string]any{"id": id}, map[string]any{"modified_by": by}, now)
	})
	if !strings.HasPrefix(sql, `UPDATE "soft_rows" SET`) || !strings.Contains(sql, `"deleted_at"=`) || !strings.Contains(sql, by.String()) {
		t.Fatalf("soft delete must stamp deleted_at: %s", sql)
	}
	if !strings.Contains(sql, `"soft_rows"."deleted_at" IS NULL`) {
		t.Fatalf("soft delete must skip already-deleted rows: %s", sql)
	}

	sql = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return deleteQuery[hardRow](tx, map[string]any{"id": id}, nil, now)
	})
	if !strings.HasPrefix(sql, `DELETE FROM "hard_rows"`) {
		t.Fatalf("hard delete expected: %s", sql)
	}
}

func TestUpdateQuerySkipsDeletedRows(t *testing.T) {
	db := dryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return updateQuery[softRow](tx, map[string]any{"name": "A"}, map[string]any{"name": "B"})
	})
	if !strings.Contains(sql, `SET "name"='B'`) || !strings.Contains(sql, `"soft_rows"."deleted_at" IS NULL`) {
		t.Fatalf("sql = %s", sql)
	}
}
