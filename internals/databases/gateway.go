package database

import (
	"context"
	"reflect"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// OrderBy sorts a select by one column.
type OrderBy struct {
	Column    string
	Ascending bool
}

// QueryOptions shapes a gateway call. A nil filter value matches IS NULL.
// IncludeDeleted only has an effect on soft-deletable entities.
type QueryOptions struct {
	Filters        map[string]any
	Columns        []string
	Preloads       []string
	OrderBy        *OrderBy
	Limit          int
	Offset         int
	IncludeDeleted bool
}

var (
	deletedAtType = reflect.TypeOf(gorm.DeletedAt{})
	schemaCache   = &sync.Map{}
)

// SoftDeleteColumn reports the deleted_at column of T. An entity is
// soft-deletable when its model declares a gorm.DeletedAt field.
func SoftDeleteColumn[T any]() (string, bool) {
	var model T
	sch, err := schema.Parse(&model, schemaCache, schema.NamingStrategy{})
	if err != nil {
		return "", false
	}
	for _, f := range sch.Fields {
		if f.FieldType == deletedAtType && f.DBName != "" {
			return f.DBName, true
		}
	}
	return "", false
}

func IsSoftDeletable[T any]() bool {
	_, ok := SoftDeleteColumn[T]()
	return ok
}

func scoped[T any](tx *gorm.DB, opts QueryOptions) *gorm.DB {
	var model T
	tx = tx.Model(&model)
	if opts.IncludeDeleted && IsSoftDeletable[T]() {
		tx = tx.Unscoped()
	}
	if len(opts.Columns) > 0 {
		tx = tx.Select(opts.Columns)
	}
	if len(opts.Filters) > 0 {
		tx = tx.Where(map[string]any(opts.Filters))
	}
	for _, p := range opts.Preloads {
		tx = tx.Preload(p)
	}
	if opts.OrderBy != nil && opts.OrderBy.Column != "" {
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: opts.OrderBy.Column},
			Desc:   !opts.OrderBy.Ascending,
		})
	}
	if opts.Limit > 0 {
		tx = tx.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		tx = tx.Offset(opts.Offset)
	}
	return tx
}

func Select[T any](ctx context.Context, db *gorm.DB, opts QueryOptions) ([]T, error) {
	out := make([]T, 0)
	err := scoped[T](db.WithContext(ctx), opts).Find(&out).Error
	return out, err
}

// First returns gorm.ErrRecordNotFound when nothing matches.
func First[T any](ctx context.Context, db *gorm.DB, opts QueryOptions) (*T, error) {
	var out T
	if err := scoped[T](db.WithContext(ctx), opts).Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func Count[T any](ctx context.Context, db *gorm.DB, opts QueryOptions) (int64, error) {
	var n int64
	opts.Preloads, opts.OrderBy, opts.Columns = nil, nil, nil
	err := scoped[T](db.WithContext(ctx), opts).Count(&n).Error
	return n, err
}

func Insert[T any](ctx context.Context, db *gorm.DB, row *T) error {
	return db.WithContext(ctx).Create(row).Error
}

// Update writes values to the rows matching filters. Soft-deleted rows are
// never touched.
func Update[T any](ctx context.Context, db *gorm.DB, filters, values map[string]any) (int64, error) {
	res := updateQuery[T](db.WithContext(ctx), filters, values)
	return res.RowsAffected, res.Error
}

// Delete stamps deleted_at (plus stamp columns, e.g. modified_by) on
// soft-deletable entities and removes the rows of every other entity.
func Delete[T any](ctx context.Context, db *gorm.DB, filters, stamp map[string]any) (int64, error) {
	res := deleteQuery[T](db.WithContext(ctx), filters, stamp, time.Now())
	return res.RowsAffected, res.Error
}

func updateQuery[T any](tx *gorm.DB, filters, values map[string]any) *gorm.DB {
	var model T
	return tx.Model(&model).Where(map[string]any(filters)).Updates(values)
}

func deleteQuery[T any](tx *gorm.DB, filters, stamp map[string]any, now time.Time) *gorm.DB {
	var model T
	if col, ok := SoftDeleteColumn[T](); ok {
		values := map[string]any{col: now}
		for k, v := range stamp {
			values[k] = v
		}
		return tx.Model(&model).Where(map[string]any(filters)).Updates(values)
	}
	return tx.Where(map[string]any(filters)).Delete(&model)
}
