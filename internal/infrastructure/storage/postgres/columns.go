package postgres

import (
	"reflect"
	"sync"

	"github.com/jackc/pgx/v5"
)

// Several columns (position, timestamp, start) collide with SQL keywords,
// so every generated identifier is quoted.

// Ident quotes a column or table name.
func Ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// Columns returns the quoted "db" tag names of T's fields in declaration
// order. Fields tagged "-" are skipped.
func Columns[T any]() []string {
	var zero T
	meta := metadataOf(reflect.TypeOf(zero))
	cols := make([]string, len(meta))
	for i, f := range meta {
		cols[i] = Ident(f.column)
	}
	return cols
}

// Values maps the quoted column names of v to the field values, skipping
// the columns listed in exclude (unquoted).
func Values(v any, exclude ...string) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	meta := metadataOf(rv.Type())
	out := make(map[string]any, len(meta))
next:
	for _, f := range meta {
		for _, ex := range exclude {
			if ex == f.column {
				continue next
			}
		}
		out[Ident(f.column)] = rv.Field(f.index).Interface()
	}
	return out
}

type field struct {
	index  int
	column string
}

// typeCache holds the field metadata per struct type.
var typeCache sync.Map // map[reflect.Type][]field

func metadataOf(t reflect.Type) []field {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := typeCache.Load(t); ok {
		return cached.([]field)
	}

	var fields []field
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("db")
			if tag == "" || tag == "-" {
				continue
			}
			fields = append(fields, field{index: i, column: tag})
		}
	}
	typeCache.Store(t, fields)
	return fields
}
