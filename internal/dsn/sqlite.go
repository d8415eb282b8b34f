// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"net/url"
	"sort"
	"strings"
)

// SQLiteResolver handles SQLite file DSNs.
type SQLiteResolver struct{}

// NewSQLiteResolver creates a new SQLite resolver
func NewSQLiteResolver() *SQLiteResolver {
	return &SQLiteResolver{}
}

// Parse accepts sqlite://path, sqlite:path, file:path, bare *.db paths and :memory:.
func (r *SQLiteResolver) Parse(dsn string) (*DSNInfo, error) {
	raw := strings.TrimSpace(dsn)
	if raw == "" {
		return nil, NewParseError(dsn, "empty DSN", "provide a path such as sqlite://./dev.db")
	}

	path := raw
	for _, prefix := range []string{"sqlite://", "sqlite:", "file:"} {
		if len(path) >= len(prefix) && strings.EqualFold(path[:len(prefix)], prefix) {
			path = path[len(prefix):]
			break
		}
	}

	info := &DSNInfo{
		Type:     DBTypeSQLite,
		Params:   make(map[string]string),
		Original: dsn,
	}
	if i := strings.Index(path, "?"); i >= 0 {
		values, err := url.ParseQuery(path[i+1:])
		if err != nil {
			return nil, NewParseError(dsn, "invalid query parameters", "use key=value pairs separated by &")
		}
		for k, v := range values {
			if len(v) > 0 {
				info.Params[k] = v[0]
			}
		}
		path = path[:i]
	}
	if path == "" {
		return nil, NewParseError(dsn, "missing database file", "provide a path such as sqlite://./dev.db")
	}
	info.Database = path
	return info, nil
}

// Normalize renders info as sqlite://path with sorted parameters.
func (r *SQLiteResolver) Normalize(info *DSNInfo) (string, error) {
	if info == nil {
		return "", NewParseError("", "nil DSN info", "")
	}
	var b strings.Builder
	b.WriteString("sqlite://")
	b.WriteString(info.Database)
	if len(info.Params) > 0 {
		keys := make([]string, 0, len(info.Params))
		for k := range info.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i == 0 {
				b.WriteString("?")
			} else {
				b.WriteString("&")
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteString("=")
			b.WriteString(url.QueryEscape(info.Params[k]))
		}
	}
	return b.String(), nil
}

// Validate checks that the DSN names a database file.
func (r *SQLiteResolver) Validate(dsn string) error {
	_, err := r.Parse(dsn)
	return err
}

// SQLitePath returns the file path the SQLite driver should open.
func SQLitePath(dsn string) (string, error) {
	info, err := NewSQLiteResolver().Parse(dsn)
	if err != nil {
		return "", err
	}
	return info.Database, nil
}
