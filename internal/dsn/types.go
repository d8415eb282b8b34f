// Copyright (c) 2025 Seedkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import "fmt"

// DBType identifies the database engine a DSN points at.
type DBType string

const (
	DBTypePostgreSQL DBType = "postgresql"
	DBTypeSQLite     DBType = "sqlite"
	// MySQL and Oracle are recognized only to explain that they are unsupported.
	DBTypeMySQL   DBType = "mysql"
	DBTypeOracle  DBType = "oracle"
	DBTypeUnknown DBType = "unknown"
)

// DSNInfo is a DSN split into its parts. For SQLite, Database holds the file
// path and the network fields are empty.
type DSNInfo struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Params   map[string]string
	// Original is the input exactly as given.
	Original string
}

// Resolver parses, normalizes and validates DSNs of one engine.
type Resolver interface {
	Parse(dsn string) (*DSNInfo, error)
	Normalize(info *DSNInfo) (string, error)
	Validate(dsn string) error
}

// ParseError explains why a DSN was rejected and how to fix it.
type ParseError struct {
	DSN    string
	Reason string
	Hint   string
}

func (e *ParseError) Error() string {
	if e.Hint == "" {
		return "invalid DSN: " + e.Reason
	}
	return fmt.Sprintf("invalid DSN: %s (%s)", e.Reason, e.Hint)
}

// NewParseError builds a ParseError.
func NewParseError(dsn, reason, hint string) *ParseError {
	return &ParseError{DSN: dsn, Reason: reason, Hint: hint}
}
