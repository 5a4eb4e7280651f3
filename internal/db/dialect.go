package db

import (
    "fmt"
    "strconv"
    "strings"

    "github.com/unclebandit/campaign-workflow/internal/config"
)

// ColumnType is a portable column kind mapped per dialect.
type ColumnType int

const (
    String ColumnType = iota
    Double
    Bool
    Timestamp
)

// Dialect captures the SQL differences between the stores we read from.
type Dialect struct {
    Name     string
    numbered bool
    // castParams types bind markers that appear in a select list.
    castParams bool
    // uniqueIndexes reports whether CREATE UNIQUE INDEX is enforced.
    uniqueIndexes bool
    types         map[ColumnType]string
}

var (
    Databricks = Dialect{
        Name:  "databricks",
        types: map[ColumnType]string{String: "STRING", Double: "DOUBLE", Bool: "BOOLEAN", Timestamp: "TIMESTAMP"},
    }
    Postgres = Dialect{
        Name:          "postgres",
        numbered:      true,
        castParams:    true,
        uniqueIndexes: true,
        types:    map[ColumnType]string{String: "TEXT", Double: "DOUBLE PRECISION", Bool: "BOOLEAN", Timestamp: "TIMESTAMPTZ"},
    }
    SQLite = Dialect{
        Name:          "sqlite",
        uniqueIndexes: true,
        types: map[ColumnType]string{String: "TEXT", Double: "REAL", Bool: "BOOLEAN", Timestamp: "TIMESTAMP"},
    }
)

// Placeholder returns the bind marker for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
    if d.numbered {
        return "$" + strconv.Itoa(n)
    }
    return "?"
}

// Param is the bind marker for an argument used as a selected value of type t.
func (d Dialect) Param(n int, t ColumnType) string {
    if d.castParams {
        return fmt.Sprintf("CAST(%s AS %s)", d.Placeholder(n), d.Type(t))
    }
    return d.Placeholder(n)
}

// Type returns the column type name.
func (d Dialect) Type(t ColumnType) string {
    return d.types[t]
}

// Tables holds the fully qualified table names for the logical datasets.
type Tables struct {
    Campaigns  string
    Compliance string
    Creatives  string
    Handoff    string
    Analysis   string
    Events     string
}

// Qualify prefixes every configured table name with the non-empty namespace
// parts, e.g. catalog.schema.table.
func Qualify(cfg config.TableConfig, namespace ...string) Tables {
    q := func(table string) string {
        parts := []string{}
        for _, p := range namespace {
            if p = strings.TrimSpace(p); p != "" {
                parts = append(parts, p)
            }
        }
        return strings.Join(append(parts, table), ".")
    }
    return Tables{
        Campaigns:  q(cfg.Campaigns),
        Compliance: q(cfg.Compliance),
        Creatives:  q(cfg.Creatives),
        Handoff:    q(cfg.Handoff),
        Analysis:   q(cfg.Analysis),
        Events:     q(cfg.Events),
    }
}
