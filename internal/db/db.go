// internal/db/db.go
package db

import (
    "context"
    "database/sql"
    "fmt"
    "net/url"
    "strings"
    "time"

    dbsql "github.com/databricks/databricks-sql-go"
    _ "github.com/lib/pq"
    _ "modernc.org/sqlite"
    "go.uber.org/zap"

    "github.com/unclebandit/campaign-workflow/internal/config"
)

const pingTimeout = 10 * time.Second

// OpenDatabricks connects to a SQL warehouse. The host may carry a scheme.
func OpenDatabricks(ctx context.Context, host, token, httpPath, catalog, schema string, log *zap.Logger) (*sql.DB, error) {
    connector, err := dbsql.NewConnector(
        dbsql.WithServerHostname(hostname(host)),
        dbsql.WithPort(443),
        dbsql.WithHTTPPath(httpPath),
        dbsql.WithAccessToken(token),
        dbsql.WithInitialNamespace(catalog, schema),
        dbsql.WithUserAgentEntry("campaign-workflow"),
    )
    if err != nil {
        return nil, fmt.Errorf("databricks connector: %w", err)
    }

    conn := sql.OpenDB(connector)
    if err := ping(ctx, conn); err != nil {
        conn.Close()
        return nil, fmt.Errorf("ping databricks: %w", err)
    }

    log.Info("connected to databricks warehouse", zap.String("host", hostname(host)), zap.String("http_path", httpPath))
    return conn, nil
}

// OpenPostgres connects using the DB_* settings.
func OpenPostgres(ctx context.Context, cfg config.PostgresConfig, log *zap.Logger) (*sql.DB, error) {
    log.Info("opening postgres",
        zap.String("db_user", cfg.User),
        zap.String("db_name", cfg.Name),
        zap.String("db_host", cfg.Host),
    )

    dsn := fmt.Sprintf(
        "postgres://%s:%s@%s:%s/%s?sslmode=%s",
        url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password), cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode,
    )

    conn, err := sql.Open("postgres", dsn)
    if err != nil {
        return nil, fmt.Errorf("open postgres: %w", err)
    }
    if err := ping(ctx, conn); err != nil {
        conn.Close()
        return nil, fmt.Errorf("ping postgres: %w", err)
    }

    log.Info("connected to postgres")
    return conn, nil
}

// OpenSQLite opens a local database file, or a private in-memory one for ":memory:".
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
    conn, err := sql.Open("sqlite", path)
    if err != nil {
        return nil, fmt.Errorf("open sqlite: %w", err)
    }
    // every new connection to :memory: is a fresh database
    conn.SetMaxOpenConns(1)
    if err := ping(ctx, conn); err != nil {
        conn.Close()
        return nil, fmt.Errorf("ping sqlite: %w", err)
    }
    return conn, nil
}

func ping(ctx context.Context, conn *sql.DB) error {
    ctx, cancel := context.WithTimeout(ctx, pingTimeout)
    defer cancel()
    return conn.PingContext(ctx)
}

func hostname(host string) string {
    host = strings.TrimSpace(host)
    host = strings.TrimPrefix(host, "https://")
    host = strings.TrimPrefix(host, "http://")
    return strings.TrimSuffix(host, "/")
}
