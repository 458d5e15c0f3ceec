// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sql-dashboard/internal/common/config"
	"sql-dashboard/internal/models"

	_ "github.com/lib/pq"
)

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres creates a new PostgreSQL client
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	dsn := cfg.GetDSN()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Query executes a query that returns rows
func (c *PostgresClient) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.DB.QueryContext(ctx, query, args...)
}

// Exec executes a query that doesn't return rows
func (c *PostgresClient) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return c.DB.ExecContext(ctx, query, args...)
}

// RunQuery executes a read-only query and scans the result into a generic
// tabular form. Callers pass only strings that survived sanitization.
func (c *PostgresClient) RunQuery(ctx context.Context, query string) (*models.QueryResult, error) {
	rows, err := c.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	result := &models.QueryResult{Columns: columns}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		scanArgs := make([]interface{}, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		row := make([]interface{}, len(columns))
		for i, v := range values {
			// lib/pq returns []byte for text-ish columns
			if b, ok := v.([]byte); ok {
				row[i] = string(b)
			} else {
				row[i] = v
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	result.RowCount = len(result.Rows)
	return result, nil
}

const (
	listTablesQuery = `SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name`

	listColumnsQuery = `SELECT column_name, data_type, is_nullable FROM information_schema.columns WHERE table_name = $1 ORDER BY ordinal_position`
)

// IntrospectSchema reads table and column metadata from information_schema.
// Rebuilt on each call; tables in name order, columns in ordinal order.
func (c *PostgresClient) IntrospectSchema(ctx context.Context) (models.SchemaDescriptor, error) {
	rows, err := c.Query(ctx, listTablesQuery)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tableNames []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tableNames = append(tableNames, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("table iteration: %w", err)
	}

	schema := make(models.SchemaDescriptor, 0, len(tableNames))
	for _, tableName := range tableNames {
		columns, err := c.introspectColumns(ctx, tableName)
		if err != nil {
			return nil, err
		}
		schema = append(schema, models.TableDescriptor{Name: tableName, Columns: columns})
	}

	return schema, nil
}

func (c *PostgresClient) introspectColumns(ctx context.Context, tableName string) ([]models.ColumnDescriptor, error) {
	rows, err := c.Query(ctx, listColumnsQuery, tableName)
	if err != nil {
		return nil, fmt.Errorf("list columns for %s: %w", tableName, err)
	}
	defer rows.Close()

	var columns []models.ColumnDescriptor
	for rows.Next() {
		var name, dataType, nullable string
		if err := rows.Scan(&name, &dataType, &nullable); err != nil {
			return nil, fmt.Errorf("scan column for %s: %w", tableName, err)
		}
		columns = append(columns, models.ColumnDescriptor{
			Name:     name,
			DataType: dataType,
			Nullable: nullable != "NO",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("column iteration for %s: %w", tableName, err)
	}

	return columns, nil
}

var sampleDataStatements = []string{
	`CREATE TABLE IF NOT EXISTS sales (
		id SERIAL PRIMARY KEY,
		product_name VARCHAR(100),
		category VARCHAR(50),
		price DECIMAL(10,2),
		quantity INTEGER,
		sale_date DATE,
		region VARCHAR(50)
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100),
		email VARCHAR(100),
		age INTEGER,
		city VARCHAR(50),
		registration_date DATE
	)`,
	`INSERT INTO sales (product_name, category, price, quantity, sale_date, region)
	VALUES
		('Laptop', 'Electronics', 999.99, 2, '2024-01-15', 'North'),
		('Phone', 'Electronics', 699.99, 5, '2024-01-16', 'South'),
		('Desk Chair', 'Furniture', 299.99, 1, '2024-01-17', 'East'),
		('Monitor', 'Electronics', 399.99, 3, '2024-01-18', 'West'),
		('Table', 'Furniture', 499.99, 2, '2024-01-19', 'North')
	ON CONFLICT DO NOTHING`,
	`INSERT INTO customers (name, email, age, city, registration_date)
	VALUES
		('John Doe', 'john@email.com', 28, 'New York', '2024-01-10'),
		('Jane Smith', 'jane@email.com', 34, 'Los Angeles', '2024-01-11'),
		('Bob Johnson', 'bob@email.com', 45, 'Chicago', '2024-01-12'),
		('Alice Brown', 'alice@email.com', 29, 'Houston', '2024-01-13'),
		('Charlie Wilson', 'charlie@email.com', 52, 'Phoenix', '2024-01-14')
	ON CONFLICT DO NOTHING`,
}

// EnsureSampleData creates the demo tables and rows. Idempotent; intended
// for development and demo environments only.
func (c *PostgresClient) EnsureSampleData(ctx context.Context) error {
	for _, stmt := range sampleDataStatements {
		if _, err := c.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
	}
	return nil
}
