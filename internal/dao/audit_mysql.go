package dao

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/classical-cipher-go/internal/config"
)

const createAuditTable = `CREATE TABLE IF NOT EXISTS cipher_audit (
	id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
	request_id VARCHAR(32) NOT NULL,
	cipher VARCHAR(16) NOT NULL,
	action VARCHAR(16) NOT NULL,
	letters INT NOT NULL,
	outcome VARCHAR(64) NOT NULL,
	created_at DATETIME(6) NOT NULL
)`

// MySQLAuditSink keeps the audit trail in a MySQL table
type MySQLAuditSink struct {
	db *sql.DB
}

// MySQLDSN builds the driver DSN from the audit settings
func MySQLDSN(c config.MySQLConfig) string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Database
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Timeout = 5 * time.Second
	return mc.FormatDSN()
}

// NewMySQLAuditSink connects to MySQL and creates the audit table if needed
func NewMySQLAuditSink(ctx context.Context, c config.MySQLConfig) (*MySQLAuditSink, error) {
	db, err := sql.Open("mysql", MySQLDSN(c))
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach mysql: %w", err)
	}
	if _, err := db.ExecContext(ctx, createAuditTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create audit table: %w", err)
	}
	return &MySQLAuditSink{db: db}, nil
}

// Append inserts rec; the id is assigned by MySQL
func (s *MySQLAuditSink) Append(ctx context.Context, rec AuditRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cipher_audit (request_id, cipher, action, letters, outcome, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RequestID, rec.Cipher, rec.Action, rec.Letters, rec.Outcome, rec.CreatedAt.UTC())
	return err
}

// Recent returns up to limit records, newest first
func (s *MySQLAuditSink) Recent(ctx context.Context, limit int) ([]AuditRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, request_id, cipher, action, letters, outcome, created_at FROM cipher_audit ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditRecord
	for rows.Next() {
		var rec AuditRecord
		if err := rows.Scan(&rec.ID, &rec.RequestID, &rec.Cipher, &rec.Action, &rec.Letters, &rec.Outcome, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the connection pool
func (s *MySQLAuditSink) Close() error {
	return s.db.Close()
}
