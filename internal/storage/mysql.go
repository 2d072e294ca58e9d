package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"

	"microtest/internal/config"
	"microtest/internal/domain"
)

const createRunsTable = `CREATE TABLE IF NOT EXISTS microtest_runs (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	total INT NOT NULL,
	passed INT NOT NULL,
	failed INT NOT NULL,
	errored INT NOT NULL,
	failure_rate DOUBLE NOT NULL,
	duration VARCHAR(64) NOT NULL,
	duration_seconds DOUBLE NOT NULL,
	created_at VARCHAR(64) NOT NULL
)`

const createFailuresTable = `CREATE TABLE IF NOT EXISTS microtest_failures (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	run_id BIGINT NOT NULL,
	position INT NOT NULL,
	test_name VARCHAR(512) NOT NULL,
	outcome VARCHAR(16) NOT NULL,
	message TEXT NOT NULL,
	extra TEXT NOT NULL,
	resolved BOOLEAN NOT NULL DEFAULT FALSE,
	INDEX idx_run (run_id)
)`

// MySQLStorage appends every run to MySQL tables and loads the latest one.
type MySQLStorage struct {
	dsn string
	db  *sql.DB
}

// NewMySQLStorage prepares a MySQL storage; the connection is opened on first use.
func NewMySQLStorage(cfg *config.Config) (*MySQLStorage, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	return &MySQLStorage{dsn: dsn}, nil
}

// DSN returns the configured MySQLDSN, or one built from the DB* settings.
func DSN(cfg *config.Config) (string, error) {
	if cfg.MySQLDSN != "" {
		if _, err := mysql.ParseDSN(cfg.MySQLDSN); err != nil {
			return "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		return cfg.MySQLDSN, nil
	}
	mc := mysql.NewConfig()
	mc.User = cfg.DBUser
	mc.Passwd = cfg.DBPassword
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
	mc.DBName = cfg.DBName
	return mc.FormatDSN(), nil
}

func (s *MySQLStorage) open() (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := sql.Open("mysql", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}
	for _, stmt := range []string{createRunsTable, createFailuresTable} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create results tables: %w", err)
		}
	}
	s.db = db
	return db, nil
}

// Close releases the connection pool.
func (s *MySQLStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts the run and its failures in one transaction.
func (s *MySQLStorage) Save(report *domain.RunReport) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	m := report.Meta
	res, err := tx.Exec(
		`INSERT INTO microtest_runs (total, passed, failed, errored, failure_rate, duration, duration_seconds, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.TotalTests, m.PassedTests, m.FailedTests, m.ErroredTests, m.FailureRate, m.Duration, m.DurationSeconds, m.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, d := range report.Details {
		if _, err := tx.Exec(
			`INSERT INTO microtest_failures (run_id, position, test_name, outcome, message, extra, resolved)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, d.Position, d.TestName, d.Outcome, d.Message, d.Extra, d.Resolved,
		); err != nil {
			return fmt.Errorf("insert failure %q: %w", d.TestName, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	report.Meta.RunID = runID
	return nil
}

// Load returns the most recently saved run.
func (s *MySQLStorage) Load() (*domain.RunReport, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}

	var report domain.RunReport
	m := &report.Meta
	err = db.QueryRow(
		`SELECT id, total, passed, failed, errored, failure_rate, duration, duration_seconds, created_at
		FROM microtest_runs ORDER BY id DESC LIMIT 1`,
	).Scan(&m.RunID, &m.TotalTests, &m.PassedTests, &m.FailedTests, &m.ErroredTests, &m.FailureRate, &m.Duration, &m.DurationSeconds, &m.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoResults
	}
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}

	rows, err := db.Query(
		`SELECT position, test_name, outcome, message, extra, resolved
		FROM microtest_failures WHERE run_id = ? ORDER BY position`,
		m.RunID,
	)
	if err != nil {
		return nil, fmt.Errorf("load failures: %w", err)
	}
	defer rows.Close()

	report.Details = []domain.TestFailure{}
	for rows.Next() {
		var f domain.TestFailure
		if err := rows.Scan(&f.Position, &f.TestName, &f.Outcome, &f.Message, &f.Extra, &f.Resolved); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		report.Details = append(report.Details, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load failures: %w", err)
	}
	return &report, nil
}

// SaveResolved updates the resolved flag of each failure of the run.
func (s *MySQLStorage) SaveResolved(report *domain.RunReport) error {
	if report.Meta.RunID == 0 {
		return errors.New("run has not been saved to mysql")
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	for _, d := range report.Details {
		if _, err := db.Exec(
			`UPDATE microtest_failures SET resolved = ? WHERE run_id = ? AND position = ?`,
			d.Resolved, report.Meta.RunID, d.Position,
		); err != nil {
			return fmt.Errorf("update failure %q: %w", d.TestName, err)
		}
	}
	return nil
}
