// Package sqlrepo is the SQL backed credential store. One implementation serves
// SQLite (modernc.org/sqlite) and PostgreSQL (pgx stdlib driver).
package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	ierrors "github.com/jrsteele09/go-members-server/internal/errors"
	"github.com/jrsteele09/go-members-server/users"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const pgUniqueViolation = "23505"

// ParseDialect maps a configured store name to a Dialect
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(strings.ToLower(name)) {
	case DialectSQLite:
		return DialectSQLite, nil
	case DialectPostgres:
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("unsupported sql dialect %q", name)
}

func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// placeholder returns the bind parameter for the n-th (1 based) argument
func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Repo implements users.UserRepo over database/sql.
type Repo struct {
	db        *sql.DB
	dialect   Dialect
	writeLock *sync.Mutex // sqlite does not support concurrent writes

	findByEmailQuery string
	insertQuery      string
	updateRoleQuery  string
	listAllQuery     string
}

var _ users.UserRepo = (*Repo)(nil)

// New wraps an open database. The schema is expected to exist already (see Migrate).
func New(db *sql.DB, dialect Dialect) *Repo {
	p := dialect.placeholder
	r := &Repo{
		db:      db,
		dialect: dialect,

		findByEmailQuery: `SELECT id, name, email, password_hash, role FROM users WHERE email = ` + p(1),
		insertQuery: fmt.Sprintf(`INSERT INTO users (id, name, email, password_hash, role, created_at) VALUES (%s, %s, %s, %s, %s, %s)`,
			p(1), p(2), p(3), p(4), p(5), p(6)),
		updateRoleQuery: fmt.Sprintf(`UPDATE users SET role = %s WHERE email = %s`, p(1), p(2)),
		listAllQuery:    `SELECT name, email, role FROM users ORDER BY email`,
	}
	if dialect == DialectSQLite {
		r.writeLock = new(sync.Mutex)
	}
	return r
}

// Open connects to the database, applies pending migrations and returns the repo.
func Open(ctx context.Context, dialect Dialect, dsn string) (*Repo, error) {
	if dsn == "" {
		return nil, fmt.Errorf("[sqlrepo Open] %s dsn is required", dialect)
	}

	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("[sqlrepo Open] open db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("[sqlrepo Open] ping db: %w", err)
	}

	if dialect == DialectSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("[sqlrepo Open] set busy timeout: %w", err)
		}
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := Migrate(ctx, db, dialect); err != nil {
		db.Close()
		return nil, fmt.Errorf("[sqlrepo Open] %w", err)
	}

	log.Info().Str("dialect", string(dialect)).Msg("user store ready")
	return New(db, dialect), nil
}

func (r *Repo) lockWrites() func() {
	if r.writeLock == nil {
		return func() {}
	}
	r.writeLock.Lock()
	return r.writeLock.Unlock
}

func (r *Repo) FindByEmail(ctx context.Context, email string) ([]*users.User, error) {
	rows, err := r.db.QueryContext(ctx, r.findByEmailQuery, email)
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	defer rows.Close()

	found := make([]*users.User, 0, 1)
	for rows.Next() {
		u := &users.User{}
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = users.RoleType(role)
		found = append(found, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return found, nil
}

func (r *Repo) Insert(ctx context.Context, user *users.User) error {
	defer r.lockWrites()()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = users.RoleUser
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, r.insertQuery,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			err = errors.Join(ierrors.ErrDuplicate, err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *Repo) UpdateRole(ctx context.Context, email string, role users.RoleType) error {
	defer r.lockWrites()()

	res, err := r.db.ExecContext(ctx, r.updateRoleQuery, string(role), email)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update role rows affected: %w", err)
	}
	if n == 0 {
		return ierrors.Wrapf(ierrors.ErrNotFound, "update role %s", email)
	}
	return nil
}

func (r *Repo) ListAll(ctx context.Context) ([]users.UserSummary, error) {
	rows, err := r.db.QueryContext(ctx, r.listAllQuery)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	list := make([]users.UserSummary, 0)
	for rows.Next() {
		var s users.UserSummary
		var role string
		if err := rows.Scan(&s.Name, &s.Email, &role); err != nil {
			return nil, fmt.Errorf("scan user summary: %w", err)
		}
		s.Role = users.RoleType(role)
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return list, nil
}

func (r *Repo) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
