package post

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const createPostsTableSQL = `CREATE TABLE IF NOT EXISTS myposts (
	post_title TEXT NOT NULL,
	post_date  DATE NOT NULL,
	post_body  TEXT NOT NULL
)`

// SQLSource reads posts through database/sql. It is used with the SQLite
// driver, which hands dates back as text or time.Time depending on how they
// were written.
type SQLSource struct {
	db      *sql.DB
	timeout time.Duration
}

func NewSQLSource(db *sql.DB, timeout time.Duration) *SQLSource {
	return &SQLSource{db: db, timeout: timeout}
}

// EnsureSchema creates the posts table when it is missing.
func (s *SQLSource) EnsureSchema(ctx context.Context) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	_, err := s.db.ExecContext(timeoutCtx, createPostsTableSQL)
	return err
}

func (s *SQLSource) FetchPosts(ctx context.Context) ([]Post, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(timeoutCtx, selectPostsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Post
	for rows.Next() {
		var (
			p    Post
			date any
		)
		if err := rows.Scan(&p.Title, &date, &p.Body); err != nil {
			return nil, err
		}
		if p.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("post %q: %w", p.Title, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		return parseDateString(d)
	case []byte:
		return parseDateString(string(d))
	default:
		return time.Time{}, fmt.Errorf("unsupported date value %T", v)
	}
}

func parseDateString(s string) (time.Time, error) {
	for _, layout := range []string{DateLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
