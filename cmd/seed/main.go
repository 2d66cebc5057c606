package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	"shelfblog/internal/config"
	"shelfblog/internal/platform/postgres"
	"shelfblog/internal/platform/sqlite"
	"shelfblog/internal/post"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertPostSQL       = `INSERT INTO myposts (post_title, post_date, post_body) VALUES ($1, $2, $3)`
	insertPostSQLiteSQL = `INSERT INTO myposts (post_title, post_date, post_body) VALUES (?, ?, ?)`
)

func main() {
	truncate := flag.Bool("truncate", false, "Delete existing posts before seeding")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.LoadBlog()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	posts := samplePosts()
	log.Printf("Seeding %d posts driver=%s", len(posts), cfg.DBDriver)
	if err := run(context.Background(), cfg, posts, *truncate); err != nil {
		log.Fatal(err)
	}
	log.Printf("Successfully inserted %d posts!", len(posts))
}

func run(ctx context.Context, cfg config.Blog, posts []post.Post, truncate bool) error {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := post.NewSQLSource(db, cfg.DBTimeout).EnsureSchema(ctx); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if err := seedSQL(ctx, db, posts, truncate); err != nil {
			return fmt.Errorf("insert posts: %w", err)
		}
	default:
		pool, err := postgres.Open(ctx, cfg.DBDSN, 5*time.Second)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		if err := seedPostgres(ctx, pool, posts, truncate); err != nil {
			return fmt.Errorf("insert posts: %w", err)
		}
	}
	return nil
}

func seedPostgres(ctx context.Context, pool *pgxpool.Pool, posts []post.Post, truncate bool) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if truncate {
			if _, err := tx.Exec(ctx, `DELETE FROM myposts`); err != nil {
				return err
			}
		}
		batch := &pgx.Batch{}
		for _, p := range posts {
			batch.Queue(insertPostSQL, p.Title, p.Date, p.Body)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

func seedSQL(ctx context.Context, db *sql.DB, posts []post.Post, truncate bool) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if truncate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM myposts`); err != nil {
			return err
		}
	}
	for _, p := range posts {
		if _, err := tx.ExecContext(ctx, insertPostSQLiteSQL, p.Title, p.FormattedDate(), p.Body); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func samplePosts() []post.Post {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return []post.Post{
		{
			Title: "Antigone",
			Date:  day(2023, time.January, 15),
			Body:  "Notes on Sophocles and the conflict between family duty and the law of the city.",
		},
		{
			Title: "Beloved",
			Date:  day(2023, time.February, 1),
			Body:  "Toni Morrison's novel about memory, and the past that refuses to stay buried.",
		},
		{
			Title: "Candide",
			Date:  day(2023, time.March, 12),
			Body:  "Voltaire's satire, and why we must cultivate our garden.",
		},
	}
}
