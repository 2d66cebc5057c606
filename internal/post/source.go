package post

//go:generate mockgen -source=source.go -destination=mock_source.go -package=post

import (
	"context"
	"fmt"
	"log"
)

const selectPostsSQL = `SELECT post_title, post_date, post_body FROM myposts`

// Source fetches the full post collection from a backing store.
type Source interface {
	FetchPosts(ctx context.Context) ([]Post, error)
}

// Load fetches every post once and freezes them in a Reader. Callers treat
// an error as fatal.
func Load(ctx context.Context, src Source) (*Reader, error) {
	posts, err := src.FetchPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	log.Printf("posts loaded: count=%d", len(posts))
	return NewReader(posts), nil
}
