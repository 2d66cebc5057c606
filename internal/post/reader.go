package post

// Repository is the read-only view the HTTP layer needs.
type Repository interface {
	Titles() []string
	FindByTitle(title string) (Post, error)
}

// Reader serves a fixed snapshot of posts. It is never mutated after
// construction, so it needs no locking.
type Reader struct {
	posts []Post
}

// NewReader copies posts and keeps them in the given order.
func NewReader(posts []Post) *Reader {
	owned := make([]Post, len(posts))
	copy(owned, posts)
	return &Reader{posts: owned}
}

// Titles returns every post title in load order.
func (r *Reader) Titles() []string {
	titles := make([]string, 0, len(r.posts))
	for _, p := range r.posts {
		titles = append(titles, p.Title)
	}
	return titles
}

// FindByTitle returns the first post whose title equals title exactly.
func (r *Reader) FindByTitle(title string) (Post, error) {
	for _, p := range r.posts {
		if p.Title == title {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// Len reports how many posts were loaded.
func (r *Reader) Len() int {
	return len(r.posts)
}
