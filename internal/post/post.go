package post

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no post has the requested title.
var ErrNotFound = errors.New("post not found")

// DateLayout is how post dates are stored as text and rendered.
const DateLayout = "2006-01-02"

// Post is one row of the myposts table.
type Post struct {
	Title string
	Date  time.Time
	Body  string
}

// FormattedDate renders the calendar date of the post.
func (p Post) FormattedDate() string {
	return p.Date.Format(DateLayout)
}
