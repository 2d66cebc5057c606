package book

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book represents a book entity.
type Book struct {
	ID     uint32 `json:"id" validate:"gt=0"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

func (b Book) String() string {
	return fmt.Sprintf("%s by %s", b.Title, b.Author)
}

// DefaultBooks returns the catalog the API starts with.
func DefaultBooks() []Book {
	return []Book{
		{ID: 1, Title: "Antigone", Author: "Sophocles"},
		{ID: 2, Title: "Beloved", Author: "Toni Morrison"},
		{ID: 3, Title: "Candide", Author: "Voltaire"},
	}
}
