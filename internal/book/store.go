package book

import (
	"sort"
	"sync"
)

// Repository defines the contract for book data storage.
type Repository interface {
	List() []Book
	Get(id uint32) (Book, error)
	Put(b Book)
	PutIfExists(b Book) (Book, error)
	Delete(id uint32) error
}

// Store is the in-memory catalog. Every operation holds mu for its whole
// duration, reads included.
type Store struct {
	mu    sync.Mutex
	books map[uint32]Book
}

// NewStore creates a store holding the given books.
func NewStore(seed ...Book) *Store {
	s := &Store{books: make(map[uint32]Book, len(seed))}
	for _, b := range seed {
		s.books[b.ID] = b
	}
	return s
}

// List returns every book sorted by title.
func (s *Store) List() []Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Get returns the book stored under id.
func (s *Store) Get(id uint32) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

// Put inserts b or replaces the book already stored under b.ID.
func (s *Store) Put(b Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[b.ID] = b
}

// PutIfExists replaces the book stored under b.ID and never inserts.
func (s *Store) PutIfExists(b Book) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[b.ID]; !ok {
		return Book{}, ErrNotFound
	}
	s.books[b.ID] = b
	return b, nil
}

// Delete removes the book stored under id.
func (s *Store) Delete(id uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return ErrNotFound
	}
	delete(s.books, id)
	return nil
}
