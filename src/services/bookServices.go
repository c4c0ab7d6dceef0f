package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/anhimov/library/src/dtos"
	"github.com/anhimov/library/src/models"
	"github.com/anhimov/library/src/repositories"
	"go.uber.org/zap"
)

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrDuplicateBook = errors.New("a book with this title and author already exists")
	ErrInvalidPage   = errors.New("page must be >= 0 and size must be >= 1")
)

// Clock returns the current time.
type Clock func() time.Time

type BookService struct {
	repo repositories.BookRepository
	log  *zap.Logger
	now  Clock
}

// NewBookService creates a new instance of BookService
func NewBookService(repo repositories.BookRepository, log *zap.Logger) *BookService {
	return &BookService{repo: repo, log: log, now: time.Now}
}

// WithClock replaces the time source used for borrow timestamps.
func (s *BookService) WithClock(now Clock) *BookService {
	s.now = now
	return s
}

// ListBooks returns one zero-based page when both page and size are given,
// otherwise the whole catalog.
func (s *BookService) ListBooks(ctx context.Context, page, size *int, sortByYear bool) (*dtos.BookPage, error) {
	if page == nil || size == nil {
		books, err := s.repo.FindAll(ctx, sortByYear)
		if err != nil {
			return nil, err
		}
		return &dtos.BookPage{
			Books:       books,
			CurrentPage: 0,
			PageSize:    len(books),
			TotalPages:  1,
			TotalItems:  int64(len(books)),
			SortByYear:  sortByYear,
		}, nil
	}

	if *page < 0 || *size < 1 || *page > math.MaxInt / *size {
		return nil, ErrInvalidPage
	}

	books, total, err := s.repo.FindPage(ctx, *page, *size, sortByYear)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(*size) - 1) / int64(*size))
	if totalPages < 1 {
		totalPages = 1
	}
	return &dtos.BookPage{
		Books:       books,
		CurrentPage: *page,
		PageSize:    *size,
		TotalPages:  totalPages,
		TotalItems:  total,
		SortByYear:  sortByYear,
	}, nil
}

// GetBookByID retrieves a Book by its ID
func (s *BookService) GetBookByID(ctx context.Context, id int) (*models.BookModel, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// SearchBooksByTitle matches query as a case-insensitive substring of the title.
func (s *BookService) SearchBooksByTitle(ctx context.Context, query string) ([]models.BookModel, error) {
	return s.repo.SearchByTitle(ctx, query)
}

// GetBookOwner returns the person holding the book, or nil if nobody does.
func (s *BookService) GetBookOwner(ctx context.Context, id int) (*models.PersonModel, error) {
	return s.repo.FindOwner(ctx, id)
}

// FindBookByTitleAndAuthor returns nil when no book has that title and author.
func (s *BookService) FindBookByTitleAndAuthor(ctx context.Context, title, author string) (*models.BookModel, error) {
	return s.repo.FindByTitleAndAuthor(ctx, title, author)
}

// CreateBook inserts a new unborrowed book unless its title and author are taken.
func (s *BookService) CreateBook(ctx context.Context, book *models.BookModel) (*models.BookModel, error) {
	book.Id = 0
	book.PersonId = nil
	book.Owner = nil
	book.BorrowTimestamp = nil

	err := s.repo.WithinTransaction(ctx, func(tx repositories.BookRepository) error {
		existing, err := tx.FindByTitleAndAuthor(ctx, book.Title, book.Author)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateBook
		}
		return tx.Create(ctx, book)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Book created", zap.Int("id", book.Id), zap.String("title", book.Title))
	return book, nil
}

// UpdateBook overwrites title, author and year. Unknown ids are ignored.
func (s *BookService) UpdateBook(ctx context.Context, id int, updated *models.BookModel) error {
	return s.withExistingBook(ctx, id, func(tx repositories.BookRepository, book *models.BookModel) error {
		book.Title = updated.Title
		book.Author = updated.Author
		book.Year = updated.Year
		return tx.Save(ctx, book)
	})
}

// DeleteBook removes a book. Unknown ids are ignored.
func (s *BookService) DeleteBook(ctx context.Context, id int) error {
	return s.withExistingBook(ctx, id, func(tx repositories.BookRepository, book *models.BookModel) error {
		return tx.Delete(ctx, book.Id)
	})
}

// AssignBook hands the book to person and stamps the borrow time.
// Unknown book ids are ignored; a nil person is ErrPersonNotFound.
func (s *BookService) AssignBook(ctx context.Context, id int, person *models.PersonModel) error {
	if person == nil {
		return ErrPersonNotFound
	}
	return s.withExistingBook(ctx, id, func(tx repositories.BookRepository, book *models.BookModel) error {
		now := s.now()
		personID := person.Id
		book.PersonId = &personID
		book.BorrowTimestamp = &now
		return tx.Save(ctx, book)
	})
}

// ReleaseBook clears owner and borrow time. Unknown ids are ignored.
func (s *BookService) ReleaseBook(ctx context.Context, id int) error {
	return s.withExistingBook(ctx, id, func(tx repositories.BookRepository, book *models.BookModel) error {
		book.PersonId = nil
		book.BorrowTimestamp = nil
		return tx.Save(ctx, book)
	})
}

// withExistingBook loads the book inside a transaction and runs fn on it.
// A missing book is not an error and fn is not called.
func (s *BookService) withExistingBook(ctx context.Context, id int, fn func(tx repositories.BookRepository, book *models.BookModel) error) error {
	var touched bool
	err := s.repo.WithinTransaction(ctx, func(tx repositories.BookRepository) error {
		book, err := tx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil
			}
			return err
		}
		touched = true
		return fn(tx, book)
	})
	if err != nil {
		return fmt.Errorf("book %d: %w", id, err)
	}

	if !touched {
		s.log.Debug("Book not found, write skipped", zap.Int("id", id))
	}
	return nil
}
