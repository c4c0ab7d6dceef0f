package services

import (
	"context"
	"errors"
	"time"

	"github.com/anhimov/library/src/models"
	"github.com/anhimov/library/src/repositories"
	"go.uber.org/zap"
)

var ErrPersonNotFound = errors.New("person not found")

type PersonService struct {
	repo  repositories.PersonRepository
	books repositories.BookRepository
	log   *zap.Logger
	now   Clock
}

// NewPersonService creates a new instance of PersonService
func NewPersonService(repo repositories.PersonRepository, books repositories.BookRepository, log *zap.Logger) *PersonService {
	return &PersonService{repo: repo, books: books, log: log, now: time.Now}
}

// WithClock replaces the time source used for overdue checks.
func (s *PersonService) WithClock(now Clock) *PersonService {
	s.now = now
	return s
}

// ListPeople retrieves all Person records
func (s *PersonService) ListPeople(ctx context.Context) ([]models.PersonModel, error) {
	return s.repo.FindAll(ctx)
}

// GetPersonByID retrieves a Person by ID
func (s *PersonService) GetPersonByID(ctx context.Context, id int) (*models.PersonModel, error) {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return person, nil
}

// GetBooksOwnedBy returns the books the person holds with IsOverdue filled in.
// An unknown person holds no books.
func (s *PersonService) GetBooksOwnedBy(ctx context.Context, id int) ([]models.BookModel, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return []models.BookModel{}, nil
		}
		return nil, err
	}

	books, err := s.books.FindByOwner(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range books {
		books[i].IsOverdue = books[i].OverdueAt(now)
	}
	return books, nil
}

// FindPersonByName returns nil when nobody has exactly that name.
func (s *PersonService) FindPersonByName(ctx context.Context, name string) (*models.PersonModel, error) {
	return s.repo.FindByName(ctx, name)
}

// CreatePerson creates a new Person record
func (s *PersonService) CreatePerson(ctx context.Context, person *models.PersonModel) (*models.PersonModel, error) {
	person.Id = 0
	err := s.repo.WithinTransaction(ctx, func(tx repositories.PersonRepository) error {
		return tx.Create(ctx, person)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Person created", zap.Int("id", person.Id))
	return person, nil
}

// UpdatePerson overwrites name and age. Unknown ids are ignored.
func (s *PersonService) UpdatePerson(ctx context.Context, id int, updated *models.PersonModel) error {
	return s.repo.WithinTransaction(ctx, func(tx repositories.PersonRepository) error {
		person, err := tx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil
			}
			return err
		}
		person.Name = updated.Name
		person.Age = updated.Age
		return tx.Save(ctx, person)
	})
}

// DeletePerson releases every book the person holds and deletes them.
// Unknown ids are ignored.
func (s *PersonService) DeletePerson(ctx context.Context, id int) error {
	return s.repo.WithinTransaction(ctx, func(tx repositories.PersonRepository) error {
		if _, err := tx.FindByID(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil
			}
			return err
		}

		released, err := tx.ReleaseBooks(ctx, id)
		if err != nil {
			return err
		}
		if released > 0 {
			s.log.Info("Released books of deleted person", zap.Int("personId", id), zap.Int64("books", released))
		}
		return tx.Delete(ctx, id)
	})
}
