package services

import (
	"context"

	"github.com/anhimov/library/src/models"
	"github.com/anhimov/library/src/repositories"
	"github.com/stretchr/testify/mock"
)

type mockBookRepository struct {
	mock.Mock
}

func (m *mockBookRepository) FindAll(ctx context.Context, sortByYear bool) ([]models.BookModel, error) {
	args := m.Called(ctx, sortByYear)
	books, _ := args.Get(0).([]models.BookModel)
	return books, args.Error(1)
}

func (m *mockBookRepository) FindPage(ctx context.Context, page, size int, sortByYear bool) ([]models.BookModel, int64, error) {
	args := m.Called(ctx, page, size, sortByYear)
	books, _ := args.Get(0).([]models.BookModel)
	return books, args.Get(1).(int64), args.Error(2)
}

func (m *mockBookRepository) FindByID(ctx context.Context, id int) (*models.BookModel, error) {
	args := m.Called(ctx, id)
	book, _ := args.Get(0).(*models.BookModel)
	return book, args.Error(1)
}

func (m *mockBookRepository) FindOwner(ctx context.Context, id int) (*models.PersonModel, error) {
	args := m.Called(ctx, id)
	person, _ := args.Get(0).(*models.PersonModel)
	return person, args.Error(1)
}

func (m *mockBookRepository) FindByTitleAndAuthor(ctx context.Context, title, author string) (*models.BookModel, error) {
	args := m.Called(ctx, title, author)
	book, _ := args.Get(0).(*models.BookModel)
	return book, args.Error(1)
}

func (m *mockBookRepository) SearchByTitle(ctx context.Context, query string) ([]models.BookModel, error) {
	args := m.Called(ctx, query)
	books, _ := args.Get(0).([]models.BookModel)
	return books, args.Error(1)
}

func (m *mockBookRepository) FindByOwner(ctx context.Context, personID int) ([]models.BookModel, error) {
	args := m.Called(ctx, personID)
	books, _ := args.Get(0).([]models.BookModel)
	return books, args.Error(1)
}

func (m *mockBookRepository) Create(ctx context.Context, book *models.BookModel) error {
	return m.Called(ctx, book).Error(0)
}

func (m *mockBookRepository) Save(ctx context.Context, book *models.BookModel) error {
	return m.Called(ctx, book).Error(0)
}

func (m *mockBookRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

// WithinTransaction runs fn against the mock itself so expectations cover
// calls made inside the transaction.
func (m *mockBookRepository) WithinTransaction(_ context.Context, fn func(repo repositories.BookRepository) error) error {
	return fn(m)
}

type mockPersonRepository struct {
	mock.Mock
}

func (m *mockPersonRepository) FindAll(ctx context.Context) ([]models.PersonModel, error) {
	args := m.Called(ctx)
	people, _ := args.Get(0).([]models.PersonModel)
	return people, args.Error(1)
}

func (m *mockPersonRepository) FindByID(ctx context.Context, id int) (*models.PersonModel, error) {
	args := m.Called(ctx, id)
	person, _ := args.Get(0).(*models.PersonModel)
	return person, args.Error(1)
}

func (m *mockPersonRepository) FindByName(ctx context.Context, name string) (*models.PersonModel, error) {
	args := m.Called(ctx, name)
	person, _ := args.Get(0).(*models.PersonModel)
	return person, args.Error(1)
}

func (m *mockPersonRepository) Create(ctx context.Context, person *models.PersonModel) error {
	return m.Called(ctx, person).Error(0)
}

func (m *mockPersonRepository) Save(ctx context.Context, person *models.PersonModel) error {
	return m.Called(ctx, person).Error(0)
}

func (m *mockPersonRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPersonRepository) ReleaseBooks(ctx context.Context, personID int) (int64, error) {
	args := m.Called(ctx, personID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPersonRepository) WithinTransaction(_ context.Context, fn func(repo repositories.PersonRepository) error) error {
	return fn(m)
}
