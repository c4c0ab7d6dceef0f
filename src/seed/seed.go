package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anhimov/library/src/config"
	"github.com/anhimov/library/src/models"
	"github.com/anhimov/library/src/repositories"
	"github.com/anhimov/library/src/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var samplePeople = []models.PersonModel{
	{Name: "Ivan Petrov", Age: 34},
	{Name: "Anna Smirnova", Age: 27},
	{Name: "Oleg Sidorov", Age: 61},
}

var sampleBooks = []models.BookModel{
	{Title: "War and Peace", Author: "Leo Tolstoy", Year: 1869},
	{Title: "Crime and Punishment", Author: "Fyodor Dostoevsky", Year: 1866},
	{Title: "The Master and Margarita", Author: "Mikhail Bulgakov", Year: 1967},
	{Title: "Dead Souls", Author: "Nikolai Gogol", Year: 1842},
	{Title: "Eugene Onegin", Author: "Alexander Pushkin", Year: 1833},
	{Title: "Fathers and Sons", Author: "Ivan Turgenev", Year: 1862},
}

// Seed creates the default librarian and, on an empty catalog, a few people
// and books with one overdue loan. Running it again changes nothing.
func Seed(ctx context.Context, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	// Librarians
	librarians := services.NewLibrarianService(db, cfg.JWTSecret, log)
	_, err := librarians.CreateLibrarian(ctx, cfg.SeedLibrarianUsername, cfg.SeedLibrarianPassword)
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		log.Info("Librarian already exists", zap.String("username", cfg.SeedLibrarianUsername))
	case err != nil:
		return fmt.Errorf("seed librarian: %w", err)
	}

	// Catalog
	var count int64
	if err := db.WithContext(ctx).Model(&models.BookModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	if count > 0 {
		log.Info("Catalog already has books, skipping", zap.Int64("books", count))
		return nil
	}

	bookRepository := repositories.NewBookRepository(db)
	books := services.NewBookService(bookRepository, log)
	people := services.NewPersonService(repositories.NewPersonRepository(db), bookRepository, log)

	var created []*models.PersonModel
	for _, p := range samplePeople {
		person := p
		existing, err := people.FindPersonByName(ctx, person.Name)
		if err != nil {
			return fmt.Errorf("seed person %q: %w", person.Name, err)
		}
		if existing == nil {
			if existing, err = people.CreatePerson(ctx, &person); err != nil {
				return fmt.Errorf("seed person %q: %w", person.Name, err)
			}
		}
		created = append(created, existing)
	}

	for i, b := range sampleBooks {
		book := b
		saved, err := books.CreateBook(ctx, &book)
		if err != nil {
			return fmt.Errorf("seed book %q: %w", book.Title, err)
		}
		// The first two books go out on loan, the first one long enough ago to be overdue
		if i < 2 {
			borrowedAt := time.Now().AddDate(0, 0, -3)
			if i == 0 {
				borrowedAt = time.Now().Add(-models.OverduePeriod - 24*time.Hour)
			}
			lend := books.WithClock(func() time.Time { return borrowedAt })
			if err := lend.AssignBook(ctx, saved.Id, created[i]); err != nil {
				return fmt.Errorf("seed loan %q: %w", book.Title, err)
			}
		}
	}

	log.Info("Sample catalog created", zap.Int("people", len(created)), zap.Int("books", len(sampleBooks)))
	return nil
}
