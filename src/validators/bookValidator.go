package validators

import (
	"context"

	"github.com/anhimov/library/src/dtos"
	"github.com/anhimov/library/src/models"
)

// BookLookup finds a book by its natural key; nil means no such book.
type BookLookup interface {
	FindBookByTitleAndAuthor(ctx context.Context, title, author string) (*models.BookModel, error)
}

// BookValidator checks field constraints and rejects books whose title and
// author are already catalogued.
type BookValidator struct {
	books BookLookup
}

func NewBookValidator(books BookLookup) *BookValidator {
	return &BookValidator{books: books}
}

func (v *BookValidator) Validate(ctx context.Context, form *dtos.BookForm) (FieldErrors, error) {
	errs := CheckStruct(form)
	existing, err := v.books.FindBookByTitleAndAuthor(ctx, form.Title, form.Author)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		RejectDuplicateBook(&errs)
	}
	return errs, nil
}

// RejectDuplicateBook marks both halves of the natural key as taken.
func RejectDuplicateBook(errs *FieldErrors) {
	errs.Reject("title", "duplicate", "Duplicate Book")
	errs.Reject("author", "duplicate", "Duplicate Book")
}
