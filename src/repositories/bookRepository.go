package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/anhimov/library/src/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a row looked up by id does not exist.
var ErrNotFound = errors.New("record not found")

// BookRepository is the persistence boundary for books.
type BookRepository interface {
	FindAll(ctx context.Context, sortByYear bool) ([]models.BookModel, error)
	FindPage(ctx context.Context, page, size int, sortByYear bool) ([]models.BookModel, int64, error)
	FindByID(ctx context.Context, id int) (*models.BookModel, error)
	// FindOwner returns nil when the book is absent or not borrowed.
	FindOwner(ctx context.Context, id int) (*models.PersonModel, error)
	// FindByTitleAndAuthor returns nil when no book matches.
	FindByTitleAndAuthor(ctx context.Context, title, author string) (*models.BookModel, error)
	SearchByTitle(ctx context.Context, query string) ([]models.BookModel, error)
	FindByOwner(ctx context.Context, personID int) ([]models.BookModel, error)
	Create(ctx context.Context, book *models.BookModel) error
	Save(ctx context.Context, book *models.BookModel) error
	Delete(ctx context.Context, id int) error
	// WithinTransaction runs fn against a repository bound to a single transaction.
	WithinTransaction(ctx context.Context, fn func(repo BookRepository) error) error
}

type gormBookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a gorm backed BookRepository.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &gormBookRepository{db: db}
}

func bookOrder(sortByYear bool) string {
	if sortByYear {
		return "year ASC, id ASC"
	}
	return "id ASC"
}

func (r *gormBookRepository) FindAll(ctx context.Context, sortByYear bool) ([]models.BookModel, error) {
	var books []models.BookModel
	result := r.db.WithContext(ctx).Order(bookOrder(sortByYear)).Find(&books)
	return books, result.Error
}

func (r *gormBookRepository) FindPage(ctx context.Context, page, size int, sortByYear bool) ([]models.BookModel, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.BookModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []models.BookModel
	result := r.db.WithContext(ctx).
		Order(bookOrder(sortByYear)).
		Offset(page * size).
		Limit(size).
		Find(&books)

	return books, total, result.Error
}

func (r *gormBookRepository) FindByID(ctx context.Context, id int) (*models.BookModel, error) {
	var book models.BookModel
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *gormBookRepository) FindOwner(ctx context.Context, id int) (*models.PersonModel, error) {
	var person models.PersonModel
	err := r.db.WithContext(ctx).
		Select("person.*").
		Joins("JOIN book ON book.person_id = person.id").
		Where("book.id = ?", id).
		Take(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

func (r *gormBookRepository) FindByTitleAndAuthor(ctx context.Context, title, author string) (*models.BookModel, error) {
	var book models.BookModel
	err := r.db.WithContext(ctx).
		Where("title = ? AND author = ?", title, author).
		Take(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchByTitle folds title and query through LOWER on the database side, so
// both go through the same case mapping. On sqlite that needs the Unicode
// LOWER installed by db.SQLiteDialector.
func (r *gormBookRepository) SearchByTitle(ctx context.Context, query string) ([]models.BookModel, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"

	var books []models.BookModel
	result := r.db.WithContext(ctx).
		Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, pattern).
		Order("id ASC").
		Find(&books)
	return books, result.Error
}

func (r *gormBookRepository) FindByOwner(ctx context.Context, personID int) ([]models.BookModel, error) {
	var books []models.BookModel
	result := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("id ASC").
		Find(&books)
	return books, result.Error
}

func (r *gormBookRepository) Create(ctx context.Context, book *models.BookModel) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(book).Error
}

func (r *gormBookRepository) Save(ctx context.Context, book *models.BookModel) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(book).Error
}

func (r *gormBookRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&models.BookModel{}, id).Error
}

func (r *gormBookRepository) WithinTransaction(ctx context.Context, fn func(repo BookRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormBookRepository{db: tx})
	})
}
