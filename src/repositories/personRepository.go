package repositories

import (
	"context"
	"errors"

	"github.com/anhimov/library/src/models"
	"gorm.io/gorm"
)

// PersonRepository is the persistence boundary for people.
type PersonRepository interface {
	FindAll(ctx context.Context) ([]models.PersonModel, error)
	FindByID(ctx context.Context, id int) (*models.PersonModel, error)
	// FindByName returns nil when nobody has exactly that name.
	FindByName(ctx context.Context, name string) (*models.PersonModel, error)
	Create(ctx context.Context, person *models.PersonModel) error
	Save(ctx context.Context, person *models.PersonModel) error
	Delete(ctx context.Context, id int) error
	// ReleaseBooks clears owner and borrow timestamp of every book the person holds.
	ReleaseBooks(ctx context.Context, personID int) (int64, error)
	WithinTransaction(ctx context.Context, fn func(repo PersonRepository) error) error
}

type gormPersonRepository struct {
	db *gorm.DB
}

// NewPersonRepository creates a gorm backed PersonRepository.
func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &gormPersonRepository{db: db}
}

func (r *gormPersonRepository) FindAll(ctx context.Context) ([]models.PersonModel, error) {
	var people []models.PersonModel
	result := r.db.WithContext(ctx).Order("id ASC").Find(&people)
	return people, result.Error
}

func (r *gormPersonRepository) FindByID(ctx context.Context, id int) (*models.PersonModel, error) {
	var person models.PersonModel
	if err := r.db.WithContext(ctx).First(&person, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &person, nil
}

func (r *gormPersonRepository) FindByName(ctx context.Context, name string) (*models.PersonModel, error) {
	var person models.PersonModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).Take(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

func (r *gormPersonRepository) Create(ctx context.Context, person *models.PersonModel) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *gormPersonRepository) Save(ctx context.Context, person *models.PersonModel) error {
	return r.db.WithContext(ctx).Save(person).Error
}

func (r *gormPersonRepository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&models.PersonModel{}, id).Error
}

func (r *gormPersonRepository) ReleaseBooks(ctx context.Context, personID int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.BookModel{}).
		Where("person_id = ?", personID).
		Updates(map[string]interface{}{"person_id": nil, "borrow_timestamp": nil})
	return result.RowsAffected, result.Error
}

func (r *gormPersonRepository) WithinTransaction(ctx context.Context, fn func(repo PersonRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormPersonRepository{db: tx})
	})
}
