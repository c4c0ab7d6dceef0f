package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anhimov/library/src/models"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
)

// TokenTTL is how long an issued librarian token stays valid.
const TokenTTL = 12 * time.Hour

type LibrarianService struct {
	db     *gorm.DB
	secret []byte
	log    *zap.Logger
}

// NewLibrarianService creates a new instance of LibrarianService
func NewLibrarianService(db *gorm.DB, secret string, log *zap.Logger) *LibrarianService {
	return &LibrarianService{db: db, secret: []byte(secret), log: log}
}

// ListLibrarians retrieves all Librarian records from the database
func (s *LibrarianService) ListLibrarians(ctx context.Context) ([]models.LibrarianModel, error) {
	var librarians []models.LibrarianModel
	result := s.db.WithContext(ctx).Order("id ASC").Find(&librarians)
	if result.Error != nil {
		return nil, result.Error
	}
	return librarians, nil
}

// CreateLibrarian stores a new account with a bcrypt hash of its password
func (s *LibrarianService) CreateLibrarian(ctx context.Context, username, password string) (*models.LibrarianModel, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	librarian := &models.LibrarianModel{Username: username, Password: string(hashedPassword)}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.LibrarianModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}
		return tx.Create(librarian).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Librarian created", zap.Int("id", librarian.Id), zap.String("username", username))
	return librarian, nil
}

// DeleteLibrarian deletes a Librarian record by ID
func (s *LibrarianService) DeleteLibrarian(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&models.LibrarianModel{}, id).Error
}

// Authenticate checks credentials and returns a signed JWT if they are valid
func (s *LibrarianService) Authenticate(ctx context.Context, username, password string) (string, error) {
	var librarian models.LibrarianModel
	result := s.db.WithContext(ctx).Where("username = ?", username).First(&librarian)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", result.Error
	}

	if err := bcrypt.CompareHashAndPassword([]byte(librarian.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"id":  librarian.Id,
		"sub": librarian.Username,
		"exp": time.Now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}
