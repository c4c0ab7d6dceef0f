package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/anhimov/library/src/dtos"
	"github.com/anhimov/library/src/validators"
	excelize "github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	catalogSheet     = "Books"
	borrowedAtLayout = "2006-01-02 15:04"
)

var catalogHeader = []interface{}{"Title", "Author", "Year", "Borrower", "Borrowed At"}

var (
	ErrNothingImported    = errors.New("no book could be imported")
	ErrDriveNotConfigured = errors.New("google drive import is not configured")
)

// DriveSource opens workbooks shared through a link.
type DriveSource interface {
	DownloadURL(ctx context.Context, url string) (io.ReadCloser, string, error)
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// CatalogService moves the catalog in and out of XLSX workbooks.
type CatalogService struct {
	books     *BookService
	people    *PersonService
	validator *validators.BookValidator
	drive     DriveSource
	log       *zap.Logger
}

func NewCatalogService(books *BookService, people *PersonService, log *zap.Logger) *CatalogService {
	return &CatalogService{
		books:     books,
		people:    people,
		validator: validators.NewBookValidator(books),
		log:       log,
	}
}

// WithDrive enables importing workbooks from share links.
func (s *CatalogService) WithDrive(drive DriveSource) *CatalogService {
	s.drive = drive
	return s
}

// ExportBooks writes every book, ordered by id, to w as an XLSX workbook.
func (s *CatalogService) ExportBooks(ctx context.Context, w io.Writer) error {
	page, err := s.books.ListBooks(ctx, nil, nil, false)
	if err != nil {
		return err
	}
	people, err := s.people.ListPeople(ctx)
	if err != nil {
		return err
	}
	names := make(map[int]string, len(people))
	for _, p := range people {
		names[p.Id] = p.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), catalogSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(catalogSheet, "A1", &catalogHeader); err != nil {
		return err
	}

	for i, book := range page.Books {
		borrower, borrowedAt := "", ""
		if book.PersonId != nil {
			borrower = names[*book.PersonId]
		}
		if book.BorrowTimestamp != nil {
			borrowedAt = book.BorrowTimestamp.Format(borrowedAtLayout)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{book.Title, book.Author, book.Year, borrower, borrowedAt}
		if err := f.SetSheetRow(catalogSheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ImportBooks creates one book per data row of the first sheet of r.
// Rows failing validation are reported in the result and skipped.
func (s *CatalogService) ImportBooks(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %s: %w", sheet, err)
	}

	result := &ImportResult{Imported: 0, Errors: []string{}}

	for i, row := range rows {
		rowNumber := i + 1
		if i == 0 || isBlankRow(row) {
			continue
		}

		form := dtos.BookForm{Title: cellAt(row, 0), Author: cellAt(row, 1)}
		if year := cellAt(row, 2); year != "" {
			parsed, err := strconv.Atoi(year)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: year %q is not a number", rowNumber, year))
				continue
			}
			form.Year = parsed
		}

		fieldErrs, err := s.validator.Validate(ctx, &form)
		if err != nil {
			return result, err
		}
		if fieldErrs.HasErrors() {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", rowNumber, fieldErrs.Error()))
			continue
		}

		if _, err := s.books.CreateBook(ctx, form.ToModel()); err != nil {
			if errors.Is(err, ErrDuplicateBook) {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNumber, err))
				continue
			}
			return result, err
		}
		result.Imported++
	}

	s.log.Info("Catalog imported", zap.Int("imported", result.Imported), zap.Int("rejected", len(result.Errors)))

	if result.Imported == 0 && len(result.Errors) > 0 {
		return result, ErrNothingImported
	}
	return result, nil
}

// ImportBooksFromDrive downloads the workbook behind url and imports it.
func (s *CatalogService) ImportBooksFromDrive(ctx context.Context, url string) (*ImportResult, error) {
	if s.drive == nil {
		return nil, ErrDriveNotConfigured
	}
	body, name, err := s.drive.DownloadURL(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	s.log.Info("Importing catalog from Google Drive", zap.String("file", name))
	return s.ImportBooks(ctx, body)
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
