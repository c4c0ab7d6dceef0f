package dtos

import "github.com/anhimov/library/src/models"

// BookForm is the user-editable part of a book.
type BookForm struct {
	Title  string `json:"title" form:"title" binding:"required,min=2,max=150"`
	Author string `json:"author" form:"author" binding:"required,min=2,max=100"`
	Year   int    `json:"year" form:"year"`
}

func (f *BookForm) ToModel() *models.BookModel {
	return &models.BookModel{Title: f.Title, Author: f.Author, Year: f.Year}
}

func BookFormFrom(book *models.BookModel) BookForm {
	return BookForm{Title: book.Title, Author: book.Author, Year: book.Year}
}

// AssignForm names the person a book is handed to.
type AssignForm struct {
	PersonId int `json:"personId" form:"personId" binding:"required"`
}

// BookPage is the view-model of the book listing.
type BookPage struct {
	Books       []models.BookModel `json:"books"`
	CurrentPage int                `json:"currentPage"`
	PageSize    int                `json:"pageSize"`
	TotalPages  int                `json:"totalPages"`
	TotalItems  int64              `json:"totalItems"`
	SortByYear  bool               `json:"sortByYear"`
}

// HasPrevious and HasNext drive the pager links of the listing view.
func (p *BookPage) HasPrevious() bool { return p.CurrentPage > 0 }

func (p *BookPage) HasNext() bool { return p.CurrentPage+1 < p.TotalPages }
