package models

import "time"

// OverduePeriod is how long a book may stay borrowed before it counts as overdue.
const OverduePeriod = 10 * 24 * time.Hour

type BookModel struct {
	Id              int          `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string       `json:"title" gorm:"column:title;type:varchar(150);not null"`
	Author          string       `json:"author" gorm:"column:author;type:varchar(100);not null"`
	Year            int          `json:"year" gorm:"column:year"`
	PersonId        *int         `json:"personId" gorm:"column:person_id;index"`
	Owner           *PersonModel `json:"owner,omitempty" gorm:"foreignKey:PersonId;references:Id;constraint:OnDelete:SET NULL"`
	BorrowTimestamp *time.Time   `json:"borrowTimestamp" gorm:"column:borrow_timestamp"`
	IsOverdue       bool         `json:"isOverdue" gorm:"-"`
}

func (BookModel) TableName() string { return "book" }

// Borrowed reports whether the book is currently assigned to a person.
func (b *BookModel) Borrowed() bool {
	return b.PersonId != nil
}

// OverdueAt reports whether the book was borrowed more than OverduePeriod before now.
func (b *BookModel) OverdueAt(now time.Time) bool {
	if b.BorrowTimestamp == nil {
		return false
	}
	return b.BorrowTimestamp.Before(now.Add(-OverduePeriod))
}
