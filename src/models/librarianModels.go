package models

type LibrarianModel struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"column:username;type:varchar(255);not null;uniqueIndex"`
	Password string `json:"-" gorm:"type:varchar(100);not null"`
}

func (LibrarianModel) TableName() string { return "librarian" }

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type RegisterResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// All returns every model managed by migrations.
func All() []interface{} {
	return []interface{}{&PersonModel{}, &BookModel{}, &LibrarianModel{}}
}
