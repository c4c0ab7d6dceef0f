package models

// PersonModel is a library reader. The books a person holds are loaded on demand
// through the book repository rather than through an association.
type PersonModel struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"column:name;type:varchar(100);not null"`
	Age  int    `json:"age" gorm:"column:age"`
}

func (PersonModel) TableName() string { return "person" }
