package dtos

import "github.com/anhimov/library/src/models"

type PersonForm struct {
	Name string `json:"name" form:"name" binding:"required,min=2,max=100"`
	Age  int    `json:"age" form:"age" binding:"min=0"`
}

func (f *PersonForm) ToModel() *models.PersonModel {
	return &models.PersonModel{Name: f.Name, Age: f.Age}
}

func PersonFormFrom(person *models.PersonModel) PersonForm {
	return PersonForm{Name: person.Name, Age: person.Age}
}
