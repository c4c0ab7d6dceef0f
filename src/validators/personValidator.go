package validators

import (
	"context"

	"github.com/anhimov/library/src/dtos"
	"github.com/anhimov/library/src/models"
)

// PersonLookup finds a person by exact name; nil means nobody has it.
type PersonLookup interface {
	FindPersonByName(ctx context.Context, name string) (*models.PersonModel, error)
}

// PersonValidator checks field constraints and rejects names already registered.
type PersonValidator struct {
	people PersonLookup
}

func NewPersonValidator(people PersonLookup) *PersonValidator {
	return &PersonValidator{people: people}
}

func (v *PersonValidator) Validate(ctx context.Context, form *dtos.PersonForm) (FieldErrors, error) {
	errs := CheckStruct(form)
	if errs.Has("name") {
		return errs, nil
	}

	existing, err := v.people.FindPersonByName(ctx, form.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		errs.Reject("name", "duplicate", "A person with this name already exists")
	}
	return errs, nil
}
