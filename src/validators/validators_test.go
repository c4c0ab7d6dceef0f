package validators

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/anhimov/library/src/dtos"
	"github.com/anhimov/library/src/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBooks map[string]*models.BookModel

func (f fakeBooks) FindBookByTitleAndAuthor(_ context.Context, title, author string) (*models.BookModel, error) {
	return f[title+"|"+author], nil
}

type fakePeople struct {
	byName map[string]*models.PersonModel
	err    error
}

func (f fakePeople) FindPersonByName(_ context.Context, name string) (*models.PersonModel, error) {
	return f.byName[name], f.err
}

func Test_BookValidator_RejectsDuplicateTitleAndAuthor(t *testing.T) {
	v := NewBookValidator(fakeBooks{"Dune|Frank Herbert": {Id: 1, Title: "Dune", Author: "Frank Herbert"}})

	errs, err := v.Validate(context.Background(), &dtos.BookForm{Title: "Dune", Author: "Frank Herbert", Year: 1965})

	require.NoError(t, err)
	assert.True(t, errs.Has("title"))
	assert.True(t, errs.Has("author"))
	assert.Equal(t, []string{"Duplicate Book"}, errs.Messages("title"))
	assert.Equal(t, "duplicate", errs[0].Code)
}

func Test_BookValidator_AcceptsSameTitleByAnotherAuthor(t *testing.T) {
	v := NewBookValidator(fakeBooks{"Dune|Frank Herbert": {Id: 1}})

	errs, err := v.Validate(context.Background(), &dtos.BookForm{Title: "Dune", Author: "Brian Herbert", Year: 1999})

	require.NoError(t, err)
	assert.False(t, errs.HasErrors())
}

func Test_BookValidator_FieldConstraints(t *testing.T) {
	v := NewBookValidator(fakeBooks{})

	cases := []struct {
		name   string
		form   dtos.BookForm
		fields []string
	}{
		{"empty title", dtos.BookForm{Title: "", Author: "Anon"}, []string{"title"}},
		{"one letter author", dtos.BookForm{Title: "Go", Author: "A"}, []string{"author"}},
		{"long title", dtos.BookForm{Title: strings.Repeat("x", 151), Author: "Anon"}, []string{"title"}},
		{"long author", dtos.BookForm{Title: "Go", Author: strings.Repeat("y", 101)}, []string{"author"}},
		{"both missing", dtos.BookForm{}, []string{"title", "author"}},
		{"bounds", dtos.BookForm{Title: strings.Repeat("x", 150), Author: "Ab"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs, err := v.Validate(context.Background(), &tc.form)
			require.NoError(t, err)
			assert.Len(t, errs, len(tc.fields))
			for _, field := range tc.fields {
				assert.True(t, errs.Has(field), field)
			}
		})
	}
}

func Test_PersonValidator(t *testing.T) {
	v := NewPersonValidator(fakePeople{byName: map[string]*models.PersonModel{"Taken Name": {Id: 7}}})

	cases := []struct {
		form dtos.PersonForm
		want []string
	}{
		{dtos.PersonForm{Name: "Free Name", Age: 30}, nil},
		{dtos.PersonForm{Name: "", Age: 30}, []string{"name"}},
		{dtos.PersonForm{Name: "X", Age: 30}, []string{"name"}},
		{dtos.PersonForm{Name: "Free Name", Age: -1}, []string{"age"}},
		{dtos.PersonForm{Name: "", Age: -1}, []string{"name", "age"}},
		{dtos.PersonForm{Name: "Taken Name", Age: 30}, []string{"name"}},
	}

	for i, tc := range cases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			errs, err := v.Validate(context.Background(), &tc.form)
			require.NoError(t, err)
			assert.Len(t, errs, len(tc.want))
			for _, field := range tc.want {
				assert.True(t, errs.Has(field), field)
			}
		})
	}
}

func Test_PersonValidator_PropagatesLookupFailure(t *testing.T) {
	boom := errors.New("db down")
	v := NewPersonValidator(fakePeople{err: boom})

	_, err := v.Validate(context.Background(), &dtos.PersonForm{Name: "Someone", Age: 1})

	assert.ErrorIs(t, err, boom)
}

func Test_BindFailure_IgnoresConstraintViolations(t *testing.T) {
	violation := CheckStruct(&dtos.BookForm{})
	require.True(t, violation.HasErrors())

	constraintErr := bindingErrorFor(&dtos.BookForm{})
	assert.Nil(t, BindFailure(constraintErr))
	assert.Nil(t, BindFailure(nil))

	parseErr := errors.New(`strconv.ParseInt: parsing "abc": invalid syntax`)
	failure := BindFailure(parseErr)
	require.Len(t, failure, 1)
	assert.Equal(t, "typeMismatch", failure[0].Code)
}

func bindingErrorFor(obj interface{}) error {
	return binding.Validator.ValidateStruct(obj)
}
