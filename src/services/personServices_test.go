package services

import (
	"context"
	"testing"
	"time"

	"github.com/anhimov/library/src/models"
	"github.com/anhimov/library/src/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPersonService(people *mockPersonRepository, books *mockBookRepository) *PersonService {
	return NewPersonService(people, books, zap.NewNop()).WithClock(func() time.Time { return fixedNow })
}

func Test_GetBooksOwnedBy_ComputesOverdueFlag(t *testing.T) {
	people := new(mockPersonRepository)
	books := new(mockBookRepository)
	exactlyTen := fixedNow.Add(-models.OverduePeriod)
	eleven := fixedNow.Add(-11 * 24 * time.Hour)
	yesterday := fixedNow.Add(-24 * time.Hour)

	people.On("FindByID", mock.Anything, 1).Return(&models.PersonModel{Id: 1}, nil)
	books.On("FindByOwner", mock.Anything, 1).Return([]models.BookModel{
		{Id: 1, PersonId: intPtr(1), BorrowTimestamp: &eleven},
		{Id: 2, PersonId: intPtr(1), BorrowTimestamp: &exactlyTen},
		{Id: 3, PersonId: intPtr(1), BorrowTimestamp: &yesterday},
		{Id: 4, PersonId: intPtr(1)},
	}, nil)

	owned, err := newPersonService(people, books).GetBooksOwnedBy(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, owned, 4)
	assert.True(t, owned[0].IsOverdue)
	assert.False(t, owned[1].IsOverdue)
	assert.False(t, owned[2].IsOverdue)
	assert.False(t, owned[3].IsOverdue)
}

func Test_GetBooksOwnedBy_UnknownPersonHoldsNothing(t *testing.T) {
	people := new(mockPersonRepository)
	books := new(mockBookRepository)
	people.On("FindByID", mock.Anything, 5).Return(nil, repositories.ErrNotFound)

	owned, err := newPersonService(people, books).GetBooksOwnedBy(context.Background(), 5)

	require.NoError(t, err)
	assert.NotNil(t, owned)
	assert.Empty(t, owned)
	books.AssertNotCalled(t, "FindByOwner", mock.Anything, mock.Anything)
}

func Test_GetPersonByID(t *testing.T) {
	people := new(mockPersonRepository)
	people.On("FindByID", mock.Anything, 1).Return(&models.PersonModel{Id: 1, Name: "John Doe", Age: 30}, nil)
	people.On("FindByID", mock.Anything, 2).Return(nil, repositories.ErrNotFound)
	svc := newPersonService(people, new(mockBookRepository))

	person, err := svc.GetPersonByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", person.Name)

	_, err = svc.GetPersonByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrPersonNotFound)
}

func Test_UpdatePerson(t *testing.T) {
	people := new(mockPersonRepository)
	existing := &models.PersonModel{Id: 1, Name: "Old Name", Age: 30}
	people.On("FindByID", mock.Anything, 1).Return(existing, nil)
	people.On("Save", mock.Anything, existing).Return(nil)

	err := newPersonService(people, new(mockBookRepository)).UpdatePerson(context.Background(), 1, &models.PersonModel{Name: "New Name", Age: 35})

	require.NoError(t, err)
	assert.Equal(t, "New Name", existing.Name)
	assert.Equal(t, 35, existing.Age)
	people.AssertExpectations(t)
}

func Test_PersonWritesOnMissingId_AreSilentNoOps(t *testing.T) {
	people := new(mockPersonRepository)
	people.On("FindByID", mock.Anything, 9).Return(nil, repositories.ErrNotFound)
	svc := newPersonService(people, new(mockBookRepository))

	require.NoError(t, svc.UpdatePerson(context.Background(), 9, &models.PersonModel{Name: "Nobody"}))
	require.NoError(t, svc.DeletePerson(context.Background(), 9))

	people.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	people.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	people.AssertNotCalled(t, "ReleaseBooks", mock.Anything, mock.Anything)
}

func Test_DeletePerson_ReleasesBooksFirst(t *testing.T) {
	people := new(mockPersonRepository)
	people.On("FindByID", mock.Anything, 3).Return(&models.PersonModel{Id: 3}, nil)
	released := people.On("ReleaseBooks", mock.Anything, 3).Return(int64(2), nil)
	people.On("Delete", mock.Anything, 3).Return(nil).NotBefore(released)

	err := newPersonService(people, new(mockBookRepository)).DeletePerson(context.Background(), 3)

	require.NoError(t, err)
	people.AssertExpectations(t)
}

func Test_CreatePerson_And_FindByName(t *testing.T) {
	people := new(mockPersonRepository)
	people.On("Create", mock.Anything, mock.AnythingOfType("*models.PersonModel")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.PersonModel).Id = 11 }).
		Return(nil)
	people.On("FindByName", mock.Anything, "John Doe").Return(&models.PersonModel{Id: 11, Name: "John Doe"}, nil)
	svc := newPersonService(people, new(mockBookRepository))

	created, err := svc.CreatePerson(context.Background(), &models.PersonModel{Name: "John Doe", Age: 30})
	require.NoError(t, err)
	assert.Equal(t, 11, created.Id)

	found, err := svc.FindPersonByName(context.Background(), "John Doe")
	require.NoError(t, err)
	assert.Equal(t, 11, found.Id)
}
