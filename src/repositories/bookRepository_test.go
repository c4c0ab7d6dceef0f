package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/anhimov/library/src/models"
	"github.com/anhimov/library/src/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBooks(t *testing.T, repo BookRepository, books ...models.BookModel) []models.BookModel {
	t.Helper()
	ctx := context.Background()
	for i := range books {
		require.NoError(t, repo.Create(ctx, &books[i]))
	}
	return books
}

func Test_BookRepository_CreateAndFindByID(t *testing.T) {
	repo := NewBookRepository(testutil.NewDB(t))
	ctx := context.Background()

	book := &models.BookModel{Title: "Effective Java", Author: "Joshua Bloch", Year: 2001}
	require.NoError(t, repo.Create(ctx, book))
	require.NotZero(t, book.Id)

	found, err := repo.FindByID(ctx, book.Id)
	require.NoError(t, err)
	assert.Equal(t, "Effective Java", found.Title)
	assert.Equal(t, "Joshua Bloch", found.Author)
	assert.Equal(t, 2001, found.Year)
	assert.Nil(t, found.PersonId)
	assert.Nil(t, found.BorrowTimestamp)

	_, err = repo.FindByID(ctx, book.Id+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_BookRepository_FindAll_SortsByYearWhenAsked(t *testing.T) {
	repo := NewBookRepository(testutil.NewDB(t))
	seedBooks(t, repo,
		models.BookModel{Title: "Dune", Author: "Frank Herbert", Year: 1965},
		models.BookModel{Title: "Emma", Author: "Jane Austen", Year: 1815},
		models.BookModel{Title: "Ulysses", Author: "James Joyce", Year: 1922},
	)

	unsorted, err := repo.FindAll(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "Emma", "Ulysses"}, titles(unsorted))

	sorted, err := repo.FindAll(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Emma", "Ulysses", "Dune"}, titles(sorted))
}

func Test_BookRepository_FindPage(t *testing.T) {
	repo := NewBookRepository(testutil.NewDB(t))
	for year := 2010; year > 2000; year-- {
		seedBooks(t, repo, models.BookModel{Title: fmt.Sprintf("Book %d", year), Author: "Anon", Year: year})
	}

	books, total, err := repo.FindPage(context.Background(), 1, 3, true)
	require.NoError(t, err)
	assert.EqualValues(t, 10, total)
	require.Len(t, books, 3)
	assert.Equal(t, []int{2004, 2005, 2006}, []int{books[0].Year, books[1].Year, books[2].Year})

	books, _, err = repo.FindPage(context.Background(), 3, 3, true)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func Test_BookRepository_SearchByTitle_IsCaseInsensitiveSubstring(t *testing.T) {
	repo := NewBookRepository(testutil.NewDB(t))
	seedBooks(t, repo,
		models.BookModel{Title: "Effective Java", Author: "Joshua Bloch", Year: 2001},
		models.BookModel{Title: "Java Concurrency in Practice", Author: "Brian Goetz", Year: 2006},
		models.BookModel{Title: "100% Go", Author: "Anon", Year: 2020},
	)

	books, err := repo.SearchByTitle(context.Background(), "effective")
	require.NoError(t, err)
	assert.Equal(t, []string{"Effective Java"}, titles(books))

	books, err = repo.SearchByTitle(context.Background(), "JAVA")
	require.NoError(t, err)
	assert.Len(t, books, 2)

	books, err = repo.SearchByTitle(context.Background(), "%")
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Go"}, titles(books))
}

func Test_BookRepository_SearchByTitle_FoldsNonASCIILetters(t *testing.T) {
	repo := NewBookRepository(testutil.NewDB(t))
	seedBooks(t, repo,
		models.BookModel{Title: "Война и мир", Author: "Лев Толстой", Year: 1869},
		models.BookModel{Title: "Éclair au chocolat", Author: "Anon", Year: 1999},
		models.BookModel{Title: "Master и Margarita", Author: "Mikhail Bulgakov", Year: 1967},
	)

	for _, query := range []string{"Война", "война", "ВОЙНА", "И МИР"} {
		books, err := repo.SearchByTitle(context.Background(), query)
		require.NoError(t, err)
		assert.Equal(t, []string{"Война и мир"}, titles(books), query)
	}

	books, err := repo.SearchByTitle(context.Background(), "éclair")
	require.NoError(t, err)
	assert.Equal(t, []string{"Éclair au chocolat"}, titles(books))

	books, err = repo.SearchByTitle(context.Background(), "R И m")
	require.NoError(t, err)
	assert.Equal(t, []string{"Master и Margarita"}, titles(books))
}

func Test_BookRepository_FindPage_PastTheEnd(t *testing.T) {
	repo := NewBookRepository(testutil.NewDB(t))
	for year := 2003; year > 2000; year-- {
		seedBooks(t, repo, models.BookModel{Title: fmt.Sprintf("Book %d", year), Author: "Anon", Year: year})
	}

	books, total, err := repo.FindPage(context.Background(), 5, 2, true)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Empty(t, books)
}

func Test_BookRepository_OwnerQueries(t *testing.T) {
	gdb := testutil.NewDB(t)
	books := NewBookRepository(gdb)
	people := NewPersonRepository(gdb)
	ctx := context.Background()

	reader := &models.PersonModel{Name: "Ivan Petrov", Age: 30}
	require.NoError(t, people.Create(ctx, reader))

	now := time.Now()
	seeded := seedBooks(t, books,
		models.BookModel{Title: "Borrowed", Author: "Someone", Year: 1999, PersonId: &reader.Id, BorrowTimestamp: &now},
		models.BookModel{Title: "On shelf", Author: "Someone", Year: 2000},
	)

	owner, err := books.FindOwner(ctx, seeded[0].Id)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, reader.Id, owner.Id)
	assert.Equal(t, "Ivan Petrov", owner.Name)

	owner, err = books.FindOwner(ctx, seeded[1].Id)
	require.NoError(t, err)
	assert.Nil(t, owner)

	held, err := books.FindByOwner(ctx, reader.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Borrowed"}, titles(held))
}

func Test_BookRepository_FindByTitleAndAuthor(t *testing.T) {
	repo := NewBookRepository(testutil.NewDB(t))
	seedBooks(t, repo, models.BookModel{Title: "Dune", Author: "Frank Herbert", Year: 1965})

	found, err := repo.FindByTitleAndAuthor(context.Background(), "Dune", "Frank Herbert")
	require.NoError(t, err)
	require.NotNil(t, found)

	found, err = repo.FindByTitleAndAuthor(context.Background(), "Dune", "Brian Herbert")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func Test_BookRepository_WithinTransaction_RollsBackOnError(t *testing.T) {
	repo := NewBookRepository(testutil.NewDB(t))
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.WithinTransaction(ctx, func(tx BookRepository) error {
		if err := tx.Create(ctx, &models.BookModel{Title: "Ghost", Author: "Nobody", Year: 1}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := repo.FindAll(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func Test_BookRepository_Delete(t *testing.T) {
	repo := NewBookRepository(testutil.NewDB(t))
	ctx := context.Background()
	seeded := seedBooks(t, repo, models.BookModel{Title: "Dune", Author: "Frank Herbert", Year: 1965})

	require.NoError(t, repo.Delete(ctx, seeded[0].Id))
	_, err := repo.FindByID(ctx, seeded[0].Id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func titles(books []models.BookModel) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}
