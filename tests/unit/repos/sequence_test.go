package repos

import (
	"context"
	"testing"

	"rentdesk-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSequenceRepository_Next(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSequenceRepository(db)
	ctx := context.Background()

	t.Run("FirstValue", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO sequences").
			WithArgs("rental").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(1))

		value, err := repo.Next(ctx, "rental")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), value)
	})

	t.Run("Increments", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO sequences").
			WithArgs("bill").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(42))

		value, err := repo.Next(ctx, "bill")
		assert.NoError(t, err)
		assert.Equal(t, int64(42), value)
	})
}
