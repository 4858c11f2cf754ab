package assignments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestExists(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`^SELECT EXISTS \(SELECT 1 FROM plant_pot_assignments WHERE pot_id = \$1\)$`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`^SELECT EXISTS \(SELECT 1 FROM plant_pot_assignments WHERE plant_id = \$1\)$`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`WHERE plant_id = \$1`).
		WithArgs(int64(6)).
		WillReturnError(errors.New("boom"))

	found, err := repo.ExistsForPot(context.Background(), 11)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.ExistsForPlant(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = repo.ExistsForPlant(context.Background(), 6)
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	q := `(?s)^INSERT\s+INTO\s+plant_pot_assignments\s*\(plant_id,\s*pot_id\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+created_at\s*$`

	t.Run("inserted", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(int64(5), int64(11)).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		a, err := repo.Create(context.Background(), 5, 11)
		require.NoError(t, err)
		assert.Equal(t, int64(5), a.PlantID)
		assert.Equal(t, int64(11), a.PotID)
	})

	t.Run("unique violation", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(int64(5), int64(11)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "plant_pot_assignments_pot_id_key"})

		_, err := repo.Create(context.Background(), 5, 11)
		assert.ErrorIs(t, err, common.ErrorAlreadyExists)
		assert.Contains(t, err.Error(), "plant_pot_assignments_pot_id_key")
	})

	t.Run("other error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(int64(5), int64(11)).WillReturnError(errors.New("boom"))

		_, err := repo.Create(context.Background(), 5, 11)
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrorAlreadyExists)
	})
}

func TestDeleteOwned(t *testing.T) {
	q := `(?s)^DELETE\s+FROM\s+plant_pot_assignments\s+a\s+USING\s+pots\s+p\s+WHERE\s+a\.pot_id\s*=\s*p\.id\s+AND\s+a\.plant_id\s*=\s*\$1\s+AND\s+a\.pot_id\s*=\s*\$2\s+AND\s+p\.owner_id\s*=\s*\$3\s*$`

	t.Run("removed", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs(int64(5), int64(11), int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))

		n, err := repo.DeleteOwned(context.Background(), 5, 11, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("nothing to remove", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs(int64(5), int64(11), int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))

		n, err := repo.DeleteOwned(context.Background(), 5, 11, 3)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs(int64(5), int64(11), int64(3)).WillReturnError(errors.New("boom"))

		_, err := repo.DeleteOwned(context.Background(), 5, 11, 3)
		require.Error(t, err)
	})
}
