package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schema "ticketscan/db"
	"ticketscan/internal/config"
	"ticketscan/internal/domain"
	"ticketscan/internal/repository/sqlstore"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlstore.NewDB(&config.DBConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	up, err := schema.Migrations.ReadFile("migrations/000001_create_licenses.up.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(up))
	require.NoError(t, err)
	return db
}

func license(code string, created time.Time, days int) domain.License {
	return domain.License{Code: code, DurationDays: days, CreatedAt: created}
}

func TestLicenseRepo_CreateAndGet(t *testing.T) {
	repo := sqlstore.NewLicenseRepo(newTestDB(t))
	ctx := context.Background()
	created := time.Date(2024, 4, 25, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateBatch(ctx, []domain.License{
		license("AB12CD34", created, 30),
		license("EF56AB78", created, 365),
	}))

	got, err := repo.GetByCode(ctx, "AB12CD34")
	require.NoError(t, err)
	assert.Equal(t, "AB12CD34", got.Code)
	assert.Equal(t, 30, got.DurationDays)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Nil(t, got.UsedAt)
	assert.Nil(t, got.DeviceID)
}

func TestLicenseRepo_GetByCode_NotFound(t *testing.T) {
	repo := sqlstore.NewLicenseRepo(newTestDB(t))

	_, err := repo.GetByCode(context.Background(), "MISSING0")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLicenseRepo_CreateBatch_DuplicateRollsBack(t *testing.T) {
	repo := sqlstore.NewLicenseRepo(newTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.CreateBatch(ctx, []domain.License{license("DUP00001", now, 30)}))

	err := repo.CreateBatch(ctx, []domain.License{
		license("NEW00001", now, 30),
		license("DUP00001", now, 30),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateLicenseCode)

	_, err = repo.GetByCode(ctx, "NEW00001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLicenseRepo_List(t *testing.T) {
	repo := sqlstore.NewLicenseRepo(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateBatch(ctx, []domain.License{
		license("OLDEST01", base, 30),
		license("MIDDLE01", base.Add(time.Hour), 30),
		license("NEWEST01", base.Add(2*time.Hour), 30),
	}))

	page, total, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "NEWEST01", page[0].Code)
	assert.Equal(t, "MIDDLE01", page[1].Code)

	page, _, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "OLDEST01", page[0].Code)
}

func TestLicenseRepo_BindDevice(t *testing.T) {
	repo := sqlstore.NewLicenseRepo(newTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.CreateBatch(ctx, []domain.License{license("BIND0001", now, 30)}))

	require.NoError(t, repo.BindDevice(ctx, "BIND0001", "device-a", now))
	got, err := repo.GetByCode(ctx, "BIND0001")
	require.NoError(t, err)
	require.NotNil(t, got.DeviceID)
	assert.Equal(t, "device-a", *got.DeviceID)
	require.NotNil(t, got.UsedAt)
	assert.True(t, now.Equal(*got.UsedAt))

	// Same device again keeps the first activation time.
	require.NoError(t, repo.BindDevice(ctx, "BIND0001", "device-a", now.Add(time.Hour)))
	got, err = repo.GetByCode(ctx, "BIND0001")
	require.NoError(t, err)
	assert.True(t, now.Equal(*got.UsedAt))

	err = repo.BindDevice(ctx, "BIND0001", "device-b", now)
	assert.ErrorIs(t, err, domain.ErrLicenseBound)

	err = repo.BindDevice(ctx, "NOPE0001", "device-a", now)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
