package mysql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"tailorshop/pkg/store/mysql/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepository(t *testing.T) (*WorkerRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewWorkerRepository(NewDatastoreWithDB(gdb)), mock
}

var workerColumns = []string{
	"id", "worker_id", "name", "email", "contact_number", "work_type", "specialization",
	"experience", "join_date", "status", "assigned_orders", "completed_orders", "ratings",
	"performance", "garment_rates", "avatar", "created_at", "updated_at",
}

func TestWorkerRepository_List(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	rows := sqlmock.NewRows(workerColumns).
		AddRow(1, "W-1", "Mike", "", "5550101", "stitching", "", 4, "2023-01-05", "active", 2, 10, 4.5, 90,
			[]byte(`[{"garmentType":"shirt","rate":50}]`), "", now, now).
		AddRow(2, "W-2", "Ngozi", "", "5550102", "cutting", "", 1, "", "on-leave", 0, 0, 0, 0, nil, "", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `workers` ORDER BY id ASC")).WillReturnRows(rows)

	workers, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, workers, 2)

	assert.Equal(t, "W-1", workers[0].WorkerID)
	assert.Equal(t, model.JSONGarmentRates{{GarmentType: "shirt", Rate: 50}}, workers[0].GarmentRates)
	assert.Nil(t, workers[1].GarmentRates)
	assert.Equal(t, "on-leave", workers[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerRepository_ListError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("SELECT \\* FROM `workers`").WillReturnError(errors.New("connection refused"))

	_, err := repo.List(context.Background())
	assert.ErrorContains(t, err, "failed to list workers")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerRepository_Create(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec("INSERT INTO `workers`").WillReturnResult(sqlmock.NewResult(7, 1))

	w := &model.Worker{
		Name:          "Tunde",
		ContactNumber: "5550103",
		WorkType:      "embroidery",
		GarmentRates:  model.JSONGarmentRates{{GarmentType: "agbada", Rate: 120}},
	}
	require.NoError(t, repo.Create(context.Background(), w))

	assert.Regexp(t, `^W-[0-9A-F]{8}$`, w.WorkerID)
	assert.Equal(t, int64(7), w.ID)
	assert.Equal(t, "active", w.Status)
	assert.False(t, w.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerRepository_CreateKeepsExplicitID(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec("INSERT INTO `workers`").WillReturnResult(sqlmock.NewResult(1, 1))

	w := &model.Worker{WorkerID: "W-SEED0001", Name: "Seed", ContactNumber: "5550000", WorkType: "cutting"}
	require.NoError(t, repo.Create(context.Background(), w))
	assert.Equal(t, "W-SEED0001", w.WorkerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerRepository_CreateError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec("INSERT INTO `workers`").WillReturnError(errors.New("Duplicate entry"))

	err := repo.Create(context.Background(), &model.Worker{Name: "Dup"})
	assert.ErrorContains(t, err, "failed to create worker")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerRepository_Get(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery("SELECT \\* FROM `workers` WHERE worker_id = \\?").
		WithArgs("W-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(workerColumns).
			AddRow(1, "W-1", "Mike", "", "5550101", "stitching", "", 4, "", "active", 0, 0, 0, 0, "[]", "", now, now))

	w, err := repo.Get(context.Background(), "W-1")
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "Mike", w.Name)
	assert.Empty(t, w.GarmentRates)

	mock.ExpectQuery("SELECT \\* FROM `workers` WHERE worker_id = \\?").
		WithArgs("W-404", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(workerColumns))

	w, err = repo.Get(context.Background(), "W-404")
	assert.NoError(t, err)
	assert.Nil(t, w)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerRepository_SearchByName(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery("SELECT \\* FROM `workers` WHERE name LIKE \\? ORDER BY name ASC LIMIT \\?").
		WithArgs("%ami%", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(workerColumns).
			AddRow(1, "W-1", "Amina", "", "5550101", "stitching", "", 4, "", "active", 0, 0, 3.5, 0, nil, "", now, now))

	workers, err := repo.SearchByName(context.Background(), "  ami ", 0)
	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.Equal(t, "Amina", workers[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkerRepository_SearchEscapesWildcards(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT \\* FROM `workers` WHERE name LIKE \\?").
		WithArgs(`%50\%\_off%`, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(workerColumns))

	workers, err := repo.SearchByName(context.Background(), "50%_off", 10)
	require.NoError(t, err)
	assert.Empty(t, workers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJSONGarmentRates_ValueScan(t *testing.T) {
	v, err := model.JSONGarmentRates(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	var rates model.JSONGarmentRates
	require.NoError(t, rates.Scan(`[{"garmentType":"kaftan","rate":80.5}]`))
	assert.Equal(t, model.JSONGarmentRates{{GarmentType: "kaftan", Rate: 80.5}}, rates)

	require.NoError(t, rates.Scan(nil))
	assert.Nil(t, rates)

	assert.Error(t, rates.Scan(42))
}
