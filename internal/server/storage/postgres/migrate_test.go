package postgres

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMigrator мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func TestMigrate(t *testing.T) {
	upErr := errors.New("dirty database")
	closeErr := errors.New("connection reset")

	tests := []struct {
		upResult  error
		closeSrc  error
		closeDB   error
		name      string
		wantError bool
	}{
		{name: "success", wantError: false},
		{name: "no change is not an error", upResult: migrate.ErrNoChange, wantError: false},
		{name: "up failure", upResult: upErr, wantError: true},
		{name: "close failure", closeDB: closeErr, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockM := new(MockMigrator)
			mockM.On("Up").Return(tt.upResult)
			mockM.On("Close").Return(tt.closeSrc, tt.closeDB)

			var gotPath, gotURL string
			engine := func(path, databaseURL string) (Migrator, error) {
				gotPath, gotURL = path, databaseURL
				return mockM, nil
			}

			err := Migrate(engine, "/srv/migrations", "postgres://localhost/medsync")
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, "/srv/migrations", gotPath)
			assert.Equal(t, "postgres://localhost/medsync", gotURL)
			mockM.AssertExpectations(t)
		})
	}
}

func TestMigrate_EngineError(t *testing.T) {
	engine := func(string, string) (Migrator, error) {
		return nil, errors.New("no driver")
	}

	err := Migrate(engine, "", "postgres://localhost/medsync")
	assert.ErrorContains(t, err, "no driver")
}

func TestMigrateURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "postgres://u:p@db:5432/medsync?sslmode=disable", want: "pgx5://u:p@db:5432/medsync?sslmode=disable"},
		{in: "postgresql://db/medsync", want: "pgx5://db/medsync"},
		{in: "pgx5://db/medsync", want: "pgx5://db/medsync"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migrateURL(tt.in))
		})
	}
}
