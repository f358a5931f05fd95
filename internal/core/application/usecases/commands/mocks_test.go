package commands_test

import (
	"context"
	"testing"
	"time"

	"loadboard/internal/core/application/usecases/commands"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/load"
	"loadboard/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLoadRepository struct{ mock.Mock }

func (m *MockLoadRepository) Create(ctx context.Context, aggregate *load.Load) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockLoadRepository) GetByID(ctx context.Context, id kernel.UUID) (*load.Load, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*load.Load), args.Error(1)
}

func (m *MockLoadRepository) ConditionalUpdate(
	ctx context.Context, aggregate *load.Load, expectedVersion int,
) (int, error) {
	args := m.Called(ctx, aggregate, expectedVersion)
	return args.Int(0), args.Error(1)
}

func (m *MockLoadRepository) MaxReferenceCounter(ctx context.Context, year int, month time.Month) (int, error) {
	args := m.Called(ctx, year, month)
	return args.Int(0), args.Error(1)
}

type MockLoadUoW struct{ mock.Mock }

func (m *MockLoadUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLoadUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLoadUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLoadUoW) LoadRepository() ports.LoadRepository {
	args := m.Called()
	return args.Get(0).(ports.LoadRepository)
}

type MockLoadUoWFactory struct{ mock.Mock }

func (m *MockLoadUoWFactory) Create() commands.LoadUoW {
	args := m.Called()
	return args.Get(0).(commands.LoadUoW)
}

type MockDistanceEstimator struct{ mock.Mock }

func (m *MockDistanceEstimator) EstimateMiles(
	ctx context.Context, origin, destination kernel.Location,
) (kernel.Distance, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(kernel.Distance), args.Error(1)
}

// Test data helpers shared by the command handler tests.

func mustLocation(t *testing.T, city, state string) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(city, state, "")
	require.NoError(t, err)
	return loc
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func mustDistance(t *testing.T, s string) kernel.Distance {
	t.Helper()
	d, err := kernel.DistanceFromString(s)
	require.NoError(t, err)
	return d
}

func validCreateParams(t *testing.T) load.NewLoadParams {
	t.Helper()
	miles := mustDistance(t, "925.0")
	return load.NewLoadParams{
		Origin:      mustLocation(t, "Chicago", "IL"),
		Destination: mustLocation(t, "Dallas", "TX"),
		PickupAt:    time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
		DeliveryAt:  time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC),
		Rate:        mustMoney(t, "2500.00"),
		Equipment:   load.EquipmentDryVan53,
		Commodity:   "general freight",
		WeightLbs:   40000,
		Miles:       &miles,
	}
}

func restoredLoad(t *testing.T, status load.Status, version int) *load.Load {
	t.Helper()
	l, err := load.RestoreLoad(load.RestoreLoadParams{
		ID:              kernel.NewUUID(),
		ReferenceNumber: "LD-2025-03-00001",
		Origin:          mustLocation(t, "Chicago", "IL"),
		Destination:     mustLocation(t, "Dallas", "TX"),
		PickupAt:        time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
		DeliveryAt:      time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC),
		Rate:            mustMoney(t, "2500.00"),
		Equipment:       load.EquipmentDryVan53,
		Commodity:       "general freight",
		WeightLbs:       40000,
		Status:          status,
		CreatedAt:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Version:         version,
	})
	require.NoError(t, err)
	return l
}
