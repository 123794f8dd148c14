package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/staging"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/fleet"
	"dispatch/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, kind ports.EventKind, payload any) error {
	args := m.Called(ctx, kind, payload)
	return args.Error(0)
}

func location(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()

	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return loc
}

func londonNetwork(t *testing.T) staging.Network {
	t.Helper()

	hydePark, err := staging.NewPoint(1, "Hyde Park Depot", location(t, 51.508, -0.165))
	require.NoError(t, err)
	canaryWharf, err := staging.NewPoint(2, "Canary Wharf Hub", location(t, 51.503, -0.019))
	require.NoError(t, err)
	camden, err := staging.NewPoint(3, "Camden Town Storage", location(t, 51.539, -0.142))
	require.NoError(t, err)

	network, err := staging.NewNetwork(hydePark, canaryWharf, camden)
	require.NoError(t, err)
	return network
}

// dispatchFixture wires a real dispatcher over in-memory fleet stores so
// handler tests exercise the real candidate scan and locking.
type dispatchFixture struct {
	geo        *fleet.GeoIndex
	statuses   *fleet.StatusTable
	missions   *fleet.MissionRegistry
	dispatcher services.Dispatcher
}

func newDispatchFixture(t *testing.T) dispatchFixture {
	t.Helper()

	geo := fleet.NewGeoIndex()
	statuses := fleet.NewStatusTable()
	return dispatchFixture{
		geo:        geo,
		statuses:   statuses,
		missions:   fleet.NewMissionRegistry(),
		dispatcher: services.NewDispatcher(londonNetwork(t), geo, statuses),
	}
}
