package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	fx := newDispatchFixture(t)
	require.NoError(t, fx.geo.Upsert("driver_1", location(t, 51.507, -0.160)))

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, "Alice Smith", "Laptop", location(t, 51.506, -0.10))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, ports.EventOrderCreated, mock.AnythingOfType("commands.OrderCreatedEvent")).
		Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, fx.dispatcher, fx.missions, publisher)
	assigned, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, courier.ID("driver_1"), assigned)
	assert.Equal(t, courier.StatusAssigned, fx.statuses.Get("driver_1"))

	mission, ok := fx.missions.Get("driver_1")
	require.True(t, ok)
	assert.True(t, mission.OrderID().IsEqual(id))
	assert.Equal(t, "Hyde Park Depot", mission.StagingPoint().Name())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NoCourierAvailable(t *testing.T) {
	ctx := t.Context()
	fx := newDispatchFixture(t)
	require.NoError(t, fx.geo.Upsert("driver_1", location(t, 51.507, -0.160)))
	fx.statuses.Set("driver_1", courier.StatusToCustomer)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "Alice Smith", "Laptop", location(t, 51.506, -0.10))
	require.NoError(t, err)

	// Neither the ledger nor the broadcast is touched when dispatch fails.
	factory := new(MockOrderUoWFactory)
	publisher := new(MockEventPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, fx.dispatcher, fx.missions, publisher)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrNoCourierAvailable)
	_, ok := fx.missions.Get("driver_1")
	assert.False(t, ok)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	fx := newDispatchFixture(t)
	cmd := commands.CreateOrderCommand{} // not constructed properly

	h := commands.NewCreateOrderCommandHandler(
		new(MockOrderUoWFactory), fx.dispatcher, fx.missions, new(MockEventPublisher))
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_AddErrorReleasesCourier(t *testing.T) {
	ctx := t.Context()
	fx := newDispatchFixture(t)
	require.NoError(t, fx.geo.Upsert("driver_1", location(t, 51.507, -0.160)))

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "Alice Smith", "Laptop", location(t, 51.506, -0.10))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, fx.dispatcher, fx.missions, new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	// The lock taken by dispatch is rolled back.
	assert.Equal(t, courier.StatusIdle, fx.statuses.Get("driver_1"))
	_, ok := fx.missions.Get("driver_1")
	assert.False(t, ok)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitErrorReleasesCourier(t *testing.T) {
	ctx := t.Context()
	fx := newDispatchFixture(t)
	require.NoError(t, fx.geo.Upsert("driver_1", location(t, 51.507, -0.160)))

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), "Alice Smith", "Laptop", location(t, 51.506, -0.10))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, fx.dispatcher, fx.missions, new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, courier.StatusIdle, fx.statuses.Get("driver_1"))

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}
