package service

import (
	"context"

	"dungeonbot/events"
	"dungeonbot/models"

	"github.com/stretchr/testify/mock"
)

// MockEntityWriter is a mock implementation of EntityWriter
type MockEntityWriter[T any] struct {
	mock.Mock
}

func (m *MockEntityWriter[T]) Update(ctx context.Context, v T) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockEntityWriter[T]) DeleteOne(ctx context.Context, key ...any) error {
	args := m.Called(append([]any{ctx}, key...)...)
	return args.Error(0)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	Users       *MockEntityWriter[*models.User]
	Items       *MockEntityWriter[*models.Item]
	Inventories *MockEntityWriter[*models.Inventory]
	Events      *MockEventPublisher
}

// NewMockUnitOfWork creates a unit of work mock with fresh writer mocks
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		Users:       new(MockEntityWriter[*models.User]),
		Items:       new(MockEntityWriter[*models.Item]),
		Inventories: new(MockEntityWriter[*models.Inventory]),
		Events:      new(MockEventPublisher),
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() EntityWriter[*models.User] {
	return m.Users
}

func (m *MockUnitOfWork) ItemRepository() EntityWriter[*models.Item] {
	return m.Items
}

func (m *MockUnitOfWork) InventoryRepository() EntityWriter[*models.Inventory] {
	return m.Inventories
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.Events
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}
