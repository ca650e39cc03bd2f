package service

import (
	"context"
	"sync"
	"testing"

	"dungeonbot/models"
	"dungeonbot/store"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory manager.Store
type memStore[T any] struct {
	mu   sync.Mutex
	rows []T
}

func (s *memStore[T]) EnsureTable(ctx context.Context) error { return nil }

func (s *memStore[T]) FindMany(ctx context.Context, conds ...store.Condition) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.rows...), nil
}

func (s *memStore[T]) Update(ctx context.Context, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, v)
	return nil
}

func (s *memStore[T]) UpdateAll(ctx context.Context, vs ...T) error {
	for _, v := range vs {
		if err := s.Update(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *memStore[T]) DeleteOne(ctx context.Context, key ...any) error { return nil }

func newTestManagers(t *testing.T) *Managers {
	m := NewManagers(Stores{
		Users:         &memStore[*models.User]{},
		Items:         &memStore[*models.Item]{},
		Inventories:   &memStore[*models.Inventory]{},
		GuildSettings: &memStore[*models.GuildSettings]{},
		Tickets:       &memStore[*models.Ticket]{},
		SubGuilds:     &memStore[*models.SubGuild]{},
		ReactRoles:    &memStore[*models.ReactRole]{},
		Aliases:       &memStore[*models.Alias]{},
		Logs:          &memStore[*models.LogEntry]{},
	}, models.DefaultGold, nil)
	require.NoError(t, m.Init(context.Background()))
	return m
}

// acceptingFactory returns a factory whose units of work accept every write
func acceptingFactory() (*MockUnitOfWorkFactory, *MockUnitOfWork) {
	uow := NewMockUnitOfWork()
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit").Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Users.On("Update", mock.Anything, mock.Anything).Return(nil)
	uow.Items.On("Update", mock.Anything, mock.Anything).Return(nil)
	uow.Items.On("DeleteOne", mock.Anything, mock.Anything).Return(nil)
	uow.Inventories.On("Update", mock.Anything, mock.Anything).Return(nil)
	uow.Events.On("Publish", mock.Anything).Return()

	factory := new(MockUnitOfWorkFactory)
	factory.On("Create").Return(uow)
	return factory, uow
}
