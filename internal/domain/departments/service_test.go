package departments

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	departments map[int64]Department
	employees   map[int64]string
}

func (m *memStore) List(context.Context) ([]Department, error) { return nil, nil }

func (m *memStore) Get(_ context.Context, id int64) (Department, error) {
	d, ok := m.departments[id]
	if !ok {
		return Department{}, ErrNotFound
	}
	return d, nil
}

func (m *memStore) Members(context.Context, int64) ([]Member, error) { return nil, nil }

func (m *memStore) SetManager(_ context.Context, id int64, managerID *int64) error {
	d, ok := m.departments[id]
	if !ok {
		return ErrNotFound
	}
	if managerID == nil {
		d.ManagerID, d.ManagerName = nil, ""
	} else {
		name, ok := m.employees[*managerID]
		if !ok {
			return ErrManagerNotFound
		}
		key := strconv.FormatInt(*managerID, 10)
		d.ManagerID, d.ManagerName = &key, name
	}
	m.departments[id] = d
	return nil
}

func newMemStore() *memStore {
	return &memStore{
		departments: map[int64]Department{1: {ID: "1", Name: "Recursos Humanos"}},
		employees:   map[int64]string{1: "Maria Silva"},
	}
}

func TestAssignManager(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()
	manager := int64(1)

	d, err := svc.AssignManager(ctx, 1, &manager)
	require.NoError(t, err)
	require.NotNil(t, d.ManagerID)
	assert.Equal(t, "1", *d.ManagerID)
	assert.Equal(t, "Maria Silva", d.ManagerName)

	d, err = svc.AssignManager(ctx, 1, nil)
	require.NoError(t, err)
	assert.Nil(t, d.ManagerID)
}

func TestAssignManagerRejections(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	unknown := int64(77)
	_, err := svc.AssignManager(ctx, 1, &unknown)
	assert.ErrorIs(t, err, ErrManagerNotFound)

	zero := int64(0)
	_, err = svc.AssignManager(ctx, 1, &zero)
	assert.ErrorIs(t, err, ErrManagerNotFound)

	manager := int64(1)
	_, err = svc.AssignManager(ctx, 9, &manager)
	assert.ErrorIs(t, err, ErrNotFound)
}
