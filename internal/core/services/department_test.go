package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xalgrow/xalgrow-hr/internal/core/domain"
	"github.com/xalgrow/xalgrow-hr/internal/core/ports/driven/mocks"
)

func TestDepartmentService_CRUD(t *testing.T) {
	store := mocks.NewMockDepartmentStore()
	svc := NewDepartmentService(store, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.DepartmentInput{Name: "  Engineering "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Engineering", created.Name)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := svc.Update(ctx, created.ID, domain.DepartmentInput{Name: "Platform"})
	require.NoError(t, err)
	assert.Equal(t, "Platform", updated.Name)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Platform", list[0].Name)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDepartmentService_Errors(t *testing.T) {
	svc := NewDepartmentService(mocks.NewMockDepartmentStore(), nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"create without name", func() error {
			_, err := svc.Create(ctx, domain.DepartmentInput{Name: " "})
			return err
		}, domain.ErrInvalidInput},
		{"get unknown", func() error {
			_, err := svc.Get(ctx, 99)
			return err
		}, domain.ErrNotFound},
		{"get non-positive id", func() error {
			_, err := svc.Get(ctx, 0)
			return err
		}, domain.ErrNotFound},
		{"update unknown", func() error {
			_, err := svc.Update(ctx, 99, domain.DepartmentInput{Name: "x"})
			return err
		}, domain.ErrNotFound},
		{"update without name", func() error {
			_, err := svc.Update(ctx, 99, domain.DepartmentInput{})
			return err
		}, domain.ErrInvalidInput},
		{"delete unknown", func() error {
			return svc.Delete(ctx, 99)
		}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.wantErr)
		})
	}
}
