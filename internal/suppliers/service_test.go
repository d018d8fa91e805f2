package suppliers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
)

type stubSuppliersRepo struct {
	byID map[uuid.UUID]*models.Supplier
}

func (s *stubSuppliersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubSuppliersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	if supplier, ok := s.byID[id]; ok {
		return supplier, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSuppliersRepo) ListActive(ctx context.Context) ([]models.Supplier, error) {
	var rows []models.Supplier
	for _, supplier := range s.byID {
		if supplier.Active {
			rows = append(rows, *supplier)
		}
	}
	return rows, nil
}

func TestEnsureAssignable(t *testing.T) {
	active := uuid.New()
	inactive := uuid.New()
	svc, err := NewService(&stubSuppliersRepo{byID: map[uuid.UUID]*models.Supplier{
		active:   {ID: active, CompanyName: "Bosch Parts Co", Active: true},
		inactive: {ID: inactive, CompanyName: "Dormant Ltd", Active: false},
	}})
	require.NoError(t, err)

	assert.NoError(t, svc.EnsureAssignable(context.Background(), active))

	err = svc.EnsureAssignable(context.Background(), inactive)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	err = svc.EnsureAssignable(context.Background(), uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	err = svc.EnsureAssignable(context.Background(), uuid.Nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
