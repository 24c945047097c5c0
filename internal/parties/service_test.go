package parties

import (
	"context"
	"io"
	"testing"

	"github.com/gestora-app/gestora-backend/pkg/db/models"
	pkgErrors "github.com/gestora-app/gestora-backend/pkg/errors"
	"github.com/gestora-app/gestora-backend/pkg/logger"
	"github.com/gestora-app/gestora-backend/pkg/pagination"
	"github.com/stretchr/testify/require"

	"github.com/gestora-app/gestora-backend/internal/testdb"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	conn := testdb.Open(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(NewRepository(conn), logg)
	require.NoError(t, err)
	return svc
}

func strPtr(s string) *string { return &s }

func TestCreateAndGetClient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, models.Client{
		FullName: "Maria Lopez",
		Email:    strPtr("maria@example.com"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := svc.GetClient(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	require.Equal(t, "Maria Lopez", fetched.FullName)
	require.NotNil(t, fetched.Email)
	require.Equal(t, "maria@example.com", *fetched.Email)
}

func TestCreateClientKeepsProvidedID(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateClient(context.Background(), models.Client{
		ID:       "client-1",
		FullName: "Jon Doe",
	})
	require.NoError(t, err)
	require.Equal(t, "client-1", created.ID)
}

func TestCreateClientRequiresName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateClient(context.Background(), models.Client{FullName: "   "})
	require.Error(t, err)
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())
}

func TestGetClientMissingReturnsNil(t *testing.T) {
	svc := newTestService(t)

	fetched, err := svc.GetClient(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, fetched)
}

func TestUpdateClient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateClient(ctx, models.Client{FullName: "Old Name"})
	require.NoError(t, err)

	err = svc.UpdateClient(ctx, models.Client{
		ID:       created.ID,
		FullName: "New Name",
		Address:  strPtr("12 Main St"),
	})
	require.NoError(t, err)

	fetched, err := svc.GetClient(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "New Name", fetched.FullName)
	require.NotNil(t, fetched.Address)
}

func TestUpdateClientNotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.UpdateClient(context.Background(), models.Client{ID: "missing", FullName: "X"})
	require.Error(t, err)
	require.Equal(t, pkgErrors.CodeNotFound, pkgErrors.As(err).Code())
}

func TestDeleteClientNotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.DeleteClient(context.Background(), "missing")
	require.Error(t, err)
	require.Equal(t, pkgErrors.CodeNotFound, pkgErrors.As(err).Code())
}

func TestListClientsSearchAndPaging(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	names := []string{"Alice Cooper", "Alice Walker", "Bob Stone"}
	for _, name := range names {
		_, err := svc.CreateClient(ctx, models.Client{FullName: name})
		require.NoError(t, err)
	}

	all, err := svc.ListClients(ctx, pagination.ListArgs{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	filtered, err := svc.ListClients(ctx, pagination.ListArgs{Search: "Alice"})
	require.NoError(t, err)
	require.Len(t, filtered, 2)

	paged, err := svc.ListClients(ctx, pagination.ListArgs{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, paged, 1)
}

func TestSearchSuppliers(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateSupplier(ctx, models.Supplier{FullName: "Acme Metals"})
	require.NoError(t, err)
	_, err = svc.CreateSupplier(ctx, models.Supplier{FullName: "Globex Paper"})
	require.NoError(t, err)

	found, err := svc.SearchSuppliers(ctx, "Acme")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Acme Metals", found[0].FullName)

	empty, err := svc.SearchSuppliers(ctx, "   ")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestSupplierLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSupplier(ctx, models.Supplier{FullName: "Initech"})
	require.NoError(t, err)

	err = svc.UpdateSupplier(ctx, models.Supplier{ID: created.ID, FullName: "Initech LLC"})
	require.NoError(t, err)

	fetched, err := svc.GetSupplier(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Initech LLC", fetched.FullName)

	require.NoError(t, svc.DeleteSupplier(ctx, created.ID))

	gone, err := svc.GetSupplier(ctx, created.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}
