package inventory

import (
	"context"
	"io"
	"testing"

	"github.com/gestora-app/gestora-backend/pkg/db/models"
	"github.com/gestora-app/gestora-backend/pkg/enums"
	pkgErrors "github.com/gestora-app/gestora-backend/pkg/errors"
	"github.com/gestora-app/gestora-backend/pkg/ids"
	"github.com/gestora-app/gestora-backend/pkg/logger"
	"github.com/gestora-app/gestora-backend/pkg/pagination"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gestora-app/gestora-backend/internal/testdb"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn := testdb.Open(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(NewRepository(conn), logg)
	require.NoError(t, err)
	return svc, conn
}

func seedProduct(t *testing.T, conn *gorm.DB, name string, price float64) string {
	t.Helper()
	id := ids.New()
	err := conn.Create(&models.Product{ID: id, Name: name, Price: price}).Error
	require.NoError(t, err)
	return id
}

func TestCreateMovement(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	productID := seedProduct(t, conn, "Widget", 3)

	created, err := svc.Create(ctx, NewMovement{
		MvmType:   enums.MovementIn,
		Quantity:  12,
		ProductID: productID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, enums.MovementIn, fetched.MvmType)
	require.InDelta(t, 12, fetched.Quantity, 1e-9)
}

func TestCreateMovementValidation(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	productID := seedProduct(t, conn, "Widget", 3)

	_, err := svc.Create(ctx, NewMovement{MvmType: "SIDEWAYS", Quantity: 1, ProductID: productID})
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())

	_, err = svc.Create(ctx, NewMovement{MvmType: enums.MovementIn, Quantity: 0, ProductID: productID})
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())

	_, err = svc.Create(ctx, NewMovement{MvmType: enums.MovementIn, Quantity: 1, ProductID: "missing"})
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())
}

func TestDeleteMovementCascadesToOrderItem(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	productID := seedProduct(t, conn, "Widget", 3)
	clientID := ids.New()
	require.NoError(t, conn.Create(&models.Client{ID: clientID, FullName: "Jane"}).Error)

	movement, err := svc.Create(ctx, NewMovement{
		MvmType:   enums.MovementOut,
		Quantity:  2,
		ProductID: productID,
	})
	require.NoError(t, err)

	orderID := ids.New()
	require.NoError(t, conn.Create(&models.Order{
		ID:       orderID,
		ClientID: clientID,
		Status:   enums.OrderStatusPending,
	}).Error)
	require.NoError(t, conn.Create(&models.OrderItem{
		ID:          ids.New(),
		Price:       3,
		OrderID:     orderID,
		InventoryID: movement.ID,
	}).Error)

	require.NoError(t, svc.Delete(ctx, movement.ID))

	var items int64
	require.NoError(t, conn.Model(&models.OrderItem{}).Count(&items).Error)
	require.Zero(t, items)
}

func TestDeleteMovementNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), "missing")
	require.Equal(t, pkgErrors.CodeNotFound, pkgErrors.As(err).Code())
}

func TestListMovementsFilters(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	widgetID := seedProduct(t, conn, "Widget", 3)
	gadgetID := seedProduct(t, conn, "Gadget", 5)

	_, err := svc.Create(ctx, NewMovement{MvmType: enums.MovementIn, Quantity: 5, ProductID: widgetID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewMovement{MvmType: enums.MovementOut, Quantity: 1, ProductID: widgetID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewMovement{MvmType: enums.MovementIn, Quantity: 2, ProductID: gadgetID})
	require.NoError(t, err)

	all, err := svc.List(ctx, pagination.ListArgs{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	ins, err := svc.List(ctx, pagination.ListArgs{Status: "IN"})
	require.NoError(t, err)
	require.Len(t, ins, 2)

	widgets, err := svc.List(ctx, pagination.ListArgs{Search: "Widget"})
	require.NoError(t, err)
	require.Len(t, widgets, 2)
	require.Equal(t, "Widget", widgets[0].Name)

	// unknown movement types degrade to no filter
	unfiltered, err := svc.List(ctx, pagination.ListArgs{Status: "SIDEWAYS"})
	require.NoError(t, err)
	require.Len(t, unfiltered, 3)
}
