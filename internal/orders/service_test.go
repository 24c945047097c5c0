package orders

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
	svc, err := NewService(NewRepository(conn), testdb.TxRunner{DB: conn}, logg)
	require.NoError(t, err)
	return svc, conn
}

func seedClient(t *testing.T, conn *gorm.DB, name string) string {
	t.Helper()
	id := ids.New()
	require.NoError(t, conn.Create(&models.Client{ID: id, FullName: name}).Error)
	return id
}

func seedProduct(t *testing.T, conn *gorm.DB, name string, price float64) string {
	t.Helper()
	id := ids.New()
	require.NoError(t, conn.Create(&models.Product{ID: id, Name: name, Price: price}).Error)
	return id
}

func restock(t *testing.T, conn *gorm.DB, productID string, qty float64) {
	t.Helper()
	require.NoError(t, conn.Create(&models.InventoryMovement{
		ID:        ids.New(),
		MvmType:   enums.MovementIn,
		Quantity:  qty,
		ProductID: productID,
	}).Error)
}

func stockOf(t *testing.T, conn *gorm.DB, productID string) float64 {
	t.Helper()
	var stock float64
	err := conn.Raw(`
SELECT COALESCE(SUM(CASE WHEN mvm_type = 'IN' THEN quantity ELSE -quantity END), 0)
FROM inventory_movements WHERE product_id = ?`, productID).Scan(&stock).Error
	require.NoError(t, err)
	return stock
}

func TestCreateOrderDepletesStock(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	productID := seedProduct(t, conn, "Widget", 4)
	restock(t, conn, productID, 10)

	order, err := svc.Create(ctx, NewOrder{
		ClientID: clientID,
		Status:   enums.OrderStatusPending,
		Items: []NewItem{
			{ProductID: productID, Quantity: 3, Price: 4},
			{ProductID: productID, Quantity: 5, Price: 4},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)

	require.InDelta(t, 2, stockOf(t, conn, productID), 1e-9)

	details, err := svc.Details(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, details)
	require.EqualValues(t, 2, details.Products)
	require.InDelta(t, 32, details.Total, 1e-9)
	require.Equal(t, "Jane", details.FullName)
}

func TestDeleteOrderRestoresStock(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	productID := seedProduct(t, conn, "Widget", 4)
	restock(t, conn, productID, 10)

	order, err := svc.Create(ctx, NewOrder{
		ClientID: clientID,
		Status:   enums.OrderStatusPending,
		Items: []NewItem{
			{ProductID: productID, Quantity: 3, Price: 4},
			{ProductID: productID, Quantity: 5, Price: 4},
		},
	})
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, order.ID)
	require.NoError(t, err)
	// order + 2 items + 2 movements
	require.EqualValues(t, 5, removed)

	require.InDelta(t, 10, stockOf(t, conn, productID), 1e-9)

	details, err := svc.Details(ctx, order.ID)
	require.NoError(t, err)
	require.Nil(t, details)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	productID := seedProduct(t, conn, "Widget", 4)

	_, err := svc.Create(ctx, NewOrder{ClientID: "", Status: enums.OrderStatusPending})
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())

	_, err = svc.Create(ctx, NewOrder{ClientID: clientID, Status: "SHIPPED"})
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())

	_, err = svc.Create(ctx, NewOrder{
		ClientID: clientID,
		Status:   enums.OrderStatusPending,
		Items:    []NewItem{{ProductID: "missing", Quantity: 1, Price: 1}},
	})
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())

	_, err = svc.Create(ctx, NewOrder{
		ClientID: "missing",
		Status:   enums.OrderStatusPending,
		Items:    []NewItem{{ProductID: productID, Quantity: 1, Price: 1}},
	})
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())
}

func TestMovementBacksSingleLine(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	productID := seedProduct(t, conn, "Widget", 4)

	order, err := svc.Create(ctx, NewOrder{
		ClientID: clientID,
		Status:   enums.OrderStatusPending,
		Items:    []NewItem{{ProductID: productID, Quantity: 2, Price: 4}},
	})
	require.NoError(t, err)

	var item models.OrderItem
	require.NoError(t, conn.Where("order_id = ?", order.ID).First(&item).Error)

	err = conn.Create(&models.OrderItem{
		ID:          ids.New(),
		Price:       4,
		OrderID:     order.ID,
		InventoryID: item.InventoryID,
	}).Error
	require.Error(t, err)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	order, err := svc.Create(ctx, NewOrder{ClientID: clientID, Status: enums.OrderStatusPending})
	require.NoError(t, err)

	err = svc.UpdateStatus(ctx, StatusUpdate{ID: order.ID, Status: enums.OrderStatusDelivered})
	require.NoError(t, err)

	details, err := svc.Details(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusDelivered, details.Status)

	err = svc.UpdateStatus(ctx, StatusUpdate{ID: "missing", Status: enums.OrderStatusPending})
	require.Equal(t, pkgErrors.CodeNotFound, pkgErrors.As(err).Code())
}

func TestListOrdersFilters(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	janeID := seedClient(t, conn, "Jane Smith")
	bobID := seedClient(t, conn, "Bob Jones")
	productID := seedProduct(t, conn, "Widget", 4)

	_, err := svc.Create(ctx, NewOrder{
		ClientID: janeID,
		Status:   enums.OrderStatusPending,
		Items:    []NewItem{{ProductID: productID, Quantity: 1, Price: 4}},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewOrder{ClientID: bobID, Status: enums.OrderStatusDelivered})
	require.NoError(t, err)

	all, err := svc.List(ctx, pagination.ListArgs{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	pending, err := svc.List(ctx, pagination.ListArgs{Status: "PENDING"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "Jane Smith", pending[0].FullName)
	require.EqualValues(t, 1, pending[0].Products)
	require.InDelta(t, 4, pending[0].Total, 1e-9)

	janes, err := svc.List(ctx, pagination.ListArgs{Search: "Jane"})
	require.NoError(t, err)
	require.Len(t, janes, 1)

	// unknown statuses degrade to no filter
	unfiltered, err := svc.List(ctx, pagination.ListArgs{Status: "SHIPPED"})
	require.NoError(t, err)
	require.Len(t, unfiltered, 2)
}

func TestOrderProducts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	widgetID := seedProduct(t, conn, "Widget", 4)
	gadgetID := seedProduct(t, conn, "Gadget", 9)

	order, err := svc.Create(ctx, NewOrder{
		ClientID: clientID,
		Status:   enums.OrderStatusPending,
		Items: []NewItem{
			{ProductID: widgetID, Quantity: 2, Price: 4},
			{ProductID: gadgetID, Quantity: 1, Price: 9},
		},
	})
	require.NoError(t, err)

	products, err := svc.Products(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "Gadget", products[0].Name)
	require.Equal(t, "Widget", products[1].Name)
	require.InDelta(t, 2, products[1].Quantity, 1e-9)

	empty, err := svc.Products(ctx, "missing")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestDeleteOrderNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Delete(context.Background(), "missing")
	require.Equal(t, pkgErrors.CodeNotFound, pkgErrors.As(err).Code())
}

func TestGetOrderWithItems(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	productID := seedProduct(t, conn, "Widget", 4)
	restock(t, conn, productID, 10)

	order, err := svc.Create(ctx, NewOrder{
		ClientID: clientID,
		Status:   enums.OrderStatusPending,
		Items:    []NewItem{{ProductID: productID, Quantity: 3, Price: 4}},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, clientID, got.ClientID)
	require.Equal(t, enums.OrderStatusPending, got.Status)
	require.Len(t, got.Items, 1)
	require.Equal(t, "Widget", got.Items[0].Name)
	require.InDelta(t, 3, got.Items[0].Quantity, 1e-9)

	missing, err := svc.Get(ctx, "absent")
	require.NoError(t, err)
	require.Nil(t, missing)
}
