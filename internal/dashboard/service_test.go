package dashboard

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/gestora-app/gestora-backend/pkg/db/models"
	"github.com/gestora-app/gestora-backend/pkg/enums"
	"github.com/gestora-app/gestora-backend/pkg/ids"
	"github.com/gestora-app/gestora-backend/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gestora-app/gestora-backend/internal/testdb"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn := testdb.Open(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(NewRepository(conn, true), logg)
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

func seedMovement(t *testing.T, conn *gorm.DB, productID string, mvmType enums.MovementType, qty float64) string {
	t.Helper()
	id := ids.New()
	require.NoError(t, conn.Create(&models.InventoryMovement{
		ID:        id,
		MvmType:   mvmType,
		Quantity:  qty,
		ProductID: productID,
	}).Error)
	return id
}

func seedOrderWithItem(t *testing.T, conn *gorm.DB, clientID, productID string, qty, price float64) {
	t.Helper()
	orderID := ids.New()
	require.NoError(t, conn.Create(&models.Order{
		ID:       orderID,
		ClientID: clientID,
		Status:   enums.OrderStatusPending,
	}).Error)
	movementID := seedMovement(t, conn, productID, enums.MovementOut, qty)
	require.NoError(t, conn.Create(&models.OrderItem{
		ID:          ids.New(),
		Price:       price,
		OrderID:     orderID,
		InventoryID: movementID,
	}).Error)
}

func TestMovementStats(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	productID := seedProduct(t, conn, "Widget", 4)
	seedMovement(t, conn, productID, enums.MovementIn, 10)
	seedMovement(t, conn, productID, enums.MovementOut, 3)

	stats, err := svc.MovementStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Equal(t, time.Now().UTC().Format("2006-01"), stats[0].Month)
	require.InDelta(t, 10, stats[0].InQuantity, 1e-9)
	require.InDelta(t, 3, stats[0].OutQuantity, 1e-9)
}

func TestTopClientsRankedByOrderValue(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	productID := seedProduct(t, conn, "Widget", 4)
	bigID := seedClient(t, conn, "Big Spender")
	smallID := seedClient(t, conn, "Small Spender")

	seedOrderWithItem(t, conn, bigID, productID, 10, 4)
	seedOrderWithItem(t, conn, smallID, productID, 1, 4)

	top, err := svc.TopClients(ctx)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "Big Spender", top[0].FullName)
	require.InDelta(t, 40, top[0].Total, 1e-9)
	require.EqualValues(t, 1, top[0].Orders)
}

func TestTopSuppliersByRecency(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		require.NoError(t, conn.Create(&models.Supplier{
			ID:       ids.New(),
			FullName: "Supplier",
		}).Error)
	}

	top, err := svc.TopSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, top, 5)
}

func TestTopProductsBySoldQuantity(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	widgetID := seedProduct(t, conn, "Widget", 4)
	gadgetID := seedProduct(t, conn, "Gadget", 9)

	seedMovement(t, conn, widgetID, enums.MovementOut, 8)
	seedMovement(t, conn, gadgetID, enums.MovementOut, 2)
	// IN movements do not count as sales
	seedMovement(t, conn, gadgetID, enums.MovementIn, 50)

	top, err := svc.TopProducts(ctx)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "Widget", top[0].Name)
	require.InDelta(t, 8, top[0].Quantity, 1e-9)
}

func TestStatusCounts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	for _, status := range []enums.OrderStatus{
		enums.OrderStatusPending,
		enums.OrderStatusPending,
		enums.OrderStatusDelivered,
	} {
		require.NoError(t, conn.Create(&models.Order{
			ID:       ids.New(),
			ClientID: clientID,
			Status:   status,
		}).Error)
	}
	require.NoError(t, conn.Create(&models.Invoice{
		ID:       ids.New(),
		ClientID: clientID,
		Status:   enums.InvoiceStatusPaid,
	}).Error)

	counts, err := svc.StatusCounts(ctx)
	require.NoError(t, err)

	byStatus := map[string]int64{}
	for _, row := range counts.Orders {
		byStatus[row.Status] = row.Count
	}
	require.EqualValues(t, 2, byStatus["PENDING"])
	require.EqualValues(t, 1, byStatus["DELIVERED"])

	require.Len(t, counts.Invoices, 1)
	require.Equal(t, "PAID", counts.Invoices[0].Status)
}

func TestRevenueAndExpenses(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	productID := seedProduct(t, conn, "Widget", 4)

	// expense: restock of 10 at catalog price 4
	seedMovement(t, conn, productID, enums.MovementIn, 10)

	// revenue: invoice billing 3 units at 5
	invoiceID := ids.New()
	require.NoError(t, conn.Create(&models.Invoice{
		ID:       invoiceID,
		ClientID: clientID,
		Status:   enums.InvoiceStatusPending,
	}).Error)
	movementID := seedMovement(t, conn, productID, enums.MovementOut, 3)
	require.NoError(t, conn.Create(&models.InvoiceItem{
		ID:          ids.New(),
		Price:       5,
		InvoiceID:   invoiceID,
		InventoryID: movementID,
	}).Error)

	revenue, err := svc.Revenue(ctx)
	require.NoError(t, err)
	require.Len(t, revenue, 1)
	require.InDelta(t, 15, revenue[0].Amount, 1e-9)

	expenses, err := svc.Expenses(ctx)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	require.InDelta(t, 40, expenses[0].Amount, 1e-9)
}
