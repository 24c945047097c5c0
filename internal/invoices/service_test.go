package invoices

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

func seedOrder(t *testing.T, conn *gorm.DB, clientID string) string {
	t.Helper()
	id := ids.New()
	require.NoError(t, conn.Create(&models.Order{
		ID:       id,
		ClientID: clientID,
		Status:   enums.OrderStatusPending,
	}).Error)
	return id
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

func TestCreateInvoiceDepletesStock(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	productID := seedProduct(t, conn, "Widget", 4)

	invoice, err := svc.Create(ctx, NewInvoice{
		ClientID:   clientID,
		Status:     enums.InvoiceStatusPending,
		PaidAmount: 5,
		Items: []NewItem{
			{ProductID: productID, Quantity: 2, Price: 4},
			{ProductID: productID, Quantity: 1, Price: 4},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, invoice.ID)

	require.InDelta(t, -3, stockOf(t, conn, productID), 1e-9)

	details, err := svc.Details(ctx, invoice.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, details.Products)
	require.InDelta(t, 12, details.Total, 1e-9)
	require.InDelta(t, 7, details.Balance, 1e-9)
}

func TestBalanceIsExact(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	productID := seedProduct(t, conn, "Widget", 0.1)

	invoice, err := svc.Create(ctx, NewInvoice{
		ClientID:   clientID,
		Status:     enums.InvoiceStatusPending,
		PaidAmount: 0.1,
		Items:      []NewItem{{ProductID: productID, Quantity: 3, Price: 0.1}},
	})
	require.NoError(t, err)

	details, err := svc.Details(ctx, invoice.ID)
	require.NoError(t, err)
	// 0.3 - 0.1 in raw float64 is 0.19999999999999998
	require.Equal(t, 0.2, details.Balance)
}

func TestInvoiceSurvivesOrderDelete(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	orderID := seedOrder(t, conn, clientID)

	invoice, err := svc.Create(ctx, NewInvoice{
		ClientID: clientID,
		OrderID:  &orderID,
		Status:   enums.InvoiceStatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, conn.Exec("DELETE FROM orders WHERE id = ?", orderID).Error)

	details, err := svc.Details(ctx, invoice.ID)
	require.NoError(t, err)
	require.NotNil(t, details)
	require.Nil(t, details.OrderID)
}

func TestCreateInvoiceValidation(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	missing := "missing"

	_, err := svc.Create(ctx, NewInvoice{ClientID: clientID, Status: "OVERDUE"})
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())

	_, err = svc.Create(ctx, NewInvoice{ClientID: clientID, Status: enums.InvoiceStatusPending, PaidAmount: -1})
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())

	_, err = svc.Create(ctx, NewInvoice{ClientID: clientID, OrderID: &missing, Status: enums.InvoiceStatusPending})
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())

	_, err = svc.Create(ctx, NewInvoice{ClientID: "missing", Status: enums.InvoiceStatusPending})
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())
}

func TestUpdateInvoice(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	invoice, err := svc.Create(ctx, NewInvoice{ClientID: clientID, Status: enums.InvoiceStatusPending})
	require.NoError(t, err)

	err = svc.Update(ctx, Update{ID: invoice.ID, Status: enums.InvoiceStatusPaid, PaidAmount: 42})
	require.NoError(t, err)

	details, err := svc.Details(ctx, invoice.ID)
	require.NoError(t, err)
	require.Equal(t, enums.InvoiceStatusPaid, details.Status)
	require.InDelta(t, 42, details.PaidAmount, 1e-9)

	err = svc.Update(ctx, Update{ID: "missing", Status: enums.InvoiceStatusPaid})
	require.Equal(t, pkgErrors.CodeNotFound, pkgErrors.As(err).Code())
}

func TestDeleteInvoiceRestoresStock(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	productID := seedProduct(t, conn, "Widget", 4)

	invoice, err := svc.Create(ctx, NewInvoice{
		ClientID: clientID,
		Status:   enums.InvoiceStatusPending,
		Items:    []NewItem{{ProductID: productID, Quantity: 2, Price: 4}},
	})
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, invoice.ID)
	require.NoError(t, err)
	// invoice + 1 item + 1 movement
	require.EqualValues(t, 3, removed)

	require.InDelta(t, 0, stockOf(t, conn, productID), 1e-9)

	details, err := svc.Details(ctx, invoice.ID)
	require.NoError(t, err)
	require.Nil(t, details)
}

func TestListInvoicesFilters(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	janeID := seedClient(t, conn, "Jane Smith")
	bobID := seedClient(t, conn, "Bob Jones")
	productID := seedProduct(t, conn, "Widget", 4)

	_, err := svc.Create(ctx, NewInvoice{
		ClientID: janeID,
		Status:   enums.InvoiceStatusPending,
		Items:    []NewItem{{ProductID: productID, Quantity: 2, Price: 4}},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewInvoice{ClientID: bobID, Status: enums.InvoiceStatusPaid})
	require.NoError(t, err)

	all, err := svc.List(ctx, pagination.ListArgs{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	pending, err := svc.List(ctx, pagination.ListArgs{Status: "PENDING"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.InDelta(t, 8, pending[0].Total, 1e-9)

	// unknown statuses degrade to no filter
	unfiltered, err := svc.List(ctx, pagination.ListArgs{Status: "OVERDUE"})
	require.NoError(t, err)
	require.Len(t, unfiltered, 2)
}

func TestInvoiceProducts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	widgetID := seedProduct(t, conn, "Widget", 4)

	invoice, err := svc.Create(ctx, NewInvoice{
		ClientID: clientID,
		Status:   enums.InvoiceStatusPending,
		Items:    []NewItem{{ProductID: widgetID, Quantity: 2, Price: 4}},
	})
	require.NoError(t, err)

	products, err := svc.Products(ctx, invoice.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Widget", products[0].Name)
	require.InDelta(t, 2, products[0].Quantity, 1e-9)
}

func TestGetInvoiceWithItems(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	productID := seedProduct(t, conn, "Widget", 4)

	invoice, err := svc.Create(ctx, NewInvoice{
		ClientID:   clientID,
		Status:     enums.InvoiceStatusPending,
		PaidAmount: 4,
		Items:      []NewItem{{ProductID: productID, Quantity: 2, Price: 4}},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, invoice.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, clientID, got.ClientID)
	require.Nil(t, got.OrderID)
	require.InDelta(t, 4, got.PaidAmount, 1e-9)
	require.Len(t, got.Items, 1)
	require.Equal(t, "Widget", got.Items[0].Name)

	missing, err := svc.Get(ctx, "absent")
	require.NoError(t, err)
	require.Nil(t, missing)
}
