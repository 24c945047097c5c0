package quotes

import (
	"context"
	"io"
	"testing"

	"github.com/gestora-app/gestora-backend/pkg/db/models"
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

func TestCreateQuoteLeavesStockUntouched(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	productID := seedProduct(t, conn, "Widget", 4)

	quote, err := svc.Create(ctx, NewQuote{
		ClientID: clientID,
		Items: []NewItem{
			{ProductID: productID, Quantity: 3, Price: 4},
			{ProductID: productID, Quantity: 1, Price: 4},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, quote.ID)

	var movements int64
	require.NoError(t, conn.Model(&models.InventoryMovement{}).Count(&movements).Error)
	require.Zero(t, movements)

	details, err := svc.Details(ctx, quote.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, details.Products)
	require.InDelta(t, 16, details.Total, 1e-9)
}

func TestCreateQuoteValidation(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")

	_, err := svc.Create(ctx, NewQuote{ClientID: ""})
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())

	_, err = svc.Create(ctx, NewQuote{
		ClientID: clientID,
		Items:    []NewItem{{ProductID: "missing", Quantity: 1, Price: 1}},
	})
	require.Equal(t, pkgErrors.CodeValidation, pkgErrors.As(err).Code())
}

func TestDeleteQuote(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	productID := seedProduct(t, conn, "Widget", 4)

	quote, err := svc.Create(ctx, NewQuote{
		ClientID: clientID,
		Items:    []NewItem{{ProductID: productID, Quantity: 3, Price: 4}},
	})
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, quote.ID)
	require.NoError(t, err)
	// quote + 1 item
	require.EqualValues(t, 2, removed)

	details, err := svc.Details(ctx, quote.ID)
	require.NoError(t, err)
	require.Nil(t, details)

	_, err = svc.Delete(ctx, "missing")
	require.Equal(t, pkgErrors.CodeNotFound, pkgErrors.As(err).Code())
}

func TestListQuotes(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	janeID := seedClient(t, conn, "Jane Smith")
	bobID := seedClient(t, conn, "Bob Jones")

	_, err := svc.Create(ctx, NewQuote{ClientID: janeID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewQuote{ClientID: bobID})
	require.NoError(t, err)

	all, err := svc.List(ctx, pagination.ListArgs{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	janes, err := svc.List(ctx, pagination.ListArgs{Search: "Jane"})
	require.NoError(t, err)
	require.Len(t, janes, 1)
	require.Equal(t, "Jane Smith", janes[0].FullName)
}

func TestQuoteProducts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	widgetID := seedProduct(t, conn, "Widget", 4)
	gadgetID := seedProduct(t, conn, "Gadget", 9)

	quote, err := svc.Create(ctx, NewQuote{
		ClientID: clientID,
		Items: []NewItem{
			{ProductID: widgetID, Quantity: 2, Price: 4},
			{ProductID: gadgetID, Quantity: 1, Price: 9},
		},
	})
	require.NoError(t, err)

	products, err := svc.Products(ctx, quote.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "Gadget", products[0].Name)
	require.Equal(t, "Widget", products[1].Name)
}

func TestGetQuoteWithItems(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	clientID := seedClient(t, conn, "Jane")
	productID := seedProduct(t, conn, "Widget", 4)

	quote, err := svc.Create(ctx, NewQuote{
		ClientID: clientID,
		Items:    []NewItem{{ProductID: productID, Quantity: 2, Price: 4}},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, quote.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, clientID, got.ClientID)
	require.Len(t, got.Items, 1)
	require.Equal(t, "Widget", got.Items[0].Name)

	missing, err := svc.Get(ctx, "absent")
	require.NoError(t, err)
	require.Nil(t, missing)
}
