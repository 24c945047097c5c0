package parties

import (
	"context"

	"github.com/gestora-app/gestora-backend/pkg/db/models"
	"github.com/gestora-app/gestora-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository persists clients and suppliers.
type Repository interface {
	CreateClient(ctx context.Context, client *models.Client) error
	UpdateClient(ctx context.Context, client *models.Client) (int64, error)
	DeleteClient(ctx context.Context, id string) (int64, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context, args pagination.ListArgs) ([]models.Client, error)
	SearchClients(ctx context.Context, pattern string, limit int) ([]models.Client, error)

	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
	UpdateSupplier(ctx context.Context, supplier *models.Supplier) (int64, error)
	DeleteSupplier(ctx context.Context, id string) (int64, error)
	GetSupplier(ctx context.Context, id string) (*models.Supplier, error)
	ListSuppliers(ctx context.Context, args pagination.ListArgs) ([]models.Supplier, error)
	SearchSuppliers(ctx context.Context, pattern string, limit int) ([]models.Supplier, error)
}

type repository struct {
	conn *gorm.DB
}

// NewRepository returns the GORM-backed parties repository.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{conn: conn}
}

func (r *repository) CreateClient(ctx context.Context, client *models.Client) error {
	return r.conn.WithContext(ctx).Create(client).Error
}

func (r *repository) UpdateClient(ctx context.Context, client *models.Client) (int64, error) {
	result := r.conn.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", client.ID).
		Updates(map[string]any{
			"full_name":    client.FullName,
			"phone_number": client.PhoneNumber,
			"email":        client.Email,
			"address":      client.Address,
			"image":        client.Image,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) DeleteClient(ctx context.Context, id string) (int64, error) {
	result := r.conn.WithContext(ctx).Where("id = ?", id).Delete(&models.Client{})
	return result.RowsAffected, result.Error
}

func (r *repository) GetClient(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	err := r.conn.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *repository) ListClients(ctx context.Context, args pagination.ListArgs) ([]models.Client, error) {
	query := r.conn.WithContext(ctx).Model(&models.Client{})
	if pattern := args.SearchPattern(); pattern != "" {
		query = query.Where("full_name LIKE ?", pattern)
	}

	clients := []models.Client{}
	err := query.
		Order("created_at DESC").
		Limit(pagination.NormalizePerPage(args.PerPage)).
		Offset(args.Offset()).
		Find(&clients).Error
	return clients, err
}

func (r *repository) SearchClients(ctx context.Context, pattern string, limit int) ([]models.Client, error) {
	clients := []models.Client{}
	err := r.conn.WithContext(ctx).
		Where("full_name LIKE ?", pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&clients).Error
	return clients, err
}

func (r *repository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.conn.WithContext(ctx).Create(supplier).Error
}

func (r *repository) UpdateSupplier(ctx context.Context, supplier *models.Supplier) (int64, error) {
	result := r.conn.WithContext(ctx).
		Model(&models.Supplier{}).
		Where("id = ?", supplier.ID).
		Updates(map[string]any{
			"full_name":    supplier.FullName,
			"phone_number": supplier.PhoneNumber,
			"email":        supplier.Email,
			"address":      supplier.Address,
			"image":        supplier.Image,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) DeleteSupplier(ctx context.Context, id string) (int64, error) {
	result := r.conn.WithContext(ctx).Where("id = ?", id).Delete(&models.Supplier{})
	return result.RowsAffected, result.Error
}

func (r *repository) GetSupplier(ctx context.Context, id string) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.conn.WithContext(ctx).Where("id = ?", id).First(&supplier).Error
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *repository) ListSuppliers(ctx context.Context, args pagination.ListArgs) ([]models.Supplier, error) {
	query := r.conn.WithContext(ctx).Model(&models.Supplier{})
	if pattern := args.SearchPattern(); pattern != "" {
		query = query.Where("full_name LIKE ?", pattern)
	}

	suppliers := []models.Supplier{}
	err := query.
		Order("created_at DESC").
		Limit(pagination.NormalizePerPage(args.PerPage)).
		Offset(args.Offset()).
		Find(&suppliers).Error
	return suppliers, err
}

func (r *repository) SearchSuppliers(ctx context.Context, pattern string, limit int) ([]models.Supplier, error) {
	suppliers := []models.Supplier{}
	err := r.conn.WithContext(ctx).
		Where("full_name LIKE ?", pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&suppliers).Error
	return suppliers, err
}
