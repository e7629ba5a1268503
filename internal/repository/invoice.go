package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"convenience-store/internal/database"
	"convenience-store/internal/models"
)

type InvoiceRepository struct {
	*Repository[models.Invoice, *models.Invoice]
}

func NewInvoiceRepository(store *database.Store) *InvoiceRepository {
	return &InvoiceRepository{New[models.Invoice](database.Collection[models.Invoice](store))}
}

func (r *InvoiceRepository) FindByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Invoice, error) {
	return r.find(ctx, bson.M{"customerId": customerID}, newestFirst())
}
