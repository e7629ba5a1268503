package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"convenience-store/internal/database"
	"convenience-store/internal/models"
)

type PaymentRepository struct {
	*Repository[models.Payment, *models.Payment]
}

func NewPaymentRepository(store *database.Store) *PaymentRepository {
	return &PaymentRepository{New[models.Payment](database.Collection[models.Payment](store))}
}

func (r *PaymentRepository) FindByInvoice(ctx context.Context, invoiceID primitive.ObjectID) ([]models.Payment, error) {
	return r.find(ctx, bson.M{"invoiceId": invoiceID}, newestFirst())
}

type ReceiptRepository struct {
	*Repository[models.Receipt, *models.Receipt]
}

func NewReceiptRepository(store *database.Store) *ReceiptRepository {
	return &ReceiptRepository{New[models.Receipt](database.Collection[models.Receipt](store))}
}

func (r *ReceiptRepository) FindByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Receipt, error) {
	return r.find(ctx, bson.M{"customerId": customerID}, options.Find().SetSort(bson.D{{Key: "issuedAt", Value: -1}}))
}

func (r *ReceiptRepository) FindByPayment(ctx context.Context, paymentID primitive.ObjectID) (*models.Receipt, error) {
	return r.findOne(ctx, bson.M{"paymentId": paymentID})
}
