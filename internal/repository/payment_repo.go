package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stayhub/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Reference  string    `gorm:"column:reference;uniqueIndex"`
	Email      string    `gorm:"column:email"`
	CardHolder string    `gorm:"column:card_holder"`
	CardLast4  string    `gorm:"column:card_last4"`
	Amount     float64   `gorm:"column:amount"`
	Currency   string    `gorm:"column:currency"`
	PaidAt     time.Time `gorm:"column:paid_at"`
}

func (paymentModel) TableName() string { return "payments" }

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	m := paymentModel{
		Reference:  p.Reference,
		Email:      p.Email,
		CardHolder: p.CardHolder,
		CardLast4:  p.CardLast4,
		Amount:     p.Amount,
		Currency:   p.Currency,
		PaidAt:     p.PaidAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	p.ID = m.ID
	return nil
}
