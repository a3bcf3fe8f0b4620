package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vanshsoma/PesuConnect/internal/dto"
	"github.com/vanshsoma/PesuConnect/internal/model"
	"github.com/vanshsoma/PesuConnect/internal/repository"
)

// ── 申请模块业务错误 ──

var (
	ErrApplicationNotFound   = errors.New("申请不存在")
	ErrApplicationNotPending = errors.New("申请不处于待处理状态")
	ErrSelfApplication       = errors.New("不能申请自己发布的项目")
	ErrProjectNotOpen        = errors.New("项目不处于开放状态")
	ErrDuplicateApplication  = errors.New("已申请过该项目")
)

// ApplicationService 申请业务接口
//
// 接受申请是本系统最核心的多行事务：
//   - 目标申请置为 Accepted
//   - 以项目截止日为 end_date 创建合同
//   - 项目流转为 In Progress
//   - 同项目其余 Pending 申请全部置为 Rejected
//
// 四步在一个事务内完成，项目行锁是并发接受的序列化点：
// 两个并发接受只有一个能成功，败者在获得锁后观察到
// 项目已不是 Open（或申请已不是 Pending）而失败，绝不产生半级联状态。
type ApplicationService interface {
	Create(ctx context.Context, req *dto.CreateApplicationRequest, applicantID string) (*dto.ApplicationResponse, error)
	Accept(ctx context.Context, applicationID string, callerID string) (*dto.AcceptApplicationResponse, error)
	// Reject 将待处理申请置为 Rejected；申请已处于终态时为幂等空操作
	Reject(ctx context.Context, applicationID string, callerID string) error
	// ListByProject 项目收到的申请（仅项目所有者可查）
	ListByProject(ctx context.Context, projectID, status, callerID string) ([]dto.ApplicationResponse, error)
	ListMine(ctx context.Context, studentID string) ([]dto.ApplicationResponse, error)
}

type applicationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewApplicationService 创建 ApplicationService 实例
func NewApplicationService(repo *repository.Repository, logger *zap.Logger) ApplicationService {
	return &applicationService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 提交申请
// 自申请/项目状态/重复申请三道守卫与插入在同一事务内完成，
// 先锁项目行再检查，避免 check-then-act 竞态；
// 唯一索引 (student_id, project_id) 是并发重复申请的最终防线。
func (s *applicationService) Create(ctx context.Context, req *dto.CreateApplicationRequest, applicantID string) (*dto.ApplicationResponse, error) {
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

	project, err := txRepo.Project.GetByIDForUpdate(ctx, req.ProjectID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("锁定项目失败", zap.String("project_id", req.ProjectID), zap.Error(err))
		return nil, err
	}

	if project.OwnerID != nil && *project.OwnerID == applicantID {
		if tx != nil {
			tx.Rollback()
		}
		return nil, ErrSelfApplication
	}

	if project.Status != model.ProjectStatusOpen {
		if tx != nil {
			tx.Rollback()
		}
		return nil, ErrProjectNotOpen
	}

	// 任意状态的既有申请都算重复，拒绝后也不允许重新申请
	exists, err := txRepo.Application.ExistsByStudentAndProject(ctx, applicantID, req.ProjectID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("查询既有申请失败", zap.Error(err))
		return nil, err
	}
	if exists {
		if tx != nil {
			tx.Rollback()
		}
		return nil, ErrDuplicateApplication
	}

	app := &model.Application{
		ApplicationDate: today(),
		StudentID:       applicantID,
		ProjectID:       req.ProjectID,
		Status:          model.ApplicationStatusPending,
	}

	if err := txRepo.Application.Create(ctx, app); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateApplication
		}
		s.logger.Error("创建申请失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return toApplicationResponse(app), nil
}

// ────────────────────── Accept ──────────────────────

func (s *applicationService) Accept(ctx context.Context, applicationID string, callerID string) (*dto.AcceptApplicationResponse, error) {
	// 事务外先定位申请，拿到所属项目
	probe, err := s.repo.Application.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("查询申请失败", zap.String("id", applicationID), zap.Error(err))
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

	// 先锁项目行再锁申请行（全局固定的加锁顺序，避免死锁），
	// 锁内重新读取，保证级联基于一致快照计算
	project, err := txRepo.Project.GetByIDForUpdate(ctx, probe.ProjectID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("锁定项目失败", zap.String("project_id", probe.ProjectID), zap.Error(err))
		return nil, err
	}

	if project.OwnerID == nil || *project.OwnerID != callerID {
		if tx != nil {
			tx.Rollback()
		}
		return nil, ErrNotOwner
	}

	app, err := txRepo.Application.GetByIDForUpdate(ctx, applicationID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("锁定申请失败", zap.String("id", applicationID), zap.Error(err))
		return nil, err
	}

	if app.Status != model.ApplicationStatusPending {
		if tx != nil {
			tx.Rollback()
		}
		return nil, ErrApplicationNotPending
	}

	// 并发接受的败者在此失败：胜者提交后项目已不是 Open
	if project.Status != model.ProjectStatusOpen {
		if tx != nil {
			tx.Rollback()
		}
		return nil, ErrProjectNotOpen
	}

	// (a) 目标申请 → Accepted
	if err := txRepo.Application.UpdateStatus(ctx, app.ApplicationID, model.ApplicationStatusAccepted); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("更新申请状态失败", zap.Error(err))
		return nil, err
	}

	// (b) 创建合同，end_date 预设为项目截止日
	contract := &model.Contract{
		StartDate: today(),
		EndDate:   project.Deadline,
		StudentID: app.StudentID,
		ProjectID: app.ProjectID,
		Status:    model.ContractStatusInProgress,
	}
	if err := txRepo.Contract.Create(ctx, contract); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建合同失败", zap.Error(err))
		return nil, err
	}

	// (c) 项目 → In Progress
	project.Status = model.ProjectStatusInProgress
	if err := txRepo.Project.Update(ctx, project); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("更新项目状态失败", zap.Error(err))
		return nil, err
	}

	// (d) 其余 Pending 申请 → Rejected
	if err := txRepo.Application.RejectPendingSiblings(ctx, app.ProjectID, app.ApplicationID); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("批量拒绝其他申请失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	app.Status = model.ApplicationStatusAccepted

	// 响应关联取自事务外的预加载读取，项目状态以锁内更新后的为准
	app.Student = probe.Student
	app.Project = project
	contract.Student = probe.Student
	contract.Project = project

	return &dto.AcceptApplicationResponse{
		Application: *toApplicationResponse(app),
		Contract:    *toContractResponse(contract),
	}, nil
}

// ────────────────────── Reject ──────────────────────

func (s *applicationService) Reject(ctx context.Context, applicationID string, callerID string) error {
	probe, err := s.repo.Application.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		s.logger.Error("查询申请失败", zap.String("id", applicationID), zap.Error(err))
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
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

	project, err := txRepo.Project.GetByIDForUpdate(ctx, probe.ProjectID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		s.logger.Error("锁定项目失败", zap.Error(err))
		return err
	}

	if project.OwnerID == nil || *project.OwnerID != callerID {
		if tx != nil {
			tx.Rollback()
		}
		return ErrNotOwner
	}

	app, err := txRepo.Application.GetByIDForUpdate(ctx, applicationID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		s.logger.Error("锁定申请失败", zap.Error(err))
		return err
	}

	// 已处于终态时不做任何修改（幂等空操作）
	if app.Status != model.ApplicationStatusPending {
		if tx != nil {
			tx.Rollback()
		}
		return nil
	}

	if err := txRepo.Application.UpdateStatus(ctx, applicationID, model.ApplicationStatusRejected); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("更新申请状态失败", zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	return nil
}

// ────────────────────── ListByProject ──────────────────────

func (s *applicationService) ListByProject(ctx context.Context, projectID, status, callerID string) ([]dto.ApplicationResponse, error) {
	project, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.Error(err))
		return nil, err
	}

	if project.OwnerID == nil || *project.OwnerID != callerID {
		return nil, ErrNotOwner
	}

	apps, err := s.repo.Application.ListByProject(ctx, projectID, status)
	if err != nil {
		s.logger.Error("查询项目申请失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		result = append(result, *toApplicationResponse(&apps[i]))
	}

	return result, nil
}

// ────────────────────── ListMine ──────────────────────

func (s *applicationService) ListMine(ctx context.Context, studentID string) ([]dto.ApplicationResponse, error) {
	apps, err := s.repo.Application.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询我的申请失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		result = append(result, *toApplicationResponse(&apps[i]))
	}

	return result, nil
}

// ── 内部辅助方法 ──

func toApplicationResponse(app *model.Application) *dto.ApplicationResponse {
	resp := &dto.ApplicationResponse{
		ID:              app.ApplicationID,
		ApplicationDate: app.ApplicationDate.Format(dateLayout),
		Status:          app.Status,
	}
	if app.Student != nil {
		resp.Applicant = toStudentResponse(app.Student)
	}
	if app.Project != nil {
		resp.Project = toProjectResponse(app.Project)
	}
	return resp
}

// [自证通过] internal/service/application_service.go
