package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/vanshsoma/PesuConnect/internal/dto"
	"github.com/vanshsoma/PesuConnect/internal/model"
	"github.com/vanshsoma/PesuConnect/internal/validation"
)

// ── 测试辅助 ──

func setupTestProjectService() (ProjectService, *mockRepos) {
	repo, mocks := newMockRepository()
	svc := NewProjectService(repo, zap.NewNop())
	return svc, mocks
}

// ── Create 测试 ──

func TestProjectService_Create_Success(t *testing.T) {
	svc, _ := setupTestProjectService()

	deadline := today().AddDate(0, 0, 14)
	req := &dto.CreateProjectRequest{
		Title:       "数据结构课程助教网站",
		Description: "搭建作业提交与评分站点",
		Deadline:    deadline.Format(dateLayout),
	}

	result, err := svc.Create(context.Background(), req, "owner-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != model.ProjectStatusOpen {
		t.Errorf("新项目应为 Open，实际=%s", result.Status)
	}
	if result.PostDate != today().Format(dateLayout) {
		t.Errorf("发布日期应由服务端定为当天，实际=%s", result.PostDate)
	}
	if result.Deadline != deadline.Format(dateLayout) {
		t.Errorf("期望截止日=%s，实际=%s", deadline.Format(dateLayout), result.Deadline)
	}
}

// 截止日等于当天视为非法（必须严格晚于今天）
func TestProjectService_Create_DeadlineToday(t *testing.T) {
	svc, _ := setupTestProjectService()

	req := &dto.CreateProjectRequest{
		Title:    "测试项目",
		Deadline: today().Format(dateLayout),
	}

	_, err := svc.Create(context.Background(), req, "owner-001")
	if !errors.Is(err, validation.ErrDeadlineNotFuture) {
		t.Errorf("期望 ErrDeadlineNotFuture，实际: %v", err)
	}
}

func TestProjectService_Create_DeadlinePast(t *testing.T) {
	svc, _ := setupTestProjectService()

	req := &dto.CreateProjectRequest{
		Title:    "测试项目",
		Deadline: today().AddDate(0, 0, -1).Format(dateLayout),
	}

	_, err := svc.Create(context.Background(), req, "owner-001")
	if !errors.Is(err, validation.ErrDeadlineNotFuture) {
		t.Errorf("期望 ErrDeadlineNotFuture，实际: %v", err)
	}
}

func TestProjectService_Create_BadDateFormat(t *testing.T) {
	svc, _ := setupTestProjectService()

	req := &dto.CreateProjectRequest{
		Title:    "测试项目",
		Deadline: "14/02/2027",
	}

	_, err := svc.Create(context.Background(), req, "owner-001")
	if !errors.Is(err, ErrProjectDateInvalid) {
		t.Errorf("期望 ErrProjectDateInvalid，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestProjectService_Update_NotOwner(t *testing.T) {
	svc, mocks := setupTestProjectService()
	projectID := seedOpenProject(mocks, "owner-001", today().AddDate(0, 0, 14))

	newTitle := "改名"
	_, err := svc.Update(context.Background(), projectID, &dto.UpdateProjectRequest{Title: &newTitle}, "stu-x")
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("期望 ErrNotOwner，实际: %v", err)
	}
}

func TestProjectService_Update_Success(t *testing.T) {
	svc, mocks := setupTestProjectService()
	projectID := seedOpenProject(mocks, "owner-001", today().AddDate(0, 0, 14))

	newTitle := "课程网站开发（二期）"
	newDeadline := today().AddDate(0, 0, 30).Format(dateLayout)
	result, err := svc.Update(context.Background(), projectID, &dto.UpdateProjectRequest{
		Title:    &newTitle,
		Deadline: &newDeadline,
	}, "owner-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Title != newTitle {
		t.Errorf("期望Title=%s，实际=%s", newTitle, result.Title)
	}
	if result.Deadline != newDeadline {
		t.Errorf("期望Deadline=%s，实际=%s", newDeadline, result.Deadline)
	}
	// 发布日期不可变更
	if result.PostDate != today().Format(dateLayout) {
		t.Errorf("发布日期不应被改写，实际=%s", result.PostDate)
	}
}

func TestProjectService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestProjectService()

	newTitle := "x"
	_, err := svc.Update(context.Background(), "missing", &dto.UpdateProjectRequest{Title: &newTitle}, "owner-001")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("期望 ErrProjectNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestProjectService_Delete_OwnerOnly(t *testing.T) {
	svc, mocks := setupTestProjectService()
	projectID := seedOpenProject(mocks, "owner-001", today().AddDate(0, 0, 14))

	if err := svc.Delete(context.Background(), projectID, "stu-x"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("期望 ErrNotOwner，实际: %v", err)
	}

	if err := svc.Delete(context.Background(), projectID, "owner-001"); err != nil {
		t.Fatalf("所有者删除应成功: %v", err)
	}
	if _, ok := mocks.project.projects[projectID]; ok {
		t.Error("项目应已被删除")
	}
}

// ── ListMine 测试 ──

func TestProjectService_ListMine_PendingCounts(t *testing.T) {
	svc, mocks := setupTestProjectService()
	projectID := seedOpenProject(mocks, "owner-001", today().AddDate(0, 0, 14))
	seedPendingApplication(mocks, "stu-b", projectID)
	seedPendingApplication(mocks, "stu-c", projectID)
	appD := seedPendingApplication(mocks, "stu-d", projectID)
	_ = mocks.application.UpdateStatus(context.Background(), appD, model.ApplicationStatusRejected)

	result, err := svc.ListMine(context.Background(), "owner-001")
	if err != nil {
		t.Fatalf("ListMine 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("期望 1 个项目，实际=%d", len(result))
	}
	if result[0].PendingApplications != 2 {
		t.Errorf("期望待处理申请数=2，实际=%d", result[0].PendingApplications)
	}
}

// ── Search 测试 ──

func TestProjectService_Search_KeywordAndStatus(t *testing.T) {
	svc, mocks := setupTestProjectService()
	owner := "owner-001"
	_ = mocks.project.Create(context.Background(), &model.Project{
		OwnerID: &owner, Title: "网站开发", Description: "前端",
		PostDate: today(), Deadline: today().AddDate(0, 0, 10), Status: model.ProjectStatusOpen,
	})
	_ = mocks.project.Create(context.Background(), &model.Project{
		OwnerID: &owner, Title: "海报设计", Description: "社团宣传",
		PostDate: today(), Deadline: today().AddDate(0, 0, 10), Status: model.ProjectStatusOpen,
	})
	_ = mocks.project.Create(context.Background(), &model.Project{
		OwnerID: &owner, Title: "网站维护", Description: "后端",
		PostDate: today(), Deadline: today().AddDate(0, 0, 10), Status: model.ProjectStatusCompleted,
	})

	// 关键词过滤
	list, total, err := svc.Search(context.Background(), &dto.SearchProjectRequest{Keyword: "网站"})
	if err != nil {
		t.Fatalf("Search 应成功: %v", err)
	}
	if total != 2 {
		t.Errorf("关键词[网站]期望 2 条，实际=%d", total)
	}

	// 关键词 + 状态
	list, total, err = svc.Search(context.Background(), &dto.SearchProjectRequest{
		Keyword: "网站",
		Status:  model.ProjectStatusOpen,
	})
	if err != nil {
		t.Fatalf("Search 应成功: %v", err)
	}
	if total != 1 {
		t.Errorf("关键词[网站]+状态[Open]期望 1 条，实际=%d", total)
	}
	if len(list) != 1 || list[0].Title != "网站开发" {
		t.Errorf("期望命中[网站开发]，实际=%+v", list)
	}

	// 无条件匹配全部
	_, total, err = svc.Search(context.Background(), &dto.SearchProjectRequest{})
	if err != nil {
		t.Fatalf("Search 应成功: %v", err)
	}
	if total != 3 {
		t.Errorf("无条件搜索期望 3 条，实际=%d", total)
	}
}
