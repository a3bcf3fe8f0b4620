package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/vanshsoma/PesuConnect/internal/model"
	"github.com/vanshsoma/PesuConnect/internal/repository"
)

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	for _, s := range m.students {
		if s.Email == student.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if student.StudentID == "" {
		student.StudentID = fmt.Sprintf("stu-%03d", len(m.students)+1)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	for _, s := range m.students {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	projects map[string]*model.Project
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project) error {
	if project.ProjectID == "" {
		project.ProjectID = fmt.Sprintf("proj-%03d", len(m.projects)+1)
	}
	m.projects[project.ProjectID] = project
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Project, error) {
	return m.GetByID(ctx, id)
}

func (m *mockProjectRepo) Update(_ context.Context, project *model.Project) error {
	m.projects[project.ProjectID] = project
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id string) error {
	delete(m.projects, id)
	return nil
}

func (m *mockProjectRepo) ListByOwner(_ context.Context, ownerID string) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if p.OwnerID != nil && *p.OwnerID == ownerID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) Search(_ context.Context, filter repository.ProjectSearchFilter, offset, limit int) ([]model.Project, int64, error) {
	var matched []model.Project
	kw := strings.ToLower(filter.Keyword)
	for _, p := range m.projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if kw != "" &&
			!strings.Contains(strings.ToLower(p.Title), kw) &&
			!strings.Contains(strings.ToLower(p.Description), kw) {
			continue
		}
		matched = append(matched, *p)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ── Mock ApplicationRepository ──

// mockApplicationRepo 引用学生/项目 mock 以模拟 Preload 的关联填充
type mockApplicationRepo struct {
	applications map[string]*model.Application
	students     *mockStudentRepo
	projects     *mockProjectRepo
}

func newMockApplicationRepo(students *mockStudentRepo, projects *mockProjectRepo) *mockApplicationRepo {
	return &mockApplicationRepo{
		applications: make(map[string]*model.Application),
		students:     students,
		projects:     projects,
	}
}

func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	for _, a := range m.applications {
		if a.StudentID == app.StudentID && a.ProjectID == app.ProjectID {
			return gorm.ErrDuplicatedKey
		}
	}
	if app.ApplicationID == "" {
		app.ApplicationID = fmt.Sprintf("app-%03d", len(m.applications)+1)
	}
	m.applications[app.ApplicationID] = app
	return nil
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*model.Application, error) {
	a, ok := m.applications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if s, ok := m.students.students[a.StudentID]; ok {
		a.Student = s
	}
	if p, ok := m.projects.projects[a.ProjectID]; ok {
		a.Project = p
	}
	return a, nil
}

// 行锁读取不做关联预加载，与真实实现一致
func (m *mockApplicationRepo) GetByIDForUpdate(_ context.Context, id string) (*model.Application, error) {
	if a, ok := m.applications[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) ExistsByStudentAndProject(_ context.Context, studentID, projectID string) (bool, error) {
	for _, a := range m.applications {
		if a.StudentID == studentID && a.ProjectID == projectID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, id, status string) error {
	a, ok := m.applications[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

func (m *mockApplicationRepo) RejectPendingSiblings(_ context.Context, projectID, exceptID string) error {
	for _, a := range m.applications {
		if a.ProjectID == projectID && a.ApplicationID != exceptID && a.Status == model.ApplicationStatusPending {
			a.Status = model.ApplicationStatusRejected
		}
	}
	return nil
}

func (m *mockApplicationRepo) ListByProject(_ context.Context, projectID, status string) ([]model.Application, error) {
	var result []model.Application
	for _, a := range m.applications {
		if a.ProjectID != projectID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockApplicationRepo) ListByStudent(_ context.Context, studentID string) ([]model.Application, error) {
	var result []model.Application
	for _, a := range m.applications {
		if a.StudentID == studentID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockApplicationRepo) CountPendingByProject(_ context.Context, projectID string) (int64, error) {
	var count int64
	for _, a := range m.applications {
		if a.ProjectID == projectID && a.Status == model.ApplicationStatusPending {
			count++
		}
	}
	return count, nil
}

// ── Mock ContractRepository ──

// mockContractRepo 引用项目 mock 以模拟 Preload("Project") 的关联填充
type mockContractRepo struct {
	contracts map[string]*model.Contract
	projects  *mockProjectRepo
}

func newMockContractRepo(projects *mockProjectRepo) *mockContractRepo {
	return &mockContractRepo{contracts: make(map[string]*model.Contract), projects: projects}
}

func (m *mockContractRepo) Create(_ context.Context, contract *model.Contract) error {
	if contract.ContractID == "" {
		contract.ContractID = fmt.Sprintf("con-%03d", len(m.contracts)+1)
	}
	m.contracts[contract.ContractID] = contract
	return nil
}

func (m *mockContractRepo) GetByID(_ context.Context, id string) (*model.Contract, error) {
	c, ok := m.contracts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if p, ok := m.projects.projects[c.ProjectID]; ok {
		c.Project = p
	}
	return c, nil
}

func (m *mockContractRepo) GetByIDForUpdate(_ context.Context, id string) (*model.Contract, error) {
	if c, ok := m.contracts[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContractRepo) Update(_ context.Context, contract *model.Contract) error {
	m.contracts[contract.ContractID] = contract
	return nil
}

func (m *mockContractRepo) ListActiveByFreelancer(_ context.Context, studentID string) ([]model.Contract, error) {
	var result []model.Contract
	for _, c := range m.contracts {
		if c.StudentID == studentID && c.Status == model.ContractStatusInProgress {
			cc := *c
			if p, ok := m.projects.projects[c.ProjectID]; ok {
				cc.Project = p
			}
			result = append(result, cc)
		}
	}
	return result, nil
}

func (m *mockContractRepo) ListActiveByOwner(_ context.Context, ownerID string) ([]model.Contract, error) {
	var result []model.Contract
	for _, c := range m.contracts {
		if c.Status != model.ContractStatusInProgress {
			continue
		}
		p, ok := m.projects.projects[c.ProjectID]
		if !ok || p.OwnerID == nil || *p.OwnerID != ownerID {
			continue
		}
		cc := *c
		cc.Project = p
		result = append(result, cc)
	}
	return result, nil
}

func (m *mockContractRepo) ListByFreelancer(_ context.Context, studentID string) ([]model.Contract, error) {
	var result []model.Contract
	for _, c := range m.contracts {
		if c.StudentID == studentID {
			cc := *c
			if p, ok := m.projects.projects[c.ProjectID]; ok {
				cc.Project = p
			}
			result = append(result, cc)
		}
	}
	return result, nil
}

// ── Mock ReviewRepository ──

type mockReviewRepo struct {
	reviews map[string]*model.Review
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{reviews: make(map[string]*model.Review)}
}

func (m *mockReviewRepo) Create(_ context.Context, review *model.Review) error {
	if review.ReviewID == "" {
		review.ReviewID = fmt.Sprintf("rev-%03d", len(m.reviews)+1)
	}
	m.reviews[review.ReviewID] = review
	return nil
}

func (m *mockReviewRepo) ListByStudent(_ context.Context, studentID string) ([]model.Review, error) {
	var result []model.Review
	for _, r := range m.reviews {
		if r.StudentID == studentID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockReviewRepo) AverageRating(_ context.Context, studentID string) (float64, error) {
	var sum, count int
	for _, r := range m.reviews {
		if r.StudentID == studentID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	// 与 SQL ROUND(..., 2) 对齐
	return math.Round(float64(sum)/float64(count)*100) / 100, nil
}

func (m *mockReviewRepo) CountByStudent(_ context.Context, studentID string) (int64, error) {
	var count int64
	for _, r := range m.reviews {
		if r.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

// ── Mock PaymentRepository ──

type mockPaymentRepo struct {
	payments map[string]*model.Payment
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{payments: make(map[string]*model.Payment)}
}

func (m *mockPaymentRepo) Create(_ context.Context, payment *model.Payment) error {
	if payment.PaymentID == "" {
		payment.PaymentID = fmt.Sprintf("pay-%03d", len(m.payments)+1)
	}
	m.payments[payment.PaymentID] = payment
	return nil
}

func (m *mockPaymentRepo) ListByContract(_ context.Context, contractID string) ([]model.Payment, error) {
	var result []model.Payment
	for _, p := range m.payments {
		if p.ContractID != nil && *p.ContractID == contractID {
			result = append(result, *p)
		}
	}
	return result, nil
}

// ── Mock SkillRepository ──

type mockSkillRepo struct {
	skills        map[string]*model.Skill
	studentSkills map[string]*model.StudentSkill // key: studentID+":"+skillID
}

func newMockSkillRepo() *mockSkillRepo {
	return &mockSkillRepo{
		skills:        make(map[string]*model.Skill),
		studentSkills: make(map[string]*model.StudentSkill),
	}
}

func (m *mockSkillRepo) GetByName(_ context.Context, name string) (*model.Skill, error) {
	for _, s := range m.skills {
		if s.SkillName == name {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSkillRepo) Create(_ context.Context, skill *model.Skill) error {
	for _, s := range m.skills {
		if s.SkillName == skill.SkillName {
			return gorm.ErrDuplicatedKey
		}
	}
	if skill.SkillID == "" {
		skill.SkillID = fmt.Sprintf("skill-%03d", len(m.skills)+1)
	}
	m.skills[skill.SkillID] = skill
	return nil
}

func (m *mockSkillRepo) GetStudentSkill(_ context.Context, studentID, skillID string) (*model.StudentSkill, error) {
	if ss, ok := m.studentSkills[studentID+":"+skillID]; ok {
		return ss, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSkillRepo) ListByStudent(_ context.Context, studentID string) ([]model.StudentSkill, error) {
	var result []model.StudentSkill
	for _, ss := range m.studentSkills {
		if ss.StudentID == studentID {
			item := *ss
			if sk, ok := m.skills[ss.SkillID]; ok {
				item.Skill = sk
			}
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *mockSkillRepo) AddStudentSkill(_ context.Context, ss *model.StudentSkill) error {
	key := ss.StudentID + ":" + ss.SkillID
	if _, ok := m.studentSkills[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.studentSkills[key] = ss
	return nil
}

func (m *mockSkillRepo) UpdateProficiency(_ context.Context, studentID, skillID, proficiency string) error {
	if ss, ok := m.studentSkills[studentID+":"+skillID]; ok {
		ss.Proficiency = proficiency
	}
	return nil
}

func (m *mockSkillRepo) RemoveStudentSkill(_ context.Context, studentID, skillID string) error {
	delete(m.studentSkills, studentID+":"+skillID)
	return nil
}

// ── Mock 聚合 ──

type mockRepos struct {
	student     *mockStudentRepo
	project     *mockProjectRepo
	application *mockApplicationRepo
	contract    *mockContractRepo
	review      *mockReviewRepo
	payment     *mockPaymentRepo
	skill       *mockSkillRepo
}

// newMockRepository 构建全 mock 的 Repository 聚合
// db 为空，BeginTx 返回 nil 事务，服务层按无事务路径执行
func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		student: newMockStudentRepo(),
		project: newMockProjectRepo(),
		review:  newMockReviewRepo(),
		payment: newMockPaymentRepo(),
		skill:   newMockSkillRepo(),
	}
	m.application = newMockApplicationRepo(m.student, m.project)
	m.contract = newMockContractRepo(m.project)

	repo := &repository.Repository{
		Student:     m.student,
		Project:     m.project,
		Application: m.application,
		Contract:    m.contract,
		Review:      m.review,
		Payment:     m.payment,
		Skill:       m.skill,
	}
	return repo, m
}
