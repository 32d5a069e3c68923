package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/supertask-api/internal/models"
	"github.com/yukikurage/supertask-api/internal/repository"
	"github.com/yukikurage/supertask-api/internal/testutil"
	"gorm.io/gorm"
)

// fixedNow is 2025-03-10 in UTC
var fixedNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func fixedClock() Clock {
	return Clock{Location: time.UTC, NowFunc: func() time.Time { return fixedNow }}
}

func day(offset int) *time.Time {
	d := time.Date(2025, 3, 10+offset, 0, 0, 0, 0, time.UTC)
	return &d
}

// serviceSuite wires every service against a fresh in-memory database
type serviceSuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context

	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	taskRepo     repository.TaskRepository

	categories  *CategoryService
	tasks       *TaskService
	dashboard   *DashboardService
	provisioner *Provisioner
	auth        *AuthService

	owner *models.User
	other *models.User
}

// SetupTest runs before each test
func (s *serviceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.ctx = context.Background()

	s.userRepo = repository.NewUserRepository(s.db)
	s.categoryRepo = repository.NewCategoryRepository(s.db)
	s.taskRepo = repository.NewTaskRepository(s.db)

	clock := fixedClock()
	s.categories = NewCategoryService(s.categoryRepo)
	s.tasks = NewTaskService(s.taskRepo, s.categoryRepo, clock)
	s.dashboard = NewDashboardService(s.taskRepo, s.categoryRepo, clock)
	s.provisioner = NewProvisioner(s.userRepo, s.categoryRepo)
	s.auth = NewAuthService(s.userRepo, s.provisioner)

	s.owner = testutil.CreateUser(s.T(), s.db, "alice")
	s.other = testutil.CreateUser(s.T(), s.db, "bob")
}
