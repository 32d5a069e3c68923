package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/supertask-api/internal/models"
	"github.com/yukikurage/supertask-api/internal/testutil"
	"gorm.io/gorm"
)

// TaskRepositoryTestSuite defines the test suite for GormTaskRepository
type TaskRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	repo  TaskRepository
	ctx   context.Context
	owner *models.User
	other *models.User
}

// SetupTest runs before each test
func (suite *TaskRepositoryTestSuite) SetupTest() {
	suite.db = testutil.NewTestDB(suite.T())
	suite.repo = NewTaskRepository(suite.db)
	suite.ctx = context.Background()
	suite.owner = testutil.CreateUser(suite.T(), suite.db, "alice")
	suite.other = testutil.CreateUser(suite.T(), suite.db, "bob")
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func (suite *TaskRepositoryTestSuite) TestCreate_SetsCompletedAtForCompletedTask() {
	task := &models.Task{
		Title:    "done already",
		Priority: models.TaskPriorityLow,
		Status:   models.TaskStatusCompleted,
		UserID:   suite.owner.ID,
	}
	suite.Require().NoError(suite.repo.Create(suite.ctx, task))

	found, err := suite.repo.FindOwned(suite.ctx, suite.owner.ID, task.ID)
	suite.Require().NoError(err)
	suite.NotNil(found.CompletedAt)
}

func (suite *TaskRepositoryTestSuite) TestFindOwned_ForeignTaskIsNotFound() {
	task := testutil.CreateTask(suite.T(), suite.db, suite.other.ID, models.Task{Title: "bob's"})

	_, err := suite.repo.FindOwned(suite.ctx, suite.owner.ID, task.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *TaskRepositoryTestSuite) TestFindOwned_PreloadsCategory() {
	category := testutil.CreateCategory(suite.T(), suite.db, suite.owner.ID, "Work", "#111111")
	task := testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "t", CategoryID: &category.ID})

	found, err := suite.repo.FindOwned(suite.ctx, suite.owner.ID, task.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(found.Category)
	suite.Equal("Work", found.Category.Name)
}

func (suite *TaskRepositoryTestSuite) TestList_OnlyOwnerTasks() {
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "mine"})
	testutil.CreateTask(suite.T(), suite.db, suite.other.ID, models.Task{Title: "theirs"})

	tasks, total, err := suite.repo.List(suite.ctx, TaskFilter{UserID: suite.owner.ID})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal([]string{"mine"}, titles(tasks))
}

func (suite *TaskRepositoryTestSuite) TestList_Filters() {
	category := testutil.CreateCategory(suite.T(), suite.db, suite.owner.ID, "Work", "#111111")
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{
		Title: "high work", Priority: models.TaskPriorityHigh, CategoryID: &category.ID,
	})
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{
		Title: "high loose", Priority: models.TaskPriorityHigh,
	})
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{
		Title: "low done", Priority: models.TaskPriorityLow, Status: models.TaskStatusCompleted,
	})

	high := models.TaskPriorityHigh
	tasks, total, err := suite.repo.List(suite.ctx, TaskFilter{
		UserID:     suite.owner.ID,
		Priority:   &high,
		CategoryID: &category.ID,
	})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal([]string{"high work"}, titles(tasks))

	completed := models.TaskStatusCompleted
	tasks, _, err = suite.repo.List(suite.ctx, TaskFilter{UserID: suite.owner.ID, Status: &completed})
	suite.Require().NoError(err)
	suite.Equal([]string{"low done"}, titles(tasks))
}

func (suite *TaskRepositoryTestSuite) TestList_DueDateRangeAndExcludeCompleted() {
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "yesterday", DueDate: date(2025, 3, 9)})
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{
		Title: "yesterday done", DueDate: date(2025, 3, 9), Status: models.TaskStatusCompleted,
	})
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "today", DueDate: date(2025, 3, 10)})
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "tomorrow", DueDate: date(2025, 3, 11)})
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "undated"})

	today := date(2025, 3, 10)
	tomorrow := date(2025, 3, 11)

	tasks, _, err := suite.repo.List(suite.ctx, TaskFilter{UserID: suite.owner.ID, DueFrom: today, DueTo: tomorrow})
	suite.Require().NoError(err)
	suite.Equal([]string{"today"}, titles(tasks))

	tasks, _, err = suite.repo.List(suite.ctx, TaskFilter{UserID: suite.owner.ID, DueTo: today, ExcludeCompleted: true})
	suite.Require().NoError(err)
	suite.Equal([]string{"yesterday"}, titles(tasks))
}

func (suite *TaskRepositoryTestSuite) TestList_PriorityOrdering() {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, p := range []models.TaskPriority{models.TaskPriorityLow, models.TaskPriorityHigh, models.TaskPriorityMedium} {
		testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{
			Title: string(p), Priority: p, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	tasks, _, err := suite.repo.List(suite.ctx, TaskFilter{UserID: suite.owner.ID, Ordering: "priority"})
	suite.Require().NoError(err)
	suite.Equal([]string{"high", "medium", "low"}, titles(tasks))
}

func (suite *TaskRepositoryTestSuite) TestList_DueDateOrdering() {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "undated", CreatedAt: base})
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "later", DueDate: date(2025, 5, 2), CreatedAt: base})
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "sooner old", DueDate: date(2025, 5, 1), CreatedAt: base})
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{
		Title: "sooner new", DueDate: date(2025, 5, 1), CreatedAt: base.Add(time.Hour),
	})

	tasks, _, err := suite.repo.List(suite.ctx, TaskFilter{UserID: suite.owner.ID, Ordering: "due_date"})
	suite.Require().NoError(err)
	suite.Equal([]string{"sooner new", "sooner old", "later", "undated"}, titles(tasks))
}

func (suite *TaskRepositoryTestSuite) TestList_DefaultAndColumnOrdering() {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "b", CreatedAt: base})
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "a", CreatedAt: base.Add(time.Minute)})
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "c", CreatedAt: base.Add(2 * time.Minute)})

	tasks, _, err := suite.repo.List(suite.ctx, TaskFilter{UserID: suite.owner.ID})
	suite.Require().NoError(err)
	suite.Equal([]string{"c", "a", "b"}, titles(tasks))

	tasks, _, err = suite.repo.List(suite.ctx, TaskFilter{UserID: suite.owner.ID, Ordering: "title"})
	suite.Require().NoError(err)
	suite.Equal([]string{"a", "b", "c"}, titles(tasks))

	tasks, _, err = suite.repo.List(suite.ctx, TaskFilter{UserID: suite.owner.ID, Ordering: "-title"})
	suite.Require().NoError(err)
	suite.Equal([]string{"c", "b", "a"}, titles(tasks))

	tasks, _, err = suite.repo.List(suite.ctx, TaskFilter{UserID: suite.owner.ID, Ordering: "password; DROP TABLE tasks"})
	suite.Require().NoError(err)
	suite.Equal([]string{"c", "a", "b"}, titles(tasks))
}

func (suite *TaskRepositoryTestSuite) TestList_Pagination() {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"1", "2", "3", "4", "5"} {
		testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{
			Title: title, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	tasks, total, err := suite.repo.List(suite.ctx, TaskFilter{UserID: suite.owner.ID, Ordering: "created_at", Offset: 2, Limit: 2})
	suite.Require().NoError(err)
	suite.Equal(int64(5), total)
	suite.Equal([]string{"3", "4"}, titles(tasks))
}

func (suite *TaskRepositoryTestSuite) TestListForStats() {
	testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "a", Priority: models.TaskPriorityHigh})
	testutil.CreateTask(suite.T(), suite.db, suite.other.ID, models.Task{Title: "b"})

	tasks, err := suite.repo.ListForStats(suite.ctx, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 1)
	suite.Equal(models.TaskPriorityHigh, tasks[0].Priority)
}

func (suite *TaskRepositoryTestSuite) TestUpdate_ClearsCompletedAt() {
	task := testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "t", Status: models.TaskStatusCompleted})
	suite.Require().NotNil(task.CompletedAt)

	found, err := suite.repo.FindOwned(suite.ctx, suite.owner.ID, task.ID)
	suite.Require().NoError(err)
	found.Status = models.TaskStatusPending
	suite.Require().NoError(suite.repo.Update(suite.ctx, found))

	reloaded, err := suite.repo.FindOwned(suite.ctx, suite.owner.ID, task.ID)
	suite.Require().NoError(err)
	suite.Nil(reloaded.CompletedAt)
}

func (suite *TaskRepositoryTestSuite) TestUpdate_CategoryIDWinsOverPreloadedCategory() {
	work := testutil.CreateCategory(suite.T(), suite.db, suite.owner.ID, "Work", "#111111")
	home := testutil.CreateCategory(suite.T(), suite.db, suite.owner.ID, "Home", "#222222")
	task := testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "t", CategoryID: &work.ID})

	found, err := suite.repo.FindOwned(suite.ctx, suite.owner.ID, task.ID)
	suite.Require().NoError(err)
	found.CategoryID = &home.ID
	suite.Require().NoError(suite.repo.Update(suite.ctx, found))

	reloaded, err := suite.repo.FindOwned(suite.ctx, suite.owner.ID, task.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(reloaded.CategoryID)
	suite.Equal(home.ID, *reloaded.CategoryID)
}

func (suite *TaskRepositoryTestSuite) TestDeleteOwned() {
	mine := testutil.CreateTask(suite.T(), suite.db, suite.owner.ID, models.Task{Title: "mine"})
	theirs := testutil.CreateTask(suite.T(), suite.db, suite.other.ID, models.Task{Title: "theirs"})

	suite.ErrorIs(suite.repo.DeleteOwned(suite.ctx, suite.owner.ID, theirs.ID), gorm.ErrRecordNotFound)
	suite.NoError(suite.repo.DeleteOwned(suite.ctx, suite.owner.ID, mine.ID))

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Equal(int64(1), count)
}

func TestTaskOrderClauses(t *testing.T) {
	suite.Run(t, new(orderClausesSuite))
}

type orderClausesSuite struct {
	suite.Suite
}

func (s *orderClausesSuite) TestSpecialValues() {
	s.Equal([]string{priorityRankOrder}, TaskOrderClauses("priority"))
	s.Len(TaskOrderClauses("due_date"), 3)
}

func (s *orderClausesSuite) TestColumns() {
	s.Equal([]string{"tasks.title ASC"}, TaskOrderClauses("title"))
	s.Equal([]string{"tasks.due_date DESC"}, TaskOrderClauses("-due_date"))
	s.Equal([]string{"tasks.priority DESC"}, TaskOrderClauses("-priority"))
}

func (s *orderClausesSuite) TestFallback() {
	s.Equal([]string{"tasks.created_at DESC"}, TaskOrderClauses(""))
	s.Equal([]string{"tasks.created_at DESC"}, TaskOrderClauses("user_id"))
	s.Equal([]string{"tasks.created_at DESC"}, TaskOrderClauses("--title"))
}

// TestTaskRepositoryTestSuite runs the test suite
func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}
