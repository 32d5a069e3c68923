package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/supertask-api/internal/models"
	"github.com/yukikurage/supertask-api/internal/testutil"
)

type CategoryServiceTestSuite struct {
	serviceSuite
}

func (s *CategoryServiceTestSuite) TestCreateCategory_DefaultColor() {
	category, err := s.categories.CreateCategory(s.ctx, CreateCategoryInput{UserID: s.owner.ID, Name: "  Work  "})
	s.Require().NoError(err)
	s.Equal("Work", category.Name)
	s.Equal("#007bff", category.Color)
	s.Equal(int64(0), category.TaskCount)
}

func (s *CategoryServiceTestSuite) TestCreateCategory_NameRequired() {
	_, err := s.categories.CreateCategory(s.ctx, CreateCategoryInput{UserID: s.owner.ID, Name: "   "})
	s.ErrorIs(err, ErrCategoryNameRequired)
}

func (s *CategoryServiceTestSuite) TestCreateCategory_DuplicatePerOwner() {
	_, err := s.categories.CreateCategory(s.ctx, CreateCategoryInput{UserID: s.owner.ID, Name: "Work"})
	s.Require().NoError(err)

	_, err = s.categories.CreateCategory(s.ctx, CreateCategoryInput{UserID: s.owner.ID, Name: "Work"})
	s.ErrorIs(err, ErrCategoryNameTaken)

	_, err = s.categories.CreateCategory(s.ctx, CreateCategoryInput{UserID: s.other.ID, Name: "Work"})
	s.NoError(err)
}

func (s *CategoryServiceTestSuite) TestListCategories_WithTaskCounts() {
	work := testutil.CreateCategory(s.T(), s.db, s.owner.ID, "Work", "#111111")
	testutil.CreateCategory(s.T(), s.db, s.owner.ID, "Alpha", "#111111")
	testutil.CreateCategory(s.T(), s.db, s.other.ID, "Hidden", "#111111")
	testutil.CreateTask(s.T(), s.db, s.owner.ID, models.Task{Title: "a", CategoryID: &work.ID})

	categories, err := s.categories.ListCategories(s.ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Require().Len(categories, 2)
	s.Equal("Alpha", categories[0].Name)
	s.Equal(int64(0), categories[0].TaskCount)
	s.Equal("Work", categories[1].Name)
	s.Equal(int64(1), categories[1].TaskCount)
}

func (s *CategoryServiceTestSuite) TestGetCategory_ForeignIsNotFound() {
	theirs := testutil.CreateCategory(s.T(), s.db, s.other.ID, "Theirs", "#111111")

	_, err := s.categories.GetCategory(s.ctx, s.owner.ID, theirs.ID)
	s.ErrorIs(err, ErrCategoryNotFound)
}

func (s *CategoryServiceTestSuite) TestUpdateCategory() {
	work := testutil.CreateCategory(s.T(), s.db, s.owner.ID, "Work", "#111111")
	testutil.CreateCategory(s.T(), s.db, s.owner.ID, "Home", "#222222")

	color := "#abcdef"
	updated, err := s.categories.UpdateCategory(s.ctx, s.owner.ID, work.ID, UpdateCategoryInput{Color: &color})
	s.Require().NoError(err)
	s.Equal("Work", updated.Name)
	s.Equal("#abcdef", updated.Color)

	same := "Work"
	_, err = s.categories.UpdateCategory(s.ctx, s.owner.ID, work.ID, UpdateCategoryInput{Name: &same})
	s.NoError(err)

	taken := "Home"
	_, err = s.categories.UpdateCategory(s.ctx, s.owner.ID, work.ID, UpdateCategoryInput{Name: &taken})
	s.ErrorIs(err, ErrCategoryNameTaken)

	_, err = s.categories.UpdateCategory(s.ctx, s.other.ID, work.ID, UpdateCategoryInput{Color: &color})
	s.ErrorIs(err, ErrCategoryNotFound)
}

func (s *CategoryServiceTestSuite) TestDeleteCategory_KeepsTasks() {
	work := testutil.CreateCategory(s.T(), s.db, s.owner.ID, "Work", "#111111")
	task := testutil.CreateTask(s.T(), s.db, s.owner.ID, models.Task{Title: "a", CategoryID: &work.ID})

	s.ErrorIs(s.categories.DeleteCategory(s.ctx, s.other.ID, work.ID), ErrCategoryNotFound)
	s.Require().NoError(s.categories.DeleteCategory(s.ctx, s.owner.ID, work.ID))

	reloaded, err := s.tasks.GetTask(s.ctx, s.owner.ID, task.ID)
	s.Require().NoError(err)
	s.Nil(reloaded.CategoryID)
	s.Nil(reloaded.Category)
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
