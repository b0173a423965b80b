package repositories

import (
	"testing"
	"time"

	"fintrack/internal/database"
	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestItemRepository(t *testing.T) {
	suite.Run(t, new(ItemRepositorySuite))
}

type ItemRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo ItemRepositoryInterface
	user *models.User
}

func (s *ItemRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewItemRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, "itemowner")
}

func (s *ItemRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *ItemRepositorySuite) createItem(name string, itemType models.ItemType) *models.Item {
	item := &models.Item{
		Name:   name,
		Type:   itemType,
		UserID: s.user.ID,
	}
	s.Require().NoError(s.repo.Create(item))
	return item
}

func (s *ItemRepositorySuite) TestItemRepository_Create() {
	item := s.createItem("Salary", models.ItemTypeIncome)
	s.NotZero(item.ID)
	s.NotZero(item.CreatedAt)
}

func (s *ItemRepositorySuite) TestItemRepository_Create_DuplicateName() {
	s.createItem("Groceries", models.ItemTypeExpense)

	dup := &models.Item{Name: "Groceries", Type: models.ItemTypeExpense, UserID: s.user.ID}
	err := s.repo.Create(dup)
	s.Equal(ErrItemAlreadyExists, err)

	// The same name under another user is fine
	other := database.CreateTestUser(s.T(), s.db, "otherowner")
	theirs := &models.Item{Name: "Groceries", Type: models.ItemTypeExpense, UserID: other.ID}
	s.NoError(s.repo.Create(theirs))
}

func (s *ItemRepositorySuite) TestItemRepository_GetByID_ScopedToUser() {
	item := s.createItem("Rent", models.ItemTypeExpense)

	found, err := s.repo.GetByID(s.user.ID, item.ID)
	s.NoError(err)
	s.Equal("Rent", found.Name)

	other := database.CreateTestUser(s.T(), s.db, "stranger")
	_, err = s.repo.GetByID(other.ID, item.ID)
	s.Equal(ErrItemNotFound, err)
}

func (s *ItemRepositorySuite) TestItemRepository_GetPage_Pagination() {
	names := []string{"Bonus", "Dividends", "Freelance", "Interest", "Salary"}
	for _, name := range names {
		s.createItem(name, models.ItemTypeIncome)
	}

	query := models.TableQuery{StartRow: 0, EndRow: 2}
	items, total, err := s.repo.GetPage(s.user.ID, query)
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Len(items, 2)

	query = models.TableQuery{StartRow: 4, EndRow: 6}
	items, total, err = s.repo.GetPage(s.user.ID, query)
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Len(items, 1)
}

func (s *ItemRepositorySuite) TestItemRepository_GetPage_FilterContains() {
	s.createItem("Salary", models.ItemTypeIncome)
	s.createItem("Side Salary", models.ItemTypeIncome)
	s.createItem("Groceries", models.ItemTypeExpense)

	query := models.TableQuery{
		StartRow: 0,
		EndRow:   50,
		FilterModel: map[string]models.TableFilter{
			"name": {Filter: "sal", FilterType: models.FilterTypeText, Type: models.FilterOpContains},
		},
	}

	items, total, err := s.repo.GetPage(s.user.ID, query)
	s.NoError(err)
	s.Equal(int64(2), total)
	s.Len(items, 2)
	for _, item := range items {
		s.Contains(item.Name, "Salary")
	}
}

func (s *ItemRepositorySuite) TestItemRepository_GetPage_FilterEquals() {
	s.createItem("Salary", models.ItemTypeIncome)
	s.createItem("Groceries", models.ItemTypeExpense)
	s.createItem("Rent", models.ItemTypeExpense)

	query := models.TableQuery{
		StartRow: 0,
		EndRow:   50,
		FilterModel: map[string]models.TableFilter{
			"type": {Filter: "2", FilterType: models.FilterTypeText, Type: models.FilterOpEquals},
		},
	}

	items, total, err := s.repo.GetPage(s.user.ID, query)
	s.NoError(err)
	s.Equal(int64(2), total)
	for _, item := range items {
		s.Equal(models.ItemTypeExpense, item.Type)
	}
}

func (s *ItemRepositorySuite) TestItemRepository_GetPage_Sort() {
	s.createItem("Rent", models.ItemTypeExpense)
	s.createItem("Groceries", models.ItemTypeExpense)
	s.createItem("Utilities", models.ItemTypeExpense)

	query := models.TableQuery{
		StartRow:  0,
		EndRow:    50,
		SortModel: []models.TableSort{{ColID: "name", Sort: models.SortDescending}},
	}

	items, _, err := s.repo.GetPage(s.user.ID, query)
	s.NoError(err)
	s.Require().Len(items, 3)
	s.Equal("Utilities", items[0].Name)
	s.Equal("Rent", items[1].Name)
	s.Equal("Groceries", items[2].Name)
}

func (s *ItemRepositorySuite) TestItemRepository_GetPage_UnknownColumns() {
	query := models.TableQuery{
		StartRow: 0,
		EndRow:   50,
		FilterModel: map[string]models.TableFilter{
			"password_hash": {Filter: "x", FilterType: models.FilterTypeText, Type: models.FilterOpContains},
		},
	}
	_, _, err := s.repo.GetPage(s.user.ID, query)
	s.ErrorIs(err, ErrInvalidQueryColumn)

	query = models.TableQuery{
		StartRow:  0,
		EndRow:    50,
		SortModel: []models.TableSort{{ColID: "created_at; DROP TABLE items", Sort: models.SortAscending}},
	}
	_, _, err = s.repo.GetPage(s.user.ID, query)
	s.ErrorIs(err, ErrInvalidQueryColumn)
}

func (s *ItemRepositorySuite) TestItemRepository_ListByType() {
	s.createItem("Salary", models.ItemTypeIncome)
	s.createItem("Bonus", models.ItemTypeIncome)
	s.createItem("Groceries", models.ItemTypeExpense)

	options, err := s.repo.ListByType(s.user.ID, models.ItemTypeIncome)
	s.NoError(err)
	s.Require().Len(options, 2)
	s.Equal("Bonus", options[0].Name)
	s.Equal("Salary", options[1].Name)
}

func (s *ItemRepositorySuite) TestItemRepository_Update() {
	item := s.createItem("Grocceries", models.ItemTypeExpense)

	item.Name = "Groceries"
	err := s.repo.Update(item)
	s.NoError(err)

	updated, err := s.repo.GetByID(s.user.ID, item.ID)
	s.NoError(err)
	s.Equal("Groceries", updated.Name)
}

func (s *ItemRepositorySuite) TestItemRepository_Delete() {
	item := s.createItem("Obsolete", models.ItemTypeExpense)

	err := s.repo.Delete(s.user.ID, item.ID)
	s.NoError(err)

	_, err = s.repo.GetByID(s.user.ID, item.ID)
	s.Equal(ErrItemNotFound, err)

	err = s.repo.Delete(s.user.ID, 99999)
	s.Equal(ErrItemNotFound, err)
}

func (s *ItemRepositorySuite) TestItemRepository_Delete_InUse() {
	item := s.createItem("Groceries", models.ItemTypeExpense)

	entry := &models.Entry{
		Kind:   models.EntryKindExpense,
		Date:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("42.50"),
		ItemID: item.ID,
		UserID: s.user.ID,
	}
	s.Require().NoError(s.db.Create(entry).Error)

	err := s.repo.Delete(s.user.ID, item.ID)
	s.Equal(ErrItemInUse, err)

	count, err := s.repo.CountEntries(s.user.ID, item.ID)
	s.NoError(err)
	s.Equal(int64(1), count)

	// Still retrievable after the refused delete
	_, err = s.repo.GetByID(s.user.ID, item.ID)
	s.NoError(err)
}
