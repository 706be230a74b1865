package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	s.storage.Close()
	s.mini.Close()
}

func (s *StorageSuite) newTable(id model.TableID) *model.Table {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Table{
		ID:         id,
		Label:      "Window",
		PIN:        "1234",
		PINVersion: 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Table tests

func (s *StorageSuite) TestSaveAndGetTable() {
	table := s.newTable(1)

	err := s.storage.SaveTable(s.ctx, table)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetTable(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(table.Label, retrieved.Label)
	s.Equal(table.PIN, retrieved.PIN)
	s.Equal(int64(1), retrieved.PINVersion)
	s.True(table.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetTableNotFound() {
	_, err := s.storage.GetTable(s.ctx, 42)
	s.ErrorIs(err, model.ErrTableNotFound)
}

func (s *StorageSuite) TestListTablesSortedByID() {
	for _, id := range []model.TableID{3, 1, 2} {
		s.Require().NoError(s.storage.SaveTable(s.ctx, s.newTable(id)))
	}

	tables, err := s.storage.ListTables(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(tables, 3)
	s.Equal(model.TableID(1), tables[0].ID)
	s.Equal(model.TableID(3), tables[2].ID)
}

func (s *StorageSuite) TestDeleteTable() {
	s.Require().NoError(s.storage.SaveTable(s.ctx, s.newTable(1)))

	s.Require().NoError(s.storage.DeleteTable(s.ctx, 1))

	_, err := s.storage.GetTable(s.ctx, 1)
	s.ErrorIs(err, model.ErrTableNotFound)

	tables, err := s.storage.ListTables(s.ctx)
	s.Require().NoError(err)
	s.Empty(tables)
}

func (s *StorageSuite) TestDeleteTableNotFound() {
	err := s.storage.DeleteTable(s.ctx, 42)
	s.ErrorIs(err, model.ErrTableNotFound)
}

func (s *StorageSuite) TestBumpTablePIN() {
	s.Require().NoError(s.storage.SaveTable(s.ctx, s.newTable(1)))

	version, err := s.storage.BumpTablePIN(s.ctx, 1, "5678")
	s.Require().NoError(err)
	s.Equal(int64(2), version)

	table, err := s.storage.GetTable(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("5678", table.PIN)
	s.Equal(int64(2), table.PINVersion)

	current, err := s.storage.GetTablePINVersion(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(int64(2), current)
}

func (s *StorageSuite) TestConcurrentBumpsYieldDistinctVersions() {
	s.Require().NoError(s.storage.SaveTable(s.ctx, s.newTable(1)))

	const n = 20
	versions := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.storage.BumpTablePIN(s.ctx, 1, "0000")
			s.NoError(err)
			versions <- v
		}()
	}
	wg.Wait()
	close(versions)

	seen := make(map[int64]bool)
	for v := range versions {
		s.False(seen[v], "version %d returned twice", v)
		seen[v] = true
	}
	s.Len(seen, n)

	final, _ := s.storage.GetTablePINVersion(s.ctx, 1)
	s.Equal(int64(n+1), final)
}

func (s *StorageSuite) TestBumpTablePINNotFound() {
	_, err := s.storage.BumpTablePIN(s.ctx, 42, "5678")
	s.ErrorIs(err, model.ErrTableNotFound)
}

func (s *StorageSuite) TestGetTablePINVersionNotFound() {
	_, err := s.storage.GetTablePINVersion(s.ctx, 42)
	s.ErrorIs(err, model.ErrTableNotFound)
}

// Staff secret tests

func (s *StorageSuite) TestSaveAndGetStaffSecret() {
	secret := &model.StaffSecret{
		Role:         model.RoleKitchen,
		PasswordHash: "abc123",
		UpdatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(s.storage.SaveStaffSecret(s.ctx, secret))

	retrieved, err := s.storage.GetStaffSecret(s.ctx, model.RoleKitchen)
	s.Require().NoError(err)
	s.Equal("abc123", retrieved.PasswordHash)
	s.Equal(model.RoleKitchen, retrieved.Role)
}

func (s *StorageSuite) TestGetStaffSecretNotConfigured() {
	_, err := s.storage.GetStaffSecret(s.ctx, model.RoleManager)
	s.ErrorIs(err, model.ErrSecretNotConfigured)
}

// Category and menu item tests

func (s *StorageSuite) TestCategoryCRUD() {
	category := &model.Category{ID: 1, Name: "Starters", Position: 1}
	s.Require().NoError(s.storage.SaveCategory(s.ctx, category))

	retrieved, err := s.storage.GetCategory(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("Starters", retrieved.Name)

	s.Require().NoError(s.storage.DeleteCategory(s.ctx, 1))
	_, err = s.storage.GetCategory(s.ctx, 1)
	s.ErrorIs(err, model.ErrCategoryNotFound)
}

func (s *StorageSuite) TestListCategoriesSortedByPosition() {
	s.Require().NoError(s.storage.SaveCategory(s.ctx, &model.Category{ID: 1, Name: "Desserts", Position: 3}))
	s.Require().NoError(s.storage.SaveCategory(s.ctx, &model.Category{ID: 2, Name: "Starters", Position: 1}))
	s.Require().NoError(s.storage.SaveCategory(s.ctx, &model.Category{ID: 3, Name: "Mains", Position: 2}))

	categories, err := s.storage.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(categories, 3)
	s.Equal("Starters", categories[0].Name)
	s.Equal("Mains", categories[1].Name)
	s.Equal("Desserts", categories[2].Name)
}

func (s *StorageSuite) TestMenuItemsByCategory() {
	s.Require().NoError(s.storage.SaveMenuItem(s.ctx, &model.MenuItem{ID: 1, CategoryID: 1, Name: "Soup"}))
	s.Require().NoError(s.storage.SaveMenuItem(s.ctx, &model.MenuItem{ID: 2, CategoryID: 2, Name: "Steak"}))
	s.Require().NoError(s.storage.SaveMenuItem(s.ctx, &model.MenuItem{ID: 3, CategoryID: 1, Name: "Salad"}))

	items, err := s.storage.ListMenuItemsByCategory(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(items, 2)

	all, err := s.storage.ListMenuItems(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *StorageSuite) TestDeleteMenuItemNotFound() {
	err := s.storage.DeleteMenuItem(s.ctx, 42)
	s.ErrorIs(err, model.ErrMenuItemNotFound)
}

// Order tests

func (s *StorageSuite) TestOrderRoundTrip() {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	order := &model.Order{
		ID:      1,
		TableID: 2,
		Lines: []model.OrderLine{
			{ItemID: 1, Name: "Soup", PriceCents: 600, Quantity: 2},
			{ItemID: 2, Name: "Steak", PriceCents: 2400, Quantity: 1},
		},
		Status:    model.OrderStatusOpen,
		Note:      "no salt",
		CreatedAt: created,
		UpdatedAt: created,
	}

	s.Require().NoError(s.storage.SaveOrder(s.ctx, order))

	retrieved, err := s.storage.GetOrder(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(model.TableID(2), retrieved.TableID)
	s.Require().Len(retrieved.Lines, 2)
	s.Equal("no salt", retrieved.Note)
	s.Equal(int64(3600), retrieved.TotalCents())
}

func (s *StorageSuite) TestListOrdersForTable() {
	s.Require().NoError(s.storage.SaveOrder(s.ctx, &model.Order{ID: 1, TableID: 1, Status: model.OrderStatusOpen}))
	s.Require().NoError(s.storage.SaveOrder(s.ctx, &model.Order{ID: 2, TableID: 2, Status: model.OrderStatusOpen}))
	s.Require().NoError(s.storage.SaveOrder(s.ctx, &model.Order{ID: 3, TableID: 1, Status: model.OrderStatusReady}))

	orders, err := s.storage.ListOrdersForTable(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.Equal(model.OrderID(1), orders[0].ID)
	s.Equal(model.OrderID(3), orders[1].ID)
}

func (s *StorageSuite) TestDeleteOrder() {
	s.Require().NoError(s.storage.SaveOrder(s.ctx, &model.Order{ID: 1, TableID: 1, Status: model.OrderStatusOpen}))

	s.Require().NoError(s.storage.DeleteOrder(s.ctx, 1))

	_, err := s.storage.GetOrder(s.ctx, 1)
	s.ErrorIs(err, model.ErrOrderNotFound)

	err = s.storage.DeleteOrder(s.ctx, 1)
	s.ErrorIs(err, model.ErrOrderNotFound)
}

// Settings tests

func (s *StorageSuite) TestGetSettingsDefaultsWhenUnset() {
	settings, err := s.storage.GetSettings(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.DefaultSettings().OrderingOpen, settings.OrderingOpen)
}

func (s *StorageSuite) TestSaveAndGetSettings() {
	settings := &model.Settings{
		RestaurantName: "The Fork",
		Currency:       "EUR",
		OrderingOpen:   false,
	}
	s.Require().NoError(s.storage.SaveSettings(s.ctx, settings))

	retrieved, err := s.storage.GetSettings(s.ctx)
	s.Require().NoError(err)
	s.Equal("The Fork", retrieved.RestaurantName)
	s.False(retrieved.OrderingOpen)
}

// Sequence tests

func (s *StorageSuite) TestNextIDIncrements() {
	id1, err := s.storage.NextID(s.ctx, storage.SeqOrder)
	s.Require().NoError(err)
	id2, err := s.storage.NextID(s.ctx, storage.SeqOrder)
	s.Require().NoError(err)
	s.Equal(int64(1), id1)
	s.Equal(int64(2), id2)
}

func (s *StorageSuite) TestSequencesAreIndependent() {
	id1, err := s.storage.NextID(s.ctx, storage.SeqTable)
	s.Require().NoError(err)
	id2, err := s.storage.NextID(s.ctx, storage.SeqOrder)
	s.Require().NoError(err)
	s.Equal(id1, id2)
}
