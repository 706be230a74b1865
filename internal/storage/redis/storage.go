package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Table operations
//
// Tables are stored as hashes rather than JSON blobs so the PIN version
// lives in its own field and can be incremented server-side with HINCRBY.

const (
	tableFieldLabel      = "label"
	tableFieldPIN        = "pin"
	tableFieldPINVersion = "pin_version"
	tableFieldCreatedAt  = "created_at"
	tableFieldUpdatedAt  = "updated_at"
)

func (s *Storage) SaveTable(ctx context.Context, table *model.Table) error {
	key := tableKey(table.ID)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		tableFieldLabel, table.Label,
		tableFieldPIN, table.PIN,
		tableFieldPINVersion, table.PINVersion,
		tableFieldCreatedAt, table.CreatedAt.Format(time.RFC3339Nano),
		tableFieldUpdatedAt, table.UpdatedAt.Format(time.RFC3339Nano),
	)
	pipe.SAdd(ctx, tablesIndexKey(), int64(table.ID))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTable(ctx context.Context, id model.TableID) (*model.Table, error) {
	fields, err := s.client.HGetAll(ctx, tableKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrTableNotFound
	}
	return tableFromFields(id, fields)
}

func (s *Storage) ListTables(ctx context.Context) ([]*model.Table, error) {
	ids, err := s.client.SMembers(ctx, tablesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	tables := make([]*model.Table, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		table, err := s.GetTable(ctx, model.TableID(id))
		if errors.Is(err, model.ErrTableNotFound) {
			continue // Index entry for a deleted table
		}
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].ID < tables[j].ID })
	return tables, nil
}

func (s *Storage) DeleteTable(ctx context.Context, id model.TableID) error {
	deleted, err := s.client.Del(ctx, tableKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return model.ErrTableNotFound
	}
	return s.client.SRem(ctx, tablesIndexKey(), int64(id)).Err()
}

// BumpTablePIN writes the new PIN and bumps the version with HINCRBY, so
// the increment happens inside Redis and concurrent bumps always produce
// distinct versions.
func (s *Storage) BumpTablePIN(ctx context.Context, id model.TableID, pin string) (int64, error) {
	key := tableKey(id)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, model.ErrTableNotFound
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, tableFieldPIN, pin)
	incr := pipe.HIncrBy(ctx, key, tableFieldPINVersion, 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (s *Storage) GetTablePINVersion(ctx context.Context, id model.TableID) (int64, error) {
	raw, err := s.client.HGet(ctx, tableKey(id), tableFieldPINVersion).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, model.ErrTableNotFound
		}
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

func tableFromFields(id model.TableID, fields map[string]string) (*model.Table, error) {
	version, err := strconv.ParseInt(fields[tableFieldPINVersion], 10, 64)
	if err != nil {
		return nil, err
	}

	table := &model.Table{
		ID:         id,
		Label:      fields[tableFieldLabel],
		PIN:        fields[tableFieldPIN],
		PINVersion: version,
	}
	if raw := fields[tableFieldCreatedAt]; raw != "" {
		table.CreatedAt, _ = time.Parse(time.RFC3339Nano, raw)
	}
	if raw := fields[tableFieldUpdatedAt]; raw != "" {
		table.UpdatedAt, _ = time.Parse(time.RFC3339Nano, raw)
	}
	return table, nil
}

// Staff secret operations

func (s *Storage) SaveStaffSecret(ctx context.Context, secret *model.StaffSecret) error {
	data, err := json.Marshal(secret)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, staffSecretKey(secret.Role), data, 0).Err()
}

func (s *Storage) GetStaffSecret(ctx context.Context, role model.Role) (*model.StaffSecret, error) {
	data, err := s.client.Get(ctx, staffSecretKey(role)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSecretNotConfigured
		}
		return nil, err
	}

	var secret model.StaffSecret
	if err := json.Unmarshal(data, &secret); err != nil {
		return nil, err
	}
	return &secret, nil
}

// Category operations

func (s *Storage) SaveCategory(ctx context.Context, category *model.Category) error {
	data, err := json.Marshal(category)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, categoryKey(category.ID), data, 0)
	pipe.SAdd(ctx, categoriesIndexKey(), int64(category.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCategory(ctx context.Context, id model.CategoryID) (*model.Category, error) {
	data, err := s.client.Get(ctx, categoryKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, err
	}

	var category model.Category
	if err := json.Unmarshal(data, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Storage) ListCategories(ctx context.Context) ([]*model.Category, error) {
	ids, err := s.client.SMembers(ctx, categoriesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	categories := make([]*model.Category, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		category, err := s.GetCategory(ctx, model.CategoryID(id))
		if errors.Is(err, model.ErrCategoryNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Position != categories[j].Position {
			return categories[i].Position < categories[j].Position
		}
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

func (s *Storage) DeleteCategory(ctx context.Context, id model.CategoryID) error {
	deleted, err := s.client.Del(ctx, categoryKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return model.ErrCategoryNotFound
	}
	return s.client.SRem(ctx, categoriesIndexKey(), int64(id)).Err()
}

// Menu item operations

func (s *Storage) SaveMenuItem(ctx context.Context, item *model.MenuItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, menuItemKey(item.ID), data, 0)
	pipe.SAdd(ctx, menuItemsIndexKey(), int64(item.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMenuItem(ctx context.Context, id model.MenuItemID) (*model.MenuItem, error) {
	data, err := s.client.Get(ctx, menuItemKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMenuItemNotFound
		}
		return nil, err
	}

	var item model.MenuItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Storage) ListMenuItems(ctx context.Context) ([]*model.MenuItem, error) {
	ids, err := s.client.SMembers(ctx, menuItemsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	items := make([]*model.MenuItem, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		item, err := s.GetMenuItem(ctx, model.MenuItemID(id))
		if errors.Is(err, model.ErrMenuItemNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Storage) ListMenuItemsByCategory(ctx context.Context, categoryID model.CategoryID) ([]*model.MenuItem, error) {
	items, err := s.ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}

	filtered := items[:0]
	for _, item := range items {
		if item.CategoryID == categoryID {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (s *Storage) DeleteMenuItem(ctx context.Context, id model.MenuItemID) error {
	deleted, err := s.client.Del(ctx, menuItemKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return model.ErrMenuItemNotFound
	}
	return s.client.SRem(ctx, menuItemsIndexKey(), int64(id)).Err()
}

// Order operations

func (s *Storage) SaveOrder(ctx context.Context, order *model.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, orderKey(order.ID), data, 0)
	pipe.SAdd(ctx, ordersIndexKey(), int64(order.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetOrder(ctx context.Context, id model.OrderID) (*model.Order, error) {
	data, err := s.client.Get(ctx, orderKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}

	var order model.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Storage) ListOrders(ctx context.Context) ([]*model.Order, error) {
	ids, err := s.client.SMembers(ctx, ordersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	orders := make([]*model.Order, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		order, err := s.GetOrder(ctx, model.OrderID(id))
		if errors.Is(err, model.ErrOrderNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (s *Storage) ListOrdersForTable(ctx context.Context, tableID model.TableID) ([]*model.Order, error) {
	orders, err := s.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	filtered := orders[:0]
	for _, order := range orders {
		if order.TableID == tableID {
			filtered = append(filtered, order)
		}
	}
	return filtered, nil
}

func (s *Storage) DeleteOrder(ctx context.Context, id model.OrderID) error {
	deleted, err := s.client.Del(ctx, orderKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return model.ErrOrderNotFound
	}
	return s.client.SRem(ctx, ordersIndexKey(), int64(id)).Err()
}

// Settings operations

func (s *Storage) GetSettings(ctx context.Context) (*model.Settings, error) {
	data, err := s.client.Get(ctx, settingsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.DefaultSettings(), nil
		}
		return nil, err
	}

	var settings model.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Storage) SaveSettings(ctx context.Context, settings *model.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, settingsKey(), data, 0).Err()
}

// NextID allocates the next identifier in the named sequence via INCR
func (s *Storage) NextID(ctx context.Context, sequence string) (int64, error) {
	return s.client.Incr(ctx, sequenceKey(sequence)).Result()
}
