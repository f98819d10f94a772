// internal/seed/seed.go
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/luxshop/backend/internal/models"
)

// Collection documents. The record source is one JSON document per
// collection, addressed by a fixed name and read as a full-collection array.
const (
	UsersFile         = "users.json"
	ProductsFile      = "products.json"
	CategoriesFile    = "categories.json"
	OrdersFile        = "orders.json"
	CouponsFile       = "coupons.json"
	NotificationsFile = "notifications.json"
	LogsFile          = "logs.json"
)

type record interface {
	recordID() int64
}

// NextID returns max(existing ids) + 1, or 1 for an empty collection. Ids
// assigned this way are only unique within a single import pass; runtime
// inserts rely on the database autoincrement instead.
func NextID[T record](items []T) int64 {
	var max int64
	for _, it := range items {
		if id := it.recordID(); id > max {
			max = id
		}
	}
	return max + 1
}

// Document shapes. Field names match the JSON documents, which predate this
// service and use camelCase keys.

type userRecord struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}

type productRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"image,omitempty"`
	CategoryID  int64  `json:"categoryId"`
	Stock       int64  `json:"stock"`
}

type categoryRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Order       int    `json:"order"`
}

type orderRecord struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	ProductID       int64     `json:"productId"`
	Quantity        int       `json:"quantity"`
	TotalPrice      int64     `json:"totalPrice"`
	CouponID        *int64    `json:"couponId,omitempty"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type couponRecord struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Discount  int       `json:"discount"`
	ExpiresAt time.Time `json:"expiresAt"`
	MaxUses   int64     `json:"maxUses"`
	UsedCount int64     `json:"usedCount"`
}

type notificationRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}

type logRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func (r userRecord) recordID() int64         { return r.ID }
func (r productRecord) recordID() int64      { return r.ID }
func (r categoryRecord) recordID() int64     { return r.ID }
func (r orderRecord) recordID() int64        { return r.ID }
func (r couponRecord) recordID() int64       { return r.ID }
func (r notificationRecord) recordID() int64 { return r.ID }
func (r logRecord) recordID() int64          { return r.ID }

// Import loads each collection document from dir into its table, but only
// when the table is empty. Once rows exist the database is the system of
// record and the documents are never consulted again. A missing or broken
// document degrades to an empty collection.
func Import(db *gorm.DB, dir string) error {
	if err := importUsers(db, filepath.Join(dir, UsersFile)); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := importCategories(db, filepath.Join(dir, CategoriesFile)); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := importProducts(db, filepath.Join(dir, ProductsFile)); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if err := importCoupons(db, filepath.Join(dir, CouponsFile)); err != nil {
		return fmt.Errorf("seed coupons: %w", err)
	}
	if err := importOrders(db, filepath.Join(dir, OrdersFile)); err != nil {
		return fmt.Errorf("seed orders: %w", err)
	}
	if err := importNotifications(db, filepath.Join(dir, NotificationsFile)); err != nil {
		return fmt.Errorf("seed notifications: %w", err)
	}
	if err := importLogs(db, filepath.Join(dir, LogsFile)); err != nil {
		return fmt.Errorf("seed logs: %w", err)
	}
	return fixSequences(db)
}

// loadDocument reads a collection document. Fetch or parse failures are not
// fatal: callers get an empty collection, same as "no data".
func loadDocument[T any](path string) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Warnf("Seed document %s unavailable, using empty collection", filepath.Base(path))
		return nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logrus.WithError(err).Warnf("Seed document %s unparsable, using empty collection", filepath.Base(path))
		return nil
	}
	return items
}

func tableEmpty[T any](db *gorm.DB, model T) (bool, error) {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// assignIDs fills in missing ids with NextID over the records seen so far.
func assignIDs[T record](items []T, setID func(*T, int64)) {
	for i := range items {
		if items[i].recordID() == 0 {
			setID(&items[i], NextID(items))
		}
	}
}

func importUsers(db *gorm.DB, path string) error {
	empty, err := tableEmpty(db, &models.User{})
	if err != nil || !empty {
		return err
	}

	records := loadDocument[userRecord](path)
	if len(records) == 0 {
		return nil
	}
	assignIDs(records, func(r *userRecord, id int64) { r.ID = id })

	users := make([]models.User, 0, len(records))
	for _, r := range records {
		role := models.Role(r.Role)
		if role != models.RoleAdmin {
			role = models.RoleUser
		}
		u := models.User{
			BaseModel: models.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt},
			Email:     r.Email,
			Username:  r.Username,
			FullName:  r.FullName,
			Address:   r.Address,
			Role:      role,
			Balance:   r.Balance,
		}
		// Seed documents carry bootstrap passwords in the clear; they are
		// hashed here and never stored as-is.
		if err := u.SetPassword(r.Password); err != nil {
			return err
		}
		users = append(users, u)
	}

	logrus.Infof("Seeding %d users", len(users))
	return db.Create(&users).Error
}

func importCategories(db *gorm.DB, path string) error {
	empty, err := tableEmpty(db, &models.Category{})
	if err != nil || !empty {
		return err
	}

	records := loadDocument[categoryRecord](path)
	if len(records) == 0 {
		return nil
	}
	assignIDs(records, func(r *categoryRecord, id int64) { r.ID = id })

	categories := make([]models.Category, 0, len(records))
	for _, r := range records {
		categories = append(categories, models.Category{
			BaseModel:   models.BaseModel{ID: r.ID},
			Name:        r.Name,
			Description: r.Description,
			Image:       r.Image,
			SortOrder:   r.Order,
		})
	}

	logrus.Infof("Seeding %d categories", len(categories))
	return db.Create(&categories).Error
}

func importProducts(db *gorm.DB, path string) error {
	empty, err := tableEmpty(db, &models.Product{})
	if err != nil || !empty {
		return err
	}

	records := loadDocument[productRecord](path)
	if len(records) == 0 {
		return nil
	}
	assignIDs(records, func(r *productRecord, id int64) { r.ID = id })

	products := make([]models.Product, 0, len(records))
	for _, r := range records {
		products = append(products, models.Product{
			BaseModel:   models.BaseModel{ID: r.ID},
			Name:        r.Name,
			Description: r.Description,
			Price:       r.Price,
			Image:       r.Image,
			CategoryID:  r.CategoryID,
			Stock:       r.Stock,
		})
	}

	logrus.Infof("Seeding %d products", len(products))
	return db.Create(&products).Error
}

func importCoupons(db *gorm.DB, path string) error {
	empty, err := tableEmpty(db, &models.Coupon{})
	if err != nil || !empty {
		return err
	}

	records := loadDocument[couponRecord](path)
	if len(records) == 0 {
		return nil
	}
	assignIDs(records, func(r *couponRecord, id int64) { r.ID = id })

	coupons := make([]models.Coupon, 0, len(records))
	for _, r := range records {
		coupons = append(coupons, models.Coupon{
			BaseModel: models.BaseModel{ID: r.ID},
			Code:      r.Code,
			Discount:  r.Discount,
			ExpiresAt: r.ExpiresAt,
			MaxUses:   r.MaxUses,
			UsedCount: r.UsedCount,
		})
	}

	logrus.Infof("Seeding %d coupons", len(coupons))
	return db.Create(&coupons).Error
}

func importOrders(db *gorm.DB, path string) error {
	empty, err := tableEmpty(db, &models.Order{})
	if err != nil || !empty {
		return err
	}

	records := loadDocument[orderRecord](path)
	if len(records) == 0 {
		return nil
	}
	assignIDs(records, func(r *orderRecord, id int64) { r.ID = id })

	orders := make([]models.Order, 0, len(records))
	for _, r := range records {
		status := models.OrderStatus(r.Status)
		switch status {
		case models.OrderStatusPending, models.OrderStatusApproved,
			models.OrderStatusDelivered, models.OrderStatusRejected:
		default:
			status = models.OrderStatusPending
		}
		orders = append(orders, models.Order{
			BaseModel:       models.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt},
			UserID:          r.UserID,
			ProductID:       r.ProductID,
			Quantity:        r.Quantity,
			TotalPrice:      r.TotalPrice,
			CouponID:        r.CouponID,
			Status:          status,
			RejectionReason: r.RejectionReason,
		})
	}

	logrus.Infof("Seeding %d orders", len(orders))
	return db.Create(&orders).Error
}

func importNotifications(db *gorm.DB, path string) error {
	empty, err := tableEmpty(db, &models.Notification{})
	if err != nil || !empty {
		return err
	}

	records := loadDocument[notificationRecord](path)
	if len(records) == 0 {
		return nil
	}
	assignIDs(records, func(r *notificationRecord, id int64) { r.ID = id })

	notifications := make([]models.Notification, 0, len(records))
	for _, r := range records {
		notifications = append(notifications, models.Notification{
			BaseModel: models.BaseModel{ID: r.ID, CreatedAt: r.CreatedAt},
			UserID:    r.UserID,
			Message:   r.Message,
			Read:      r.Read,
		})
	}

	logrus.Infof("Seeding %d notifications", len(notifications))
	return db.Create(&notifications).Error
}

func importLogs(db *gorm.DB, path string) error {
	empty, err := tableEmpty(db, &models.ActivityLog{})
	if err != nil || !empty {
		return err
	}

	records := loadDocument[logRecord](path)
	if len(records) == 0 {
		return nil
	}
	assignIDs(records, func(r *logRecord, id int64) { r.ID = id })

	logs := make([]models.ActivityLog, 0, len(records))
	for _, r := range records {
		logs = append(logs, models.ActivityLog{
			BaseModel: models.BaseModel{ID: r.ID, CreatedAt: r.Timestamp},
			UserID:    r.UserID,
			Action:    r.Action,
		})
	}

	logrus.Infof("Seeding %d activity logs", len(logs))
	return db.Create(&logs).Error
}

// fixSequences realigns Postgres autoincrement sequences after inserting
// rows with explicit ids. No-op on other dialects.
func fixSequences(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	tables := []string{"users", "categories", "products", "coupons", "orders", "notifications", "activity_logs"}
	for _, table := range tables {
		stmt := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))",
			table, table,
		)
		if err := db.Exec(stmt).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to realign sequence for %s", table)
		}
	}
	return nil
}
