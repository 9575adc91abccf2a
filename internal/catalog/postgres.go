package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/models"
)

type productRecord struct {
	ID                int64          `gorm:"primaryKey"`
	Name              string         `gorm:"size:255;not null"`
	Brand             string         `gorm:"size:100;index"`
	ProductType       string         `gorm:"size:50;index"`
	SuitableSkinTypes pq.StringArray `gorm:"type:text[]"`
	Ingredients       string         `gorm:"type:text"`
	Price             *float64       `gorm:"type:numeric(10,2)"`
	Description       string         `gorm:"type:text"`
	ImageURL          string         `gorm:"size:500"`
	Size              string         `gorm:"size:50"`
	Benefits          pq.StringArray `gorm:"type:text[]"`
	HowToUse          string         `gorm:"type:text"`
	KeyIngredients    pq.StringArray `gorm:"type:text[]"`
	Concerns          pq.StringArray `gorm:"type:text[]"`
	Rating            float64        `gorm:"default:0"`
	ReviewCount       int            `gorm:"default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (productRecord) TableName() string { return "products" }

type feedbackRecord struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"not null;uniqueIndex:idx_feedback_user_product"`
	ProductID int64  `gorm:"not null;uniqueIndex:idx_feedback_user_product;index"`
	Rating    int    `gorm:"not null"`
	Text      string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (feedbackRecord) TableName() string { return "user_feedback" }

func (r *productRecord) toModel() models.Product {
	return models.Product{
		ID:                r.ID,
		Name:              r.Name,
		Brand:             r.Brand,
		ProductType:       r.ProductType,
		SuitableSkinTypes: []string(r.SuitableSkinTypes),
		Ingredients:       r.Ingredients,
		Price:             r.Price,
		Description:       r.Description,
		ImageURL:          r.ImageURL,
		Size:              r.Size,
		Benefits:          []string(r.Benefits),
		HowToUse:          r.HowToUse,
		KeyIngredients:    []string(r.KeyIngredients),
		Concerns:          []string(r.Concerns),
		Rating:            r.Rating,
		ReviewCount:       r.ReviewCount,
	}
}

func productFromModel(p *models.Product) productRecord {
	return productRecord{
		ID:                p.ID,
		Name:              p.Name,
		Brand:             p.Brand,
		ProductType:       p.ProductType,
		SuitableSkinTypes: pq.StringArray(p.SuitableSkinTypes),
		Ingredients:       p.Ingredients,
		Price:             p.Price,
		Description:       p.Description,
		ImageURL:          p.ImageURL,
		Size:              p.Size,
		Benefits:          pq.StringArray(p.Benefits),
		HowToUse:          p.HowToUse,
		KeyIngredients:    pq.StringArray(p.KeyIngredients),
		Concerns:          pq.StringArray(p.Concerns),
		Rating:            p.Rating,
		ReviewCount:       p.ReviewCount,
	}
}

func (r *feedbackRecord) toModel() models.Feedback {
	return models.Feedback{
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
	}
}

// PostgresStore is the production Store backed by GORM.
type PostgresStore struct {
	db *gorm.DB
}

// OpenPostgres connects, pings and migrates the catalog schema.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logging.GormLogger("catalog-db")})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&productRecord{}, &feedbackRecord{}); err != nil {
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *PostgresStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var records []productRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]models.Product, len(records))
	for i := range records {
		out[i] = records[i].toModel()
	}
	return out, nil
}

func (s *PostgresStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var rec productRecord
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	p := rec.toModel()
	return &p, nil
}

func (s *PostgresStore) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&productRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) CreateProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	records := make([]productRecord, len(products))
	for i := range products {
		records[i] = productFromModel(&products[i])
	}
	if err := s.db.WithContext(ctx).CreateInBatches(records, 100).Error; err != nil {
		return fmt.Errorf("create products: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	return s.findFeedback(s.db.WithContext(ctx))
}

func (s *PostgresStore) ListUserFeedback(ctx context.Context, userID int64) ([]models.Feedback, error) {
	return s.findFeedback(s.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (s *PostgresStore) findFeedback(q *gorm.DB) ([]models.Feedback, error) {
	var records []feedbackRecord
	if err := q.Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	out := make([]models.Feedback, len(records))
	for i := range records {
		out[i] = records[i].toModel()
	}
	return out, nil
}

func (s *PostgresStore) UpsertFeedback(ctx context.Context, fb models.Feedback) (RatingSummary, error) {
	var summary RatingSummary

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row lock serialises concurrent writes to one product's aggregate.
		var product productRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&product, fb.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		rec := feedbackRecord{UserID: fb.UserID, ProductID: fb.ProductID, Rating: fb.Rating, Text: fb.Text}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "text", "updated_at"}),
		}).Create(&rec).Error; err != nil {
			return err
		}

		var agg struct {
			Avg   float64
			Count int
		}
		if err := tx.Model(&feedbackRecord{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("product_id = ?", fb.ProductID).
			Scan(&agg).Error; err != nil {
			return err
		}

		summary = RatingSummary{Rating: roundRating(agg.Avg), ReviewCount: agg.Count}
		return tx.Model(&productRecord{}).Where("id = ?", fb.ProductID).Updates(map[string]any{
			"rating":       summary.Rating,
			"review_count": summary.ReviewCount,
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RatingSummary{}, err
		}
		return RatingSummary{}, fmt.Errorf("upsert feedback: %w", err)
	}
	return summary, nil
}
