package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/models"
)

type userRecord struct {
	ID           int64  `gorm:"primaryKey"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	Name         string `gorm:"size:100"`
	PasswordHash string `gorm:"size:100;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

type profileRecord struct {
	UserID   int64  `gorm:"primaryKey;autoIncrement:false"`
	SkinType string `gorm:"size:20"`
	// SkinConcerns is the JSON list of {name, severity}.
	SkinConcerns string         `gorm:"type:jsonb;default:'[]'"`
	Allergies    pq.StringArray `gorm:"type:text[]"`
	Lifestyle    string         `gorm:"type:jsonb;default:'{}'"`
	UpdatedAt    time.Time
}

func (profileRecord) TableName() string { return "user_profiles" }

type routineRecord struct {
	UserID    int64  `gorm:"primaryKey;autoIncrement:false"`
	Morning   string `gorm:"type:jsonb;default:'{}'"`
	Evening   string `gorm:"type:jsonb;default:'{}'"`
	UpdatedAt time.Time
}

func (routineRecord) TableName() string { return "user_routines" }

type progressRecord struct {
	ID           int64          `gorm:"primaryKey"`
	UserID       int64          `gorm:"not null;index"`
	Date         time.Time      `gorm:"not null;index"`
	Notes        string         `gorm:"type:text"`
	Concerns     pq.StringArray `gorm:"type:text[]"`
	Mood         string         `gorm:"size:30"`
	SkinScore    int
	SkinAnalysis string `gorm:"type:jsonb;default:'{}'"`
	CreatedAt    time.Time
}

func (progressRecord) TableName() string { return "progress_entries" }

func (r *progressRecord) toModel() (models.ProgressEntry, error) {
	e := models.ProgressEntry{
		ID:        r.ID,
		UserID:    r.UserID,
		Date:      r.Date,
		Notes:     r.Notes,
		Concerns:  []string(r.Concerns),
		Mood:      r.Mood,
		SkinScore: r.SkinScore,
	}
	if r.SkinAnalysis != "" {
		if err := json.Unmarshal([]byte(r.SkinAnalysis), &e.SkinAnalysis); err != nil {
			return e, fmt.Errorf("decode analysis of entry %d: %w", r.ID, err)
		}
	}
	if e.Concerns == nil {
		e.Concerns = []string{}
	}
	return e, nil
}

// jsonObject decodes a jsonb column; empty and null columns become an empty map.
func jsonObject(raw string) (map[string]any, error) {
	m := map[string]any{}
	if raw == "" || raw == "null" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	return nonNilMap(m), nil
}

func marshalObject(m map[string]any) (string, error) {
	raw, err := json.Marshal(nonNilMap(m))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (r *userRecord) toModel() models.User {
	return models.User{ID: r.ID, Email: r.Email, Name: r.Name, CreatedAt: r.CreatedAt}
}

type PostgresStore struct {
	db *gorm.DB
}

func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logging.GormLogger("accounts-db"),
		TranslateError: true,
	})
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

	if err := db.WithContext(ctx).AutoMigrate(&userRecord{}, &profileRecord{}, &routineRecord{}, &progressRecord{}); err != nil {
		return nil, fmt.Errorf("migrate accounts: %w", err)
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

func (s *PostgresStore) CreateUser(ctx context.Context, a *Account) error {
	rec := userRecord{Email: a.Email, Name: a.Name, PasswordHash: a.PasswordHash}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	a.ID = rec.ID
	a.CreatedAt = rec.CreatedAt
	return nil
}

func (s *PostgresStore) UserByEmail(ctx context.Context, email string) (*Account, error) {
	var rec userRecord
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &Account{User: rec.toModel(), PasswordHash: rec.PasswordHash}, nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var rec userRecord
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	u := rec.toModel()
	return &u, nil
}

func (s *PostgresStore) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	var rec profileRecord
	err := s.db.WithContext(ctx).First(&rec, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return emptyProfile(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %d: %w", userID, err)
	}

	p := &models.Profile{UserID: userID, SkinType: rec.SkinType, Allergies: []string(rec.Allergies)}
	if rec.SkinConcerns != "" {
		if err := json.Unmarshal([]byte(rec.SkinConcerns), &p.SkinConcerns); err != nil {
			return nil, fmt.Errorf("decode concerns of user %d: %w", userID, err)
		}
	}
	if p.SkinConcerns == nil {
		p.SkinConcerns = []models.SkinConcern{}
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	lifestyle, err := jsonObject(rec.Lifestyle)
	if err != nil {
		return nil, fmt.Errorf("decode lifestyle of user %d: %w", userID, err)
	}
	if len(lifestyle) > 0 {
		p.Lifestyle = lifestyle
	}
	return p, nil
}

func (s *PostgresStore) SaveProfile(ctx context.Context, p models.Profile) error {
	if _, err := s.GetUser(ctx, p.UserID); err != nil {
		return err
	}

	concerns := p.SkinConcerns
	if concerns == nil {
		concerns = []models.SkinConcern{}
	}
	raw, err := json.Marshal(concerns)
	if err != nil {
		return err
	}

	rec := profileRecord{
		UserID:       p.UserID,
		SkinType:     p.SkinType,
		SkinConcerns: string(raw),
		Allergies:    pq.StringArray(p.Allergies),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"skin_type", "skin_concerns", "allergies", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save profile %d: %w", p.UserID, err)
	}
	return nil
}

func (s *PostgresStore) SaveLifestyle(ctx context.Context, userID int64, lifestyle map[string]any) error {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	raw, err := marshalObject(lifestyle)
	if err != nil {
		return err
	}

	rec := profileRecord{UserID: userID, Lifestyle: raw}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"lifestyle", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save lifestyle %d: %w", userID, err)
	}
	return nil
}

func (s *PostgresStore) UpdatePasswordHash(ctx context.Context, userID int64, hash string) error {
	res := s.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", userID).Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("update password %d: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GetRoutine(ctx context.Context, userID int64) (*models.Routine, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	var rec routineRecord
	err := s.db.WithContext(ctx).First(&rec, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Routine{Morning: map[string]any{}, Evening: map[string]any{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get routine %d: %w", userID, err)
	}

	morning, err := jsonObject(rec.Morning)
	if err != nil {
		return nil, fmt.Errorf("decode morning routine of user %d: %w", userID, err)
	}
	evening, err := jsonObject(rec.Evening)
	if err != nil {
		return nil, fmt.Errorf("decode evening routine of user %d: %w", userID, err)
	}
	return &models.Routine{Morning: morning, Evening: evening}, nil
}

func (s *PostgresStore) SaveRoutine(ctx context.Context, userID int64, r models.Routine) error {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	morning, err := marshalObject(r.Morning)
	if err != nil {
		return err
	}
	evening, err := marshalObject(r.Evening)
	if err != nil {
		return err
	}

	rec := routineRecord{UserID: userID, Morning: morning, Evening: evening}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"morning", "evening", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save routine %d: %w", userID, err)
	}
	return nil
}

func (s *PostgresStore) AddProgress(ctx context.Context, e *models.ProgressEntry) error {
	if _, err := s.GetUser(ctx, e.UserID); err != nil {
		return err
	}
	analysis, err := json.Marshal(e.SkinAnalysis)
	if err != nil {
		return err
	}

	rec := progressRecord{
		UserID:       e.UserID,
		Date:         e.Date,
		Notes:        e.Notes,
		Concerns:     pq.StringArray(e.Concerns),
		Mood:         e.Mood,
		SkinScore:    e.SkinScore,
		SkinAnalysis: string(analysis),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("add progress for user %d: %w", e.UserID, err)
	}
	e.ID = rec.ID
	return nil
}

func (s *PostgresStore) ListProgress(ctx context.Context, userID int64) ([]models.ProgressEntry, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	var records []progressRecord
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list progress %d: %w", userID, err)
	}
	out := make([]models.ProgressEntry, 0, len(records))
	for i := range records {
		e, err := records[i].toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func emptyProfile(userID int64) *models.Profile {
	return &models.Profile{UserID: userID, SkinConcerns: []models.SkinConcern{}, Allergies: []string{}}
}
