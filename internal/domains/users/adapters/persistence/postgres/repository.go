package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/shop-users-api/internal/domains/users/domain"
	"github.com/Apurer/shop-users-api/internal/domains/users/ports"
	"github.com/Apurer/shop-users-api/internal/shared/paging"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type userRecord struct {
	ID              int64     `gorm:"primaryKey;column:id"`
	FirstName       string    `gorm:"column:first_name"`
	LastName        string    `gorm:"column:last_name;index"`
	Email           string    `gorm:"column:email"`
	Active          bool      `gorm:"column:active;not null;default:false"`
	ActivationToken string    `gorm:"column:activation_token;size:128"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Save inserts a user without an ID or upserts one keyed by ID.
func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toRecord(user)
	query := r.db.WithContext(ctx)
	if record.ID != 0 {
		query = query.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"first_name":       record.FirstName,
				"last_name":        record.LastName,
				"email":            record.Email,
				"active":           record.Active,
				"activation_token": record.ActivationToken,
				"updated_at":       gorm.Expr("NOW()"),
			}),
		})
	}
	if err := query.Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a user by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByLastNameContaining runs a case-sensitive LIKE match ordered by id.
func (r *Repository) FindByLastNameContaining(ctx context.Context, fragment string, page paging.Request) (paging.Page[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return paging.Page[*domain.User]{}, err
	}
	pattern := "%" + escapeLike(fragment) + "%"
	filtered := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&userRecord{}).Where(`last_name LIKE ? ESCAPE '\'`, pattern)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return paging.Page[*domain.User]{}, err
	}
	var records []userRecord
	if total > int64(page.Offset()) {
		if err := filtered().Order("id ASC").Offset(page.Offset()).Limit(page.Size).Find(&records).Error; err != nil {
			return paging.Page[*domain.User]{}, err
		}
	}
	users := make([]*domain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return paging.Page[*domain.User]{Items: users, TotalElements: total}, nil
}

// Activate flips the active flag in a single conditional UPDATE so concurrent activations cannot race.
func (r *Repository) Activate(ctx context.Context, id int64, token string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("id = ? AND activation_token = ?", id, token).
		Updates(map[string]any{"active": true, "updated_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(fragment string) string {
	return likeEscaper.Replace(fragment)
}

func toRecord(user *domain.User) userRecord {
	return userRecord{
		ID:              user.ID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		Active:          user.Active,
		ActivationToken: user.ActivationToken,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:              r.ID,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Active:          r.Active,
		ActivationToken: r.ActivationToken,
	}
}
