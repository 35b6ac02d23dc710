package postgres

import (
	"context"
	"fmt"
	"strings"

	"social-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FirstOrCreateByEmail returns the user with user.Email, creating it from user when absent.
// created reports whether a new row was inserted; user is filled in either case.
func (r *UserRepository) FirstOrCreateByEmail(ctx context.Context, user *models.User) (created bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where(models.User{Email: user.Email}).
			Attrs(models.User{Password: user.Password, Name: user.Name}).
			FirstOrCreate(user)
		if result.Error != nil {
			return fmt.Errorf("failed to get or create user: %w", result.Error)
		}
		created = result.RowsAffected == 1
		return nil
	})
	return created, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// LockByID loads the user row with FOR UPDATE. Only meaningful inside a transaction.
func (r *UserRepository) LockByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateName(ctx context.Context, id uint, name string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return fmt.Errorf("failed to update user name: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// MySQL reports zero rows when the value is unchanged.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// SearchByEmail matches the whole address case-insensitively.
func (r *UserRepository) SearchByEmail(ctx context.Context, email string, page models.PageQuery) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).
		Where("LOWER(email) = ?", strings.ToLower(email))
	return paginateUsers(query, page)
}

// SearchByName matches a case-insensitive substring of the display name.
func (r *UserRepository) SearchByName(ctx context.Context, name string, page models.PageQuery) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	return paginateUsers(query, page)
}

func paginateUsers(query *gorm.DB, page models.PageQuery) ([]models.User, int64, error) {
	page = page.Normalize()
	query = query.Session(&gorm.Session{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	err := query.Order("id ASC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search users: %w", err)
	}
	return users, count, nil
}
