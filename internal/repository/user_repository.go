package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"magicstore/internal/model"
)

// UserRepository defines buyer account persistence operations, including
// the purchased-course entitlement relation.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailOrCreate(ctx context.Context, user *model.User) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HasCourse(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	AddCourse(ctx context.Context, userID, courseID uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("PurchasedCourses").
		Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("PurchasedCourses").
		Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailOrCreate finds a user by email or creates it if absent. Used to
// lazily materialize the account behind the fixed bypass credential.
func (r *userRepository) FindByEmailOrCreate(ctx context.Context, user *model.User) (*model.User, error) {
	var existing model.User
	err := r.db.WithContext(ctx).Preload("PurchasedCourses").
		Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Preload("PurchasedCourses").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("PurchasedCourses").
		Delete(&model.User{ID: id}).Error
}

// HasCourse reports whether the entitlement join already holds the pair.
func (r *userRepository) HasCourse(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("user_purchased_courses").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddCourse appends the course to the user's entitlement list.
func (r *userRepository) AddCourse(ctx context.Context, userID, courseID uuid.UUID) error {
	user := model.User{ID: userID}
	course := model.Course{ID: courseID}
	return r.db.WithContext(ctx).Model(&user).
		Association("PurchasedCourses").Append(&course)
}
