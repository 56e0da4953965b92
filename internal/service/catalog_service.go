package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"magicstore/internal/cache"
	"magicstore/internal/errors"
	"magicstore/internal/model"
	"magicstore/internal/repository"
)

const (
	catalogCacheKey = "catalog:courses"
	catalogCacheTTL = 5 * time.Minute
)

// CourseInput carries the admin course form. A nil Features on update keeps
// the existing feature list.
type CourseInput struct {
	Title         string
	Description   string
	Price         decimal.Decimal
	OriginalPrice decimal.NullDecimal
	Category      model.CourseCategory
	Image         string
	Features      []string
}

// CatalogService handles course listing and admin CRUD.
type CatalogService interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*model.Course, error)
	CreateCourse(ctx context.Context, input CourseInput) (*model.Course, error)
	UpdateCourse(ctx context.Context, id uuid.UUID, input CourseInput) (*model.Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	repo  repository.CourseRepository
	cache *cache.Client
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.CourseRepository, cache *cache.Client) CatalogService {
	return &catalogService{repo: repo, cache: cache}
}

// ListCourses returns the catalog with cache-aside caching; the storefront
// hits this on every page render.
func (s *catalogService) ListCourses(ctx context.Context) ([]model.Course, error) {
	if data, _ := s.cache.Get(ctx, catalogCacheKey); data != nil {
		var cached []model.Course
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	if payload, err := json.Marshal(courses); err == nil {
		_ = s.cache.Set(ctx, catalogCacheKey, payload, catalogCacheTTL)
	}
	return courses, nil
}

// GetCourse returns a single course.
func (s *catalogService) GetCourse(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return course, nil
}

// CreateCourse adds a course to the catalog.
func (s *catalogService) CreateCourse(ctx context.Context, input CourseInput) (*model.Course, error) {
	if !model.ValidCategory(input.Category) {
		return nil, errors.ErrInvalidCategory
	}

	course := &model.Course{
		Title:         input.Title,
		Description:   input.Description,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Category:      input.Category,
		Image:         input.Image,
		Features:      input.Features,
	}
	if course.Features == nil {
		course.Features = []string{}
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	_ = s.cache.Delete(ctx, catalogCacheKey)
	return course, nil
}

// UpdateCourse overwrites the course fields. Identity is immutable; an
// omitted feature list keeps the stored one.
func (s *catalogService) UpdateCourse(ctx context.Context, id uuid.UUID, input CourseInput) (*model.Course, error) {
	if !model.ValidCategory(input.Category) {
		return nil, errors.ErrInvalidCategory
	}

	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Title = input.Title
	course.Description = input.Description
	course.Price = input.Price
	course.OriginalPrice = input.OriginalPrice
	course.Category = input.Category
	course.Image = input.Image
	if input.Features != nil {
		course.Features = input.Features
	}

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}

	_ = s.cache.Delete(ctx, catalogCacheKey)
	return course, nil
}

// DeleteCourse removes the course from the catalog.
func (s *catalogService) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCourse(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	_ = s.cache.Delete(ctx, catalogCacheKey)
	return nil
}
