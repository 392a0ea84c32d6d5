package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"budgeteer/internal/core"
	"budgeteer/internal/repo"
)

// CategoryService manages spending categories. Archiving is soft so
// historical transactions keep their reference.
type CategoryService struct {
	categories repo.CategoryRepository
	now        Clock
}

func NewCategoryService(categories repo.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories, now: time.Now}
}

func (s *CategoryService) WithClock(now Clock) *CategoryService {
	s.now = now
	return s
}

type CategoryInput struct {
	Name  string
	Kind  core.CategoryKind
	Icon  string
	Color string
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CategoryInput) (core.Category, error) {
	c := core.Category{
		ID:    newID(),
		Name:  strings.TrimSpace(in.Name),
		Kind:  in.Kind,
		Icon:  in.Icon,
		Color: in.Color,
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	if err := s.categories.Insert(ctx, c); err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, in CategoryInput) (core.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return core.Category{}, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Kind = in.Kind
	c.Icon = in.Icon
	c.Color = in.Color
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// ArchiveCategory soft-archives; the category disappears from default
// listings but stays resolvable by id.
func (s *CategoryService) ArchiveCategory(ctx context.Context, id string) (core.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return core.Category{}, err
	}
	if c.Archived() {
		return c, nil
	}
	c.ArchivedAt = timestamp(s.now)
	if err := s.categories.Update(ctx, c); err != nil {
		return core.Category{}, fmt.Errorf("archive category: %w", err)
	}
	return c, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (core.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CategoryService) ListCategories(ctx context.Context, includeArchived bool) ([]core.Category, error) {
	return s.categories.List(ctx, includeArchived)
}
