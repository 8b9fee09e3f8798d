package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "habithero/internal/errors"
	"habithero/internal/models"
	"habithero/internal/pagination"
)

const (
	defaultCategoryColor = "#3B82F6"
	defaultCategoryIcon  = "star"
)

// DefaultCategories is the starter set created by PopulateDefaults.
var DefaultCategories = []models.Category{
	{Name: "Health", Description: "Physical and mental health habits", Color: "#10B981", Icon: "heart"},
	{Name: "Work", Description: "Professional and productivity habits", Color: "#3B82F6", Icon: "briefcase"},
	{Name: "Learning", Description: "Educational and skill development habits", Color: "#8B5CF6", Icon: "book"},
	{Name: "Personal", Description: "Personal development and lifestyle habits", Color: "#F59E0B", Icon: "user"},
	{Name: "Fitness", Description: "Exercise and physical activity habits", Color: "#EF4444", Icon: "dumbbell"},
	{Name: "Mindfulness", Description: "Meditation and mindfulness practices", Color: "#06B6D4", Icon: "brain"},
}

// categoryService handles the managed category list. Habits reference
// categories by name only, so nothing here ever touches habits.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(name, description, color, icon string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if color == "" {
		color = defaultCategoryColor
	}
	if icon == "" {
		icon = defaultCategoryIcon
	}

	category := &models.Category{
		Name:        name,
		Description: description,
		Color:       color,
		Icon:        icon,
	}
	if err := s.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateCategory
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// ListCategories retrieves a paginated list of categories ordered by name.
func (s *categoryService) ListCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Category{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates an existing category
func (s *categoryService) UpdateCategory(categoryID string, upd CategoryUpdate) (*models.Category, error) {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name cannot be empty")
		}
		updates["name"] = name
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.Color != nil {
		updates["color"] = *upd.Color
	}
	if upd.Icon != nil {
		updates["icon"] = *upd.Icon
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.ErrDuplicateCategory
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return s.GetCategoryByID(categoryID)
}

// DeleteCategory deletes a category. Habits using its name keep it.
func (s *categoryService) DeleteCategory(categoryID string) error {
	res := s.db.Where("id = ?", categoryID).Delete(&models.Category{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// PopulateDefaults creates the default categories that do not exist yet and
// returns the ones it created.
func (s *categoryService) PopulateDefaults() ([]models.Category, error) {
	created := []models.Category{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, def := range DefaultCategories {
			var count int64
			if err := tx.Model(&models.Category{}).Where("name = ?", def.Name).Count(&count).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count > 0 {
				continue
			}
			category := def
			if err := tx.Create(&category).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			created = append(created, category)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
