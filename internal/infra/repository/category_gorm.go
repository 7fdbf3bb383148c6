package repository

import (
	"context"

	"ecommerce/internal/domain/model"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) Create(ctx context.Context, c *model.Category) error {
	c.NameKey = model.CategoryNameKey(c.Name)
	return translate(r.db.WithContext(ctx).Create(c).Error, "create category")
}

func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":     c.Name,
			"name_key": model.CategoryNameKey(c.Name),
		})
	return affected(res, "update category")
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return model.Category{}, translate(err, "find category")
	}
	return c, nil
}

// name_keyで比較（postgres/mysql共通）
func (r *CategoryGormRepository) FindAllByNameFold(ctx context.Context, name string) ([]model.Category, error) {
	var cs []model.Category
	err := r.db.WithContext(ctx).
		Where("name_key = ?", model.CategoryNameKey(name)).
		Order("id asc").
		Find(&cs).Error
	if err != nil {
		return []model.Category{}, translate(err, "find categories by name")
	}
	return cs, nil
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var cs []model.Category
	if err := r.db.WithContext(ctx).Order("id asc").Find(&cs).Error; err != nil {
		return []model.Category{}, translate(err, "list categories")
	}
	return cs, nil
}

// 紐づく商品はFKでcategory_id=NULLになる
func (r *CategoryGormRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Category{}, id), "delete category")
}
