package service

import (
	"context"

	"stockroom/internal/apierror"
	"stockroom/internal/dto"
	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/google/uuid"
)

// CategoryService and BrandService mirror each other; deletion is a
// deactivation so historical products keep a resolvable reference.

type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return nil, apierror.Conflict("category %s already exists", req.Name)
	}
	c := model.Category{Name: req.Name, Description: req.Description, Active: true}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, apierror.From(err)
	}
	return categoryToResponse(&c), nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("category %s not found", id)
	}
	return categoryToResponse(c), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.From(err)
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, *categoryToResponse(&categories[i]))
	}
	return out, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("category %s not found", id)
	}
	if req.Name != nil && *req.Name != c.Name {
		if existing, err := s.repo.FindByName(ctx, *req.Name); err == nil && existing.ID != c.ID {
			return nil, apierror.Conflict("category %s already exists", *req.Name)
		}
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apierror.From(err)
	}
	return categoryToResponse(c), nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("category %s not found", id)
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return apierror.From(err)
	}
	return nil
}

type BrandService interface {
	Create(ctx context.Context, req dto.CreateBrandRequest) (*dto.BrandResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.BrandResponse, error)
	List(ctx context.Context) ([]dto.BrandResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateBrandRequest) (*dto.BrandResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type brandService struct {
	repo repository.BrandRepository
}

func NewBrandService(repo repository.BrandRepository) BrandService {
	return &brandService{repo: repo}
}

func (s *brandService) Create(ctx context.Context, req dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return nil, apierror.Conflict("brand %s already exists", req.Name)
	}
	b := model.Brand{Name: req.Name, Description: req.Description, Active: true}
	if err := s.repo.Create(ctx, &b); err != nil {
		return nil, apierror.From(err)
	}
	return brandToResponse(&b), nil
}

func (s *brandService) Get(ctx context.Context, id uuid.UUID) (*dto.BrandResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("brand %s not found", id)
	}
	return brandToResponse(b), nil
}

func (s *brandService) List(ctx context.Context) ([]dto.BrandResponse, error) {
	brands, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.From(err)
	}
	out := make([]dto.BrandResponse, 0, len(brands))
	for i := range brands {
		out = append(out, *brandToResponse(&brands[i]))
	}
	return out, nil
}

func (s *brandService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateBrandRequest) (*dto.BrandResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("brand %s not found", id)
	}
	if req.Name != nil && *req.Name != b.Name {
		if existing, err := s.repo.FindByName(ctx, *req.Name); err == nil && existing.ID != b.ID {
			return nil, apierror.Conflict("brand %s already exists", *req.Name)
		}
		b.Name = *req.Name
	}
	if req.Description != nil {
		b.Description = req.Description
	}
	if req.Active != nil {
		b.Active = *req.Active
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, apierror.From(err)
	}
	return brandToResponse(b), nil
}

func (s *brandService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("brand %s not found", id)
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return apierror.From(err)
	}
	return nil
}

func categoryToResponse(c *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
	}
}

func brandToResponse(b *model.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		Description: b.Description,
		Active:      b.Active,
	}
}
