package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stockroom/internal/apierror"
	"stockroom/internal/dto"
	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	priceCachePrefix = "cache:price:"
	priceCacheTTL    = 4 * time.Hour
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// PriceCheck is the public lookup by code, cached in redis.
	PriceCheck(ctx context.Context, code string) (*dto.PriceCheckResponse, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
	rdb        *redis.Client
}

func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	rdb *redis.Client,
) ProductService {
	return &productService{products: products, categories: categories, brands: brands, rdb: rdb}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := s.products.FindByCode(ctx, req.Code); err == nil {
		return nil, apierror.Conflict("product code %s already exists", req.Code)
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apierror.Validation("invalid category_id %q", req.CategoryID)
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, apierror.NotFound("category %s not found", req.CategoryID)
	}

	var brandID *uuid.UUID
	if req.BrandID != nil {
		id, err := uuid.Parse(*req.BrandID)
		if err != nil {
			return nil, apierror.Validation("invalid brand_id %q", *req.BrandID)
		}
		if _, err := s.brands.FindByID(ctx, id); err != nil {
			return nil, apierror.NotFound("brand %s not found", *req.BrandID)
		}
		brandID = &id
	}

	minQty := 5
	if req.MinQty != nil {
		minQty = *req.MinQty
	}
	p := model.Product{
		Code:        req.Code,
		Name:        req.Name,
		ImportPrice: req.ImportPrice,
		SalePrice:   req.SalePrice,
		MinQty:      minQty,
		Image:       req.Image,
		CategoryID:  categoryID,
		BrandID:     brandID,
		Status:      req.Status,
	}
	if err := s.products.Create(ctx, &p); err != nil {
		return nil, apierror.From(err)
	}
	return s.Get(ctx, p.ID)
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("product %s not found", id)
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, apierror.From(err)
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("product %s not found", id)
	}

	if req.Code != nil && *req.Code != p.Code {
		if existing, err := s.products.FindByCode(ctx, *req.Code); err == nil && existing.ID != p.ID {
			return nil, apierror.Conflict("product code %s already exists", *req.Code)
		}
		p.Code = *req.Code
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apierror.Validation("invalid category_id %q", *req.CategoryID)
		}
		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			return nil, apierror.NotFound("category %s not found", *req.CategoryID)
		}
		p.CategoryID = categoryID
	}
	if req.BrandID != nil {
		brandID, err := uuid.Parse(*req.BrandID)
		if err != nil {
			return nil, apierror.Validation("invalid brand_id %q", *req.BrandID)
		}
		if _, err := s.brands.FindByID(ctx, brandID); err != nil {
			return nil, apierror.NotFound("brand %s not found", *req.BrandID)
		}
		p.BrandID = &brandID
	}
	if req.ImportPrice != nil {
		p.ImportPrice = *req.ImportPrice
	}
	if req.SalePrice != nil {
		p.SalePrice = *req.SalePrice
	}
	if req.MinQty != nil {
		p.MinQty = *req.MinQty
	}
	if req.Image != nil {
		p.Image = req.Image
	}
	if req.Status != nil {
		p.Status = *req.Status
	}

	// Qty is deliberately absent from the update payload; only the ledger
	// moves stock.
	if err := s.products.Update(ctx, p); err != nil {
		return nil, apierror.From(err)
	}
	s.invalidatePriceCache(ctx, p.Code)
	return s.Get(ctx, p.ID)
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("product %s not found", id)
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return apierror.From(err)
	}
	s.invalidatePriceCache(ctx, p.Code)
	return nil
}

func (s *productService) PriceCheck(ctx context.Context, code string) (*dto.PriceCheckResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, priceCachePrefix+code).Result(); err == nil {
			var cached dto.PriceCheckResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	p, err := s.products.FindByCode(ctx, code)
	if err != nil {
		return nil, apierror.NotFound("product with code %s not found", code)
	}

	resp := &dto.PriceCheckResponse{
		Code:      p.Code,
		Name:      p.Name,
		SalePrice: p.SalePrice,
		Qty:       p.Qty,
	}
	if p.Category != nil {
		resp.Category = p.Category.Name
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			_ = s.rdb.Set(ctx, priceCachePrefix+code, raw, priceCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *productService) invalidatePriceCache(ctx context.Context, code string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, fmt.Sprintf("%s%s", priceCachePrefix, code)).Err()
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID.String(),
		Code:        p.Code,
		Name:        p.Name,
		Qty:         p.Qty,
		ImportPrice: p.ImportPrice,
		SalePrice:   p.SalePrice,
		MinQty:      p.MinQty,
		Image:       p.Image,
		Status:      p.Status,
	}
	if p.Category != nil {
		resp.Category = categoryToResponse(p.Category)
	}
	if p.Brand != nil {
		resp.Brand = brandToResponse(p.Brand)
	}
	return resp
}
