package service

import (
	"context"

	"stockroom/internal/apierror"
	"stockroom/internal/dto"
	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/google/uuid"
)

// Suppliers and customers share the partner request/response shape but stay
// separate services; each is the counterparty of exactly one transaction kind.

type SupplierService interface {
	Create(ctx context.Context, req dto.CreatePartnerRequest) (*dto.PartnerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PartnerResponse, error)
	List(ctx context.Context, search string) ([]dto.PartnerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePartnerRequest) (*dto.PartnerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	sup := model.Supplier{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Active:  true,
	}
	if err := s.repo.Create(ctx, &sup); err != nil {
		return nil, apierror.From(err)
	}
	return supplierToResponse(&sup), nil
}

func (s *supplierService) Get(ctx context.Context, id uuid.UUID) (*dto.PartnerResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("supplier %s not found", id)
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) List(ctx context.Context, search string) ([]dto.PartnerResponse, error) {
	suppliers, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, apierror.From(err)
	}
	out := make([]dto.PartnerResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, *supplierToResponse(&suppliers[i]))
	}
	return out, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePartnerRequest) (*dto.PartnerResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("supplier %s not found", id)
	}
	applyPartnerUpdate(req, &sup.Name, &sup.Phone, &sup.Email, &sup.Address, &sup.Active)
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, apierror.From(err)
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("supplier %s not found", id)
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return apierror.From(err)
	}
	return nil
}

type CustomerService interface {
	Create(ctx context.Context, req dto.CreatePartnerRequest) (*dto.PartnerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PartnerResponse, error)
	List(ctx context.Context, search string) ([]dto.PartnerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePartnerRequest) (*dto.PartnerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	c := model.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Active:  true,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, apierror.From(err)
	}
	return customerToResponse(&c), nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*dto.PartnerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("customer %s not found", id)
	}
	return customerToResponse(c), nil
}

func (s *customerService) List(ctx context.Context, search string) ([]dto.PartnerResponse, error) {
	customers, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, apierror.From(err)
	}
	out := make([]dto.PartnerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, *customerToResponse(&customers[i]))
	}
	return out, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePartnerRequest) (*dto.PartnerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("customer %s not found", id)
	}
	applyPartnerUpdate(req, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Active)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apierror.From(err)
	}
	return customerToResponse(c), nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("customer %s not found", id)
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return apierror.From(err)
	}
	return nil
}

func applyPartnerUpdate(req dto.UpdatePartnerRequest, name *string, phone, email, address **string, active *bool) {
	if req.Name != nil {
		*name = *req.Name
	}
	if req.Phone != nil {
		*phone = req.Phone
	}
	if req.Email != nil {
		*email = req.Email
	}
	if req.Address != nil {
		*address = req.Address
	}
	if req.Active != nil {
		*active = *req.Active
	}
}

func supplierToResponse(s *model.Supplier) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:      s.ID.String(),
		Name:    s.Name,
		Phone:   s.Phone,
		Email:   s.Email,
		Address: s.Address,
		Active:  s.Active,
	}
}

func customerToResponse(c *model.Customer) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:      c.ID.String(),
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
		Active:  c.Active,
	}
}
