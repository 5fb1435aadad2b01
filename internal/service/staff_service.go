package service

import (
	"context"
	"time"

	"stockroom/internal/apierror"
	"stockroom/internal/dto"
	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/google/uuid"
)

type StaffService interface {
	Create(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.StaffResponse, error)
	List(ctx context.Context, search string) ([]dto.StaffResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type staffService struct {
	repo repository.StaffRepository
}

func NewStaffService(repo repository.StaffRepository) StaffService {
	return &staffService{repo: repo}
}

func (s *staffService) Create(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	st := model.Staff{
		FullName: req.FullName,
		Gender:   req.Gender,
		Position: req.Position,
		Salary:   req.Salary,
		Photo:    req.Photo,
		Status:   "active",
	}
	if req.BirthDate != nil {
		bd, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, apierror.Validation("invalid birth_date %q", *req.BirthDate)
		}
		st.BirthDate = &bd
	}
	if err := s.repo.Create(ctx, &st); err != nil {
		return nil, apierror.From(err)
	}
	return staffToResponse(&st), nil
}

func (s *staffService) Get(ctx context.Context, id uuid.UUID) (*dto.StaffResponse, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("staff %s not found", id)
	}
	return staffToResponse(st), nil
}

func (s *staffService) List(ctx context.Context, search string) ([]dto.StaffResponse, error) {
	staffs, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, apierror.From(err)
	}
	out := make([]dto.StaffResponse, 0, len(staffs))
	for i := range staffs {
		out = append(out, *staffToResponse(&staffs[i]))
	}
	return out, nil
}

func (s *staffService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("staff %s not found", id)
	}

	if req.FullName != nil {
		// Transaction snapshots keep the old name; only new transactions see
		// this one.
		st.FullName = *req.FullName
	}
	if req.Gender != nil {
		st.Gender = *req.Gender
	}
	if req.BirthDate != nil {
		bd, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, apierror.Validation("invalid birth_date %q", *req.BirthDate)
		}
		st.BirthDate = &bd
	}
	if req.Position != nil {
		st.Position = *req.Position
	}
	if req.Salary != nil {
		st.Salary = *req.Salary
	}
	if req.Stopped != nil {
		st.Stopped = *req.Stopped
	}
	if req.Photo != nil {
		st.Photo = req.Photo
	}
	if req.Status != nil {
		st.Status = *req.Status
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, apierror.From(err)
	}
	return staffToResponse(st), nil
}

func (s *staffService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("staff %s not found", id)
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return apierror.From(err)
	}
	return nil
}

func staffToResponse(st *model.Staff) *dto.StaffResponse {
	resp := &dto.StaffResponse{
		ID:       st.ID.String(),
		FullName: st.FullName,
		Gender:   st.Gender,
		Position: st.Position,
		Salary:   st.Salary,
		Stopped:  st.Stopped,
		Photo:    st.Photo,
		Status:   st.Status,
	}
	if st.BirthDate != nil {
		bd := st.BirthDate.Format("2006-01-02")
		resp.BirthDate = &bd
	}
	return resp
}
