package service

import (
	"context"
	"testing"

	"stockroom/internal/apierror"
	"stockroom/internal/dto"
	"stockroom/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCategoryRepo struct {
	items map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{items: make(map[uuid.UUID]*model.Category)}
}

func (s *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	s.items[c.ID] = &cp
	return nil
}

func (s *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range s.items {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range s.items {
		if c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	cp := *c
	s.items[c.ID] = &cp
	return nil
}

func (s *stubCategoryRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if c, ok := s.items[id]; ok {
		c.Active = false
	}
	return nil
}

type stubBrandRepo struct {
	items map[uuid.UUID]*model.Brand
}

func newStubBrandRepo() *stubBrandRepo {
	return &stubBrandRepo{items: make(map[uuid.UUID]*model.Brand)}
}

func (s *stubBrandRepo) Create(_ context.Context, b *model.Brand) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	cp := *b
	s.items[b.ID] = &cp
	return nil
}

func (s *stubBrandRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Brand, error) {
	b, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *stubBrandRepo) FindByName(_ context.Context, name string) (*model.Brand, error) {
	for _, b := range s.items {
		if b.Name == name {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubBrandRepo) List(_ context.Context) ([]model.Brand, error) {
	var out []model.Brand
	for _, b := range s.items {
		if b.Active {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *stubBrandRepo) Update(_ context.Context, b *model.Brand) error {
	cp := *b
	s.items[b.ID] = &cp
	return nil
}

func (s *stubBrandRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if b, ok := s.items[id]; ok {
		b.Active = false
	}
	return nil
}

func TestCategoryCreateDuplicateNameConflicts(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateCategoryRequest{Name: "Drinks"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateCategoryRequest{Name: "Drinks"})
	require.True(t, apierror.IsKind(err, apierror.KindConflict))
}

func TestCategoryDeleteDeactivates(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateCategoryRequest{Name: "Drinks"})
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	require.NoError(t, svc.Delete(ctx, id))

	// Gone from the active listing, still resolvable by id.
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.False(t, got.Active)
}

func TestCategoryRenameToExistingConflicts(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateCategoryRequest{Name: "Drinks"})
	require.NoError(t, err)
	snacks, err := svc.Create(ctx, dto.CreateCategoryRequest{Name: "Snacks"})
	require.NoError(t, err)

	name := "Drinks"
	_, err = svc.Update(ctx, uuid.MustParse(snacks.ID), dto.UpdateCategoryRequest{Name: &name})
	require.True(t, apierror.IsKind(err, apierror.KindConflict))
}

func TestBrandUnknownIDIsNotFound(t *testing.T) {
	svc := NewBrandService(newStubBrandRepo())
	_, err := svc.Get(context.Background(), uuid.New())
	require.True(t, apierror.IsKind(err, apierror.KindNotFound))
}
