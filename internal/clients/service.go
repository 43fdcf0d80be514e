package clients

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("client not found")

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		location: location,
	}
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (Client, error) {
	now := time.Now().In(s.location)
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	}
	rowPosition := 1
	if req.RowPosition != nil {
		rowPosition = *req.RowPosition
	}

	item := Client{
		ID:           primitive.NewObjectID().Hex(),
		Name:         strings.TrimSpace(req.Name),
		LogoURL:      strings.TrimSpace(req.LogoURL),
		DisplayOrder: displayOrder,
		Active:       active,
		RowPosition:  rowPosition,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return Client{}, err
	}
	return item, nil
}

// Update rewrites the required fields; optional fields are written only
// when the request carried them, so a rename never resets state.
func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (Client, error) {
	id = strings.TrimSpace(id)

	set := bson.M{
		"name":       strings.TrimSpace(req.Name),
		"logo_url":   strings.TrimSpace(req.LogoURL),
		"updated_at": time.Now().In(s.location),
	}
	if req.Active != nil {
		set["active"] = *req.Active
	}
	if req.DisplayOrder != nil {
		set["display_order"] = *req.DisplayOrder
	}
	if req.RowPosition != nil {
		set["row_position"] = *req.RowPosition
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Client{}, ErrNotFound
		}
		return Client{}, err
	}
	return updated, nil
}

// ToggleActive is a partial update touching only the active flag.
func (s *Service) ToggleActive(ctx context.Context, id string, active bool) (Client, error) {
	set := bson.M{
		"active":     active,
		"updated_at": time.Now().In(s.location),
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Client{}, ErrNotFound
		}
		return Client{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListPublic(ctx context.Context) ([]Client, error) {
	return s.repo.ListPublic(ctx)
}

func (s *Service) ListAdmin(ctx context.Context, limit, offset int64) ([]Client, int64, error) {
	items, err := s.repo.ListAdmin(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountAdmin(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
