package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("service not found")

type Manager struct {
	repo     Repository
	location *time.Location
}

func NewManager(repo Repository, location *time.Location) *Manager {
	return &Manager{
		repo:     repo,
		location: location,
	}
}

func (m *Manager) Create(ctx context.Context, req UpsertRequest) (Service, error) {
	now := time.Now().In(m.location)
	displayOrder := 1
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	}

	// New services always start visible; the admin toggles later.
	item := Service{
		ID:               primitive.NewObjectID().Hex(),
		Title:            strings.TrimSpace(req.Title),
		ShortDescription: strings.TrimSpace(req.ShortDescription),
		LongDescription:  strings.TrimSpace(req.LongDescription),
		BackImage:        strings.TrimSpace(req.BackImage),
		FrontImage:       strings.TrimSpace(req.FrontImage),
		IconImage:        strings.TrimSpace(req.IconImage),
		DisplayOrder:     displayOrder,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := m.repo.Create(ctx, item); err != nil {
		return Service{}, err
	}
	return item, nil
}

// Update rewrites the required fields; optional fields are written only
// when the request carried them, so a rename never resets state.
func (m *Manager) Update(ctx context.Context, id string, req UpsertRequest) (Service, error) {
	id = strings.TrimSpace(id)

	set := bson.M{
		"title":             strings.TrimSpace(req.Title),
		"short_description": strings.TrimSpace(req.ShortDescription),
		"long_description":  strings.TrimSpace(req.LongDescription),
		"back_image":        strings.TrimSpace(req.BackImage),
		"front_image":       strings.TrimSpace(req.FrontImage),
		"icon_image":        strings.TrimSpace(req.IconImage),
		"updated_at":        time.Now().In(m.location),
	}
	if req.Active != nil {
		set["active"] = *req.Active
	}
	if req.DisplayOrder != nil {
		set["display_order"] = *req.DisplayOrder
	}

	updated, err := m.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Service{}, ErrNotFound
		}
		return Service{}, err
	}
	return updated, nil
}

// ToggleActive is a partial update touching only the active flag.
func (m *Manager) ToggleActive(ctx context.Context, id string, active bool) (Service, error) {
	set := bson.M{
		"active":     active,
		"updated_at": time.Now().In(m.location),
	}

	updated, err := m.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Service{}, ErrNotFound
		}
		return Service{}, err
	}
	return updated, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	deleted, err := m.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (m *Manager) ListPublic(ctx context.Context) ([]Service, error) {
	return m.repo.ListPublic(ctx)
}

func (m *Manager) ListAdmin(ctx context.Context, limit, offset int64) ([]Service, int64, error) {
	items, err := m.repo.ListAdmin(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := m.repo.CountAdmin(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
