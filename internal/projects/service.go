package projects

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("project not found")

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

// dedupeStrings keeps first occurrences, compared by exact match.
func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// normalizeGallery dedupes and hard-caps the gallery, so the limit holds
// even when several upload completions land in a single save.
func normalizeGallery(in []string) []string {
	out := dedupeStrings(in)
	if len(out) > MaxGalleryImages {
		out = out[:MaxGalleryImages]
	}
	return out
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (Project, error) {
	now := time.Now().In(s.location)
	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	}
	highlight := strings.TrimSpace(req.HighlightColor)
	if highlight == "" {
		highlight = DefaultHighlightColor
	}

	item := Project{
		ID:             primitive.NewObjectID().Hex(),
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		Category:       strings.TrimSpace(req.Category),
		Results:        strings.TrimSpace(req.Results),
		Archived:       false,
		CoverImage:     strings.TrimSpace(req.CoverImage),
		GalleryImages:  normalizeGallery(req.GalleryImages),
		ProjectURL:     strings.TrimSpace(req.ProjectURL),
		Tags:           dedupeStrings(req.Tags),
		ClientName:     strings.TrimSpace(req.ClientName),
		CompletionDate: strings.TrimSpace(req.CompletionDate),
		HighlightColor: highlight,
		DisplayOrder:   displayOrder,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return Project{}, err
	}
	return item, nil
}

// Update rewrites the content fields; display_order is written only when
// the request carried it, so an edit never resets ordering.
func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (Project, error) {
	id = strings.TrimSpace(id)
	highlight := strings.TrimSpace(req.HighlightColor)
	if highlight == "" {
		highlight = DefaultHighlightColor
	}

	set := bson.M{
		"title":           strings.TrimSpace(req.Title),
		"description":     strings.TrimSpace(req.Description),
		"category":        strings.TrimSpace(req.Category),
		"results":         strings.TrimSpace(req.Results),
		"cover_image":     strings.TrimSpace(req.CoverImage),
		"gallery_images":  normalizeGallery(req.GalleryImages),
		"project_url":     strings.TrimSpace(req.ProjectURL),
		"tags":            dedupeStrings(req.Tags),
		"client_name":     strings.TrimSpace(req.ClientName),
		"completion_date": strings.TrimSpace(req.CompletionDate),
		"highlight_color": highlight,
		"updated_at":      time.Now().In(s.location),
	}
	if req.DisplayOrder != nil {
		set["display_order"] = *req.DisplayOrder
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	return updated, nil
}

// SetArchived is a partial update touching only the archived flag.
func (s *Service) SetArchived(ctx context.Context, id string, archived bool) (Project, error) {
	set := bson.M{
		"archived":   archived,
		"updated_at": time.Now().In(s.location),
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
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

// GetPublic returns a single project for the public detail page; archived
// projects are indistinguishable from missing ones.
func (s *Service) GetPublic(ctx context.Context, id string) (Project, error) {
	item, err := s.repo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	if item.Archived {
		return Project{}, ErrNotFound
	}
	return item, nil
}

func (s *Service) ListPublic(ctx context.Context) ([]Project, error) {
	return s.repo.ListPublic(ctx)
}

func (s *Service) ListAdmin(ctx context.Context, limit, offset int64) ([]Project, int64, error) {
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
