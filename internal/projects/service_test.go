package projects

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items   []Project
	lastSet bson.M
}

func (f *fakeRepo) Create(ctx context.Context, item Project) error {
	f.items = append(f.items, item)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Project, error) {
	f.lastSet = set
	for i := range f.items {
		if f.items[i].ID != id {
			continue
		}
		if v, ok := set["title"]; ok {
			f.items[i].Title = v.(string)
		}
		if v, ok := set["archived"]; ok {
			f.items[i].Archived = v.(bool)
		}
		if v, ok := set["gallery_images"]; ok {
			f.items[i].GalleryImages = v.([]string)
		}
		if v, ok := set["highlight_color"]; ok {
			f.items[i].HighlightColor = v.(string)
		}
		if v, ok := set["updated_at"]; ok {
			f.items[i].UpdatedAt = v.(time.Time)
		}
		return f.items[i], nil
	}
	return Project{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (Project, error) {
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return Project{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) ListAdmin(ctx context.Context, limit, offset int64) ([]Project, error) {
	all := append([]Project(nil), f.items...)
	if offset >= int64(len(all)) {
		return []Project{}, nil
	}
	all = all[offset:]
	if limit < int64(len(all)) {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeRepo) CountAdmin(ctx context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func (f *fakeRepo) ListPublic(ctx context.Context) ([]Project, error) {
	out := make([]Project, 0, len(f.items))
	for _, item := range f.items {
		if !item.Archived {
			out = append(out, item)
		}
	}
	return out, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, time.UTC)
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	item, err := svc.Create(context.Background(), UpsertRequest{
		Title:       "  Landing Page Imob  ",
		Description: "Captação para lançamento",
		Category:    "sites",
		CoverImage:  "https://cdn.example.com/cover.jpg",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.ID == "" {
		t.Fatalf("expected generated id")
	}
	if item.Title != "Landing Page Imob" {
		t.Fatalf("expected trimmed title, got %q", item.Title)
	}
	if item.Archived {
		t.Fatalf("new project must start unarchived")
	}
	if item.HighlightColor != DefaultHighlightColor {
		t.Fatalf("expected default highlight %s, got %s", DefaultHighlightColor, item.HighlightColor)
	}
	if item.DisplayOrder != 0 {
		t.Fatalf("expected display order 0, got %d", item.DisplayOrder)
	}
}

func TestCreateDedupesAndCapsGallery(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	gallery := []string{
		"https://cdn.example.com/1.jpg",
		"https://cdn.example.com/1.jpg",
		"https://cdn.example.com/2.jpg",
		"https://cdn.example.com/3.jpg",
		"https://cdn.example.com/4.jpg",
		"https://cdn.example.com/5.jpg",
		"https://cdn.example.com/6.jpg",
	}
	item, err := svc.Create(context.Background(), UpsertRequest{
		Title:         "Ensaio",
		CoverImage:    "https://cdn.example.com/cover.jpg",
		GalleryImages: gallery,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(item.GalleryImages) != MaxGalleryImages {
		t.Fatalf("expected gallery capped at %d, got %d", MaxGalleryImages, len(item.GalleryImages))
	}
	if item.GalleryImages[0] != "https://cdn.example.com/1.jpg" || item.GalleryImages[1] != "https://cdn.example.com/2.jpg" {
		t.Fatalf("expected dedupe to keep first occurrences, got %v", item.GalleryImages)
	}
}

func TestSetArchivedTouchesOnlyArchivedFlag(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	item, err := svc.Create(context.Background(), UpsertRequest{
		Title:      "Projeto Antigo",
		CoverImage: "https://cdn.example.com/cover.jpg",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.SetArchived(context.Background(), item.ID, true)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if !updated.Archived {
		t.Fatalf("expected archived true")
	}
	if len(repo.lastSet) != 2 {
		t.Fatalf("expected partial update with 2 fields, got %v", repo.lastSet)
	}
	if _, ok := repo.lastSet["archived"]; !ok {
		t.Fatalf("expected archived in set, got %v", repo.lastSet)
	}
	if _, ok := repo.lastSet["updated_at"]; !ok {
		t.Fatalf("expected updated_at in set, got %v", repo.lastSet)
	}
}

func TestArchivedHiddenFromPublicKeptInAdmin(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	item, err := svc.Create(context.Background(), UpsertRequest{
		Title:      "Case Encerrado",
		CoverImage: "https://cdn.example.com/cover.jpg",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.SetArchived(context.Background(), item.ID, true); err != nil {
		t.Fatalf("archive: %v", err)
	}

	public, err := svc.ListPublic(context.Background())
	if err != nil {
		t.Fatalf("public list: %v", err)
	}
	if len(public) != 0 {
		t.Fatalf("expected archived project hidden from public, got %d", len(public))
	}

	admin, total, err := svc.ListAdmin(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(admin) != 1 || total != 1 {
		t.Fatalf("expected archived project in admin list, got %d", len(admin))
	}

	if _, err := svc.GetPublic(context.Background(), item.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for archived detail, got %v", err)
	}
}

func TestDeleteMissingReturnsNotFound(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func intPtr(v int) *int { return &v }

func TestUpdateOmittedDisplayOrderStaysUnchanged(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	item, err := svc.Create(context.Background(), UpsertRequest{
		Title:        "Campanha Verão",
		CoverImage:   "https://cdn.example.com/cover.jpg",
		DisplayOrder: intPtr(3),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(context.Background(), item.ID, UpsertRequest{
		Title:      "Campanha Verão 2026",
		CoverImage: "https://cdn.example.com/cover-v2.jpg",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok := repo.lastSet["display_order"]; ok {
		t.Fatalf("expected display_order absent from set, got %v", repo.lastSet)
	}
}
