package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mk-cardoso198/engajapro-digital-hub/internal/validation"
)

type fakeRepo struct {
	items   map[string]Service
	order   []string
	lastSet bson.M
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]Service)}
}

func (f *fakeRepo) Create(ctx context.Context, item Service) error {
	f.items[item.ID] = item
	f.order = append(f.order, item.ID)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Service, error) {
	item, ok := f.items[id]
	if !ok {
		return Service{}, mongo.ErrNoDocuments
	}
	f.lastSet = set
	if v, ok := set["title"]; ok {
		item.Title = v.(string)
	}
	if v, ok := set["short_description"]; ok {
		item.ShortDescription = v.(string)
	}
	if v, ok := set["long_description"]; ok {
		item.LongDescription = v.(string)
	}
	if v, ok := set["back_image"]; ok {
		item.BackImage = v.(string)
	}
	if v, ok := set["front_image"]; ok {
		item.FrontImage = v.(string)
	}
	if v, ok := set["icon_image"]; ok {
		item.IconImage = v.(string)
	}
	if v, ok := set["display_order"]; ok {
		item.DisplayOrder = v.(int)
	}
	if v, ok := set["active"]; ok {
		item.Active = v.(bool)
	}
	if v, ok := set["updated_at"]; ok {
		item.UpdatedAt = v.(time.Time)
	}
	f.items[id] = item
	return item, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := f.items[id]; !ok {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

func (f *fakeRepo) ListPublic(ctx context.Context) ([]Service, error) {
	out := make([]Service, 0, len(f.order))
	for _, id := range f.order {
		item, ok := f.items[id]
		if !ok || !item.Active {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeRepo) ListAdmin(ctx context.Context, limit, offset int64) ([]Service, error) {
	all := make([]Service, 0, len(f.order))
	for _, id := range f.order {
		if item, ok := f.items[id]; ok {
			all = append(all, item)
		}
	}
	if offset >= int64(len(all)) {
		return []Service{}, nil
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

func validRequest() UpsertRequest {
	return UpsertRequest{
		Title:            "Tráfego Pago",
		ShortDescription: strings.Repeat("x", 50),
		LongDescription:  "Campanhas de mídia paga com foco em performance.",
		BackImage:        "https://cdn.test/service-images/back.jpg",
		FrontImage:       "https://cdn.test/service-images/front.jpg",
	}
}

func TestValidationRequiresBothImages(t *testing.T) {
	val := validation.New()

	req := validRequest()
	req.FrontImage = ""
	if err := val.Struct(req); err == nil {
		t.Fatalf("expected validation error for missing front image")
	}

	req = validRequest()
	req.BackImage = ""
	if err := val.Struct(req); err == nil {
		t.Fatalf("expected validation error for missing back image")
	}

	if err := val.Struct(validRequest()); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestValidationCapsShortDescription(t *testing.T) {
	val := validation.New()

	req := validRequest()
	req.ShortDescription = strings.Repeat("x", 51)
	if err := val.Struct(req); err == nil {
		t.Fatalf("expected validation error for 51-char short description")
	}

	req.ShortDescription = strings.Repeat("x", 50)
	if err := val.Struct(req); err != nil {
		t.Fatalf("expected exactly 50 chars to pass, got %v", err)
	}
}

func TestCreateForcesActive(t *testing.T) {
	repo := newFakeRepo()
	mgr := NewManager(repo, time.UTC)

	created, err := mgr.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !created.Active {
		t.Fatalf("expected new service active")
	}
	if created.DisplayOrder != 1 {
		t.Fatalf("expected display_order default 1, got %d", created.DisplayOrder)
	}
}

func TestToggleHidesFromPublicKeepsAdmin(t *testing.T) {
	repo := newFakeRepo()
	mgr := NewManager(repo, time.UTC)

	created, err := mgr.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := mgr.ToggleActive(context.Background(), created.ID, false); err != nil {
		t.Fatalf("ToggleActive error: %v", err)
	}

	public, err := mgr.ListPublic(context.Background())
	if err != nil {
		t.Fatalf("ListPublic error: %v", err)
	}
	if len(public) != 0 {
		t.Fatalf("expected inactive service hidden from public list")
	}

	admin, total, err := mgr.ListAdmin(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("ListAdmin error: %v", err)
	}
	if len(admin) != 1 || total != 1 {
		t.Fatalf("expected inactive service in admin list")
	}

	for field := range repo.lastSet {
		if field != "active" && field != "updated_at" {
			t.Fatalf("toggle wrote unexpected field %q", field)
		}
	}
}

func TestUpdateKeepsIdentity(t *testing.T) {
	repo := newFakeRepo()
	mgr := NewManager(repo, time.UTC)

	created, err := mgr.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	req := validRequest()
	req.Title = "Gestão de Redes Sociais"
	updated, err := mgr.Update(context.Background(), created.ID, req)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("update changed id: %s -> %s", created.ID, updated.ID)
	}
	if updated.Title != "Gestão de Redes Sociais" {
		t.Fatalf("unexpected title %q", updated.Title)
	}
}

func TestDeleteMissingReturnsNotFound(t *testing.T) {
	repo := newFakeRepo()
	mgr := NewManager(repo, time.UTC)

	if err := mgr.Delete(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func intPtr(v int) *int { return &v }

func TestUpdateOmittedFieldsStayUnchanged(t *testing.T) {
	repo := newFakeRepo()
	mgr := NewManager(repo, time.UTC)

	req := validRequest()
	req.DisplayOrder = intPtr(4)
	created, err := mgr.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := mgr.ToggleActive(context.Background(), created.ID, false); err != nil {
		t.Fatalf("ToggleActive error: %v", err)
	}

	edit := validRequest()
	edit.Title = "Gestão de Redes Sociais"
	updated, err := mgr.Update(context.Background(), created.ID, edit)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Active {
		t.Fatalf("update without active flag reactivated the service")
	}
	if updated.DisplayOrder != 4 {
		t.Fatalf("update without display_order reset ordering to %d", updated.DisplayOrder)
	}
	for _, field := range []string{"active", "display_order"} {
		if _, ok := repo.lastSet[field]; ok {
			t.Fatalf("expected %s absent from set, got %v", field, repo.lastSet)
		}
	}
}
