package clients

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items   map[string]Client
	order   []string
	lastSet bson.M
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]Client)}
}

func (f *fakeRepo) Create(ctx context.Context, item Client) error {
	f.items[item.ID] = item
	f.order = append(f.order, item.ID)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Client, error) {
	item, ok := f.items[id]
	if !ok {
		return Client{}, mongo.ErrNoDocuments
	}
	f.lastSet = set
	if v, ok := set["name"]; ok {
		item.Name = v.(string)
	}
	if v, ok := set["logo_url"]; ok {
		item.LogoURL = v.(string)
	}
	if v, ok := set["display_order"]; ok {
		item.DisplayOrder = v.(int)
	}
	if v, ok := set["active"]; ok {
		item.Active = v.(bool)
	}
	if v, ok := set["row_position"]; ok {
		item.RowPosition = v.(int)
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

func (f *fakeRepo) ListPublic(ctx context.Context) ([]Client, error) {
	out := make([]Client, 0, len(f.order))
	for _, id := range f.order {
		item, ok := f.items[id]
		if !ok || !item.Active {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeRepo) ListAdmin(ctx context.Context, limit, offset int64) ([]Client, error) {
	all := make([]Client, 0, len(f.order))
	for _, id := range f.order {
		if item, ok := f.items[id]; ok {
			all = append(all, item)
		}
	}
	if offset >= int64(len(all)) {
		return []Client{}, nil
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

func newTestService(repo Repository) *Service {
	return NewService(repo, time.UTC)
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), UpsertRequest{
		Name:    "  Empresa ABC  ",
		LogoURL: "https://cdn.test/client-logos/abc.png",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Name != "Empresa ABC" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if !created.Active {
		t.Fatalf("expected active default true")
	}
	if created.RowPosition != 1 {
		t.Fatalf("expected row_position default 1, got %d", created.RowPosition)
	}
	if created.DisplayOrder != 0 {
		t.Fatalf("expected display_order default 0, got %d", created.DisplayOrder)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestCreateThenListRoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), UpsertRequest{
		Name:         "Empresa ABC",
		LogoURL:      "https://cdn.test/client-logos/abc.png",
		DisplayOrder: intPtr(3),
		RowPosition:  intPtr(2),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	items, total, err := svc.ListAdmin(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("ListAdmin error: %v", err)
	}
	if len(items) != 1 || total != 1 {
		t.Fatalf("expected 1 item and total 1, got %d items total %d", len(items), total)
	}
	got := items[0]
	if got.Name != created.Name || got.LogoURL != created.LogoURL ||
		got.DisplayOrder != created.DisplayOrder || got.RowPosition != created.RowPosition {
		t.Fatalf("listed client differs from created: %+v vs %+v", got, created)
	}
}

func TestToggleActiveTouchesOnlyActive(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), UpsertRequest{
		Name:         "Empresa ABC",
		LogoURL:      "https://cdn.test/client-logos/abc.png",
		DisplayOrder: intPtr(7),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	toggled, err := svc.ToggleActive(context.Background(), created.ID, false)
	if err != nil {
		t.Fatalf("ToggleActive error: %v", err)
	}
	if toggled.Active {
		t.Fatalf("expected active=false after toggle")
	}
	if toggled.Name != created.Name || toggled.LogoURL != created.LogoURL || toggled.DisplayOrder != 7 {
		t.Fatalf("toggle modified unrelated fields: %+v", toggled)
	}

	for field := range repo.lastSet {
		if field != "active" && field != "updated_at" {
			t.Fatalf("toggle wrote unexpected field %q", field)
		}
	}
}

func TestInactiveHiddenFromPublicList(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), UpsertRequest{
		Name:    "Empresa ABC",
		LogoURL: "https://cdn.test/client-logos/abc.png",
		Active:  boolPtr(false),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	public, err := svc.ListPublic(context.Background())
	if err != nil {
		t.Fatalf("ListPublic error: %v", err)
	}
	if len(public) != 0 {
		t.Fatalf("expected inactive client hidden from public list")
	}

	admin, _, err := svc.ListAdmin(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("ListAdmin error: %v", err)
	}
	if len(admin) != 1 || admin[0].ID != created.ID {
		t.Fatalf("expected inactive client visible to admin")
	}
}

func TestAdminListPaginates(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), UpsertRequest{
			Name:         "Cliente " + string(rune('A'+i)),
			LogoURL:      "https://cdn.test/client-logos/logo.png",
			DisplayOrder: intPtr(i),
		})
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	page, total, err := svc.ListAdmin(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("ListAdmin error: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 items on page, got %d", len(page))
	}
	if page[0].Name != "Cliente C" || page[1].Name != "Cliente D" {
		t.Fatalf("unexpected page contents: %q, %q", page[0].Name, page[1].Name)
	}
}

func TestDeleteMissingReturnsNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), "nope")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateOmittedFieldsStayUnchanged(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	item, err := svc.Create(context.Background(), UpsertRequest{
		Name:         "Clínica Vitale",
		LogoURL:      "https://cdn.example.com/vitale.png",
		Active:       boolPtr(false),
		DisplayOrder: intPtr(7),
		RowPosition:  intPtr(2),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), item.ID, UpsertRequest{
		Name:    "Clínica Vitale Prime",
		LogoURL: "https://cdn.example.com/vitale-prime.png",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Clínica Vitale Prime" {
		t.Fatalf("expected renamed client, got %q", updated.Name)
	}
	if updated.Active || updated.DisplayOrder != 7 || updated.RowPosition != 2 {
		t.Fatalf("omitted fields were reset: active=%v display_order=%d row_position=%d",
			updated.Active, updated.DisplayOrder, updated.RowPosition)
	}
	for _, field := range []string{"active", "display_order", "row_position"} {
		if _, ok := repo.lastSet[field]; ok {
			t.Fatalf("expected %s absent from set, got %v", field, repo.lastSet)
		}
	}
}
