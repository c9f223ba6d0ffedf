// game/api/handlers_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/ordemrpg/go-services/game/service"
	"github.com/ordemrpg/go-services/shared/auth"
	"github.com/ordemrpg/go-services/shared/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// memProfileStore is a minimal in-memory ProfileStore for routing tests. The
// guarded-write semantics live in the service package tests; here we only
// need enough behavior to drive status codes.
type memProfileStore struct {
	profiles map[string]*models.Profile
}

func newMemProfileStore() *memProfileStore {
	return &memProfileStore{profiles: make(map[string]*models.Profile)}
}

func (m *memProfileStore) Create(ctx context.Context, profile *models.Profile) error {
	m.profiles[profile.ID] = profile
	return nil
}

func (m *memProfileStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *p
	return &cp, nil
}

func (m *memProfileStore) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	for _, p := range m.profiles {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memProfileStore) ApplyUpdate(ctx context.Context, id string, update *service.ProfileUpdate) error {
	p, ok := m.profiles[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if update.Username != nil {
		p.Username = *update.Username
	}
	if update.Experience != nil {
		p.Experience = *update.Experience
	}
	if update.Level != nil {
		p.Level = *update.Level
	}
	return nil
}

func (m *memProfileStore) Delete(ctx context.Context, id string) error {
	delete(m.profiles, id)
	return nil
}

func (m *memProfileStore) GrantReward(ctx context.Context, id string, delta service.RewardDelta) (*models.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	p.Experience += delta.Experience
	p.Level = service.LevelForExperience(p.Experience)
	p.Gold += delta.Gold
	p.CreatureKills += delta.CreatureKills
	cp := *p
	return &cp, nil
}

// memShopStore serves a single fixed item.
type memShopStore struct {
	item models.ShopItem
}

func (m *memShopStore) GetItemByID(ctx context.Context, id string) (*models.ShopItem, error) {
	if id != m.item.ID {
		return nil, mongo.ErrNoDocuments
	}
	cp := m.item
	return &cp, nil
}

func (m *memShopStore) ListItems(ctx context.Context) ([]models.ShopItem, error) {
	return []models.ShopItem{m.item}, nil
}

func (m *memShopStore) CreateItem(ctx context.Context, item *models.ShopItem) error { return nil }
func (m *memShopStore) UpdateItem(ctx context.Context, item *models.ShopItem) error { return nil }
func (m *memShopStore) DeleteItem(ctx context.Context, id string) error             { return nil }
func (m *memShopStore) RestoreStock(ctx context.Context, id string, qty int) error  { return nil }

func (m *memShopStore) ReserveStock(ctx context.Context, id string, qty int) (bool, error) {
	if m.item.Stock < qty {
		return false, nil
	}
	m.item.Stock -= qty
	return true, nil
}

// memPurchaser adapts memProfileStore to the shop's purchase writes.
type memPurchaser struct{ *memProfileStore }

func (m memPurchaser) CommitPurchase(ctx context.Context, id string, cost int, inventory []models.InventoryItem) (bool, error) {
	p, ok := m.profiles[id]
	if !ok || p.Gold < cost {
		return false, nil
	}
	p.Gold -= cost
	p.Inventory = inventory
	return true, nil
}

func (m memPurchaser) DeductGold(ctx context.Context, id string, amount int) (bool, error) {
	p, ok := m.profiles[id]
	if !ok || p.Gold < amount {
		return false, nil
	}
	p.Gold -= amount
	return true, nil
}

type memAgentStore struct{}

func (memAgentStore) GetAgentByID(ctx context.Context, id string) (*models.Agent, error) {
	return nil, mongo.ErrNoDocuments
}
func (memAgentStore) ListAgents(ctx context.Context) ([]models.Agent, error)         { return nil, nil }
func (memAgentStore) CreateAgent(ctx context.Context, agent *models.Agent) error     { return nil }
func (memAgentStore) DeleteAgent(ctx context.Context, id string) error               { return nil }
func (memAgentStore) AddRecruit(ctx context.Context, r *models.RecruitedAgent) error { return nil }
func (memAgentStore) ListRecruitsByUser(ctx context.Context, userID string) ([]models.RecruitedAgent, error) {
	return nil, nil
}

func testRouter(t *testing.T) (*mux.Router, *memProfileStore) {
	t.Helper()

	profiles := newMemProfileStore()
	shop := &memShopStore{item: models.ShopItem{
		ID: "item-1", Name: "Ritual Dagger", Type: models.ItemTypeWeapon,
		Rarity: models.RarityRare, Price: 50, Stock: 5,
	}}

	profileService := service.NewProfileService(profiles)
	shopService := service.NewShopService(shop, memPurchaser{profiles}, memAgentStore{})

	handlers := NewGameAPIHandlers(profileService, profileService, shopService, nil, nil, nil)
	router := mux.NewRouter()
	router.Use(auth.Middleware([]string{"mestre@ordem.example"}))
	handlers.RegisterRoutes(router)
	return router, profiles
}

func doJSON(t *testing.T, router *mux.Router, method, path, userID, email string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set(auth.UserIDHeader, userID)
	}
	if email != "" {
		req.Header.Set(auth.UserEmailHeader, email)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateProfileRequiresIdentity(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/profiles", "", "", CreateProfileRequest{Username: "Arlindo"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCreateAndGetProfile(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/profiles", "user-1", "player@ordem.example", CreateProfileRequest{
		Username: "Arlindo",
		Class:    string(models.ClassOcultista),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	var created models.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode created profile: %v", err)
	}

	rec = doJSON(t, router, http.MethodGet, "/profiles/"+created.ID, "", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d, want 200", rec.Code)
	}
}

func TestGetProfileNotFoundStatus(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/profiles/missing", "", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestBuyItemInsufficientFundsStatus(t *testing.T) {
	router, profiles := testRouter(t)
	profiles.Create(context.Background(), &models.Profile{
		ID: "profile-1", UserID: "user-1", Username: "Arlindo", Gold: 120,
	})

	rec := doJSON(t, router, http.MethodPost, "/shop/items/item-1/buy", "user-1", "", BuyItemRequest{Quantity: 3})
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402 (body: %s)", rec.Code, rec.Body.String())
	}

	var errResp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if errResp.Message != "Insufficient funds: 30 gold short" {
		t.Errorf("message = %q, want the 30 gold shortfall", errResp.Message)
	}
}

func TestBuyItemSuccessStatus(t *testing.T) {
	router, profiles := testRouter(t)
	profiles.Create(context.Background(), &models.Profile{
		ID: "profile-1", UserID: "user-1", Username: "Arlindo", Gold: 120,
		Inventory: []models.InventoryItem{},
	})

	rec := doJSON(t, router, http.MethodPost, "/shop/items/item-1/buy", "user-1", "", BuyItemRequest{Quantity: 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var profile models.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.Gold != 20 {
		t.Errorf("gold = %d, want 20", profile.Gold)
	}
}

func TestMasterOnlyRouteRejectsRegularUser(t *testing.T) {
	router, _ := testRouter(t)

	item := models.ShopItem{Name: "Lantern", Price: 5, Stock: 1}
	rec := doJSON(t, router, http.MethodPost, "/shop/items", "user-1", "player@ordem.example", item)
	if rec.Code != http.StatusForbidden {
		t.Errorf("regular user status = %d, want 403", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/shop/items", "master-1", "mestre@ordem.example", item)
	if rec.Code != http.StatusCreated {
		t.Errorf("master status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}
}
