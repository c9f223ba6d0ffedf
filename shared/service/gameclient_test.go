// shared/service/gameclient_test.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ordemrpg/go-services/shared/api"
	"github.com/ordemrpg/go-services/shared/models"
)

func TestGameClientForwardsIdentity(t *testing.T) {
	var gotUserID, gotEmail string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.Header.Get("X-User-ID")
		gotEmail = r.Header.Get("X-User-Email")
		json.NewEncoder(w).Encode(models.Profile{ID: "profile-1", UserID: gotUserID})
	}))
	defer server.Close()

	client := NewGameClient(server.URL, nil).As("user-1", "player@ordem.example")
	profile, err := client.GetProfileByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetProfileByUser returned error: %v", err)
	}

	if gotUserID != "user-1" || gotEmail != "player@ordem.example" {
		t.Errorf("forwarded identity = %q/%q, want user-1/player@ordem.example", gotUserID, gotEmail)
	}
	if profile.ID != "profile-1" {
		t.Errorf("profile id = %q, want profile-1", profile.ID)
	}
}

func TestGameClientBuyItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shop/items/item-1/buy" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]int
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if body["quantity"] != 2 {
			t.Errorf("quantity = %d, want 2", body["quantity"])
		}
		json.NewEncoder(w).Encode(models.Profile{ID: "profile-1", Gold: 20})
	}))
	defer server.Close()

	client := NewGameClient(server.URL, nil).As("user-1", "")
	profile, err := client.BuyItem(context.Background(), "item-1", 2)
	if err != nil {
		t.Fatalf("BuyItem returned error: %v", err)
	}
	if profile.Gold != 20 {
		t.Errorf("gold = %d, want 20", profile.Gold)
	}
}

func TestGameClientMapsInsufficientFunds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]string{"message": "Insufficient funds: 30 gold short"})
	}))
	defer server.Close()

	client := NewGameClient(server.URL, nil)
	_, err := client.BuyItem(context.Background(), "item-1", 3)
	if !errors.Is(err, api.ErrPaymentRequired) {
		t.Fatalf("error = %v, want api.ErrPaymentRequired", err)
	}
}

func TestGameClientMapsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "profile not found"})
	}))
	defer server.Close()

	client := NewGameClient(server.URL, nil)
	if _, err := client.GetProfile(context.Background(), "missing"); !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("error = %v, want api.ErrNotFound", err)
	}
}

func TestGameClientCurrentTeamEmptyState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
	}))
	defer server.Close()

	client := NewGameClient(server.URL, nil)
	team, err := client.CurrentTeam(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("CurrentTeam returned error: %v", err)
	}
	if team != nil {
		t.Errorf("team = %+v, want nil for the no-team state", team)
	}
}
