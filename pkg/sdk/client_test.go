package archmap

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSignIn_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/signin" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatal(err)
		}
		if creds["email"] != "sato@example.com" {
			t.Errorf("email = %q", creds["email"])
		}
		_ = json.NewEncoder(w).Encode(Session{UserID: "u1", Token: "tok-123"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	sess, err := c.SignIn(context.Background(), "sato@example.com", "password-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token != "tok-123" || c.token != "tok-123" {
		t.Errorf("token not stored: %+v", sess)
	}
}

func TestBuildings_QueryEncoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q["architect"]; len(got) != 2 {
			t.Errorf("architect params = %v", got)
		}
		if q.Get("year_from") != "1960" || q.Get("year_to") != "2000" {
			t.Errorf("year params = %v", q)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("auth header = %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode(BuildingList{Total: 1, Items: []Building{{Name: "A"}}})
	}))
	defer srv.Close()

	from, to := 1960, 2000
	list, err := New(srv.URL, WithToken("tok")).Buildings(context.Background(), Filter{
		Architects: []string{"丹下健三", "隈研吾"},
		YearFrom:   &from,
		YearTo:     &to,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.Total != 1 || list.Items[0].Name != "A" {
		t.Errorf("list = %+v", list)
	}
}

func TestNear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lat") != "35.662" || q.Get("lon") != "139.717" || q.Get("radius_m") != "2000" {
			t.Errorf("query = %v", q)
		}
		_ = json.NewEncoder(w).Encode(BuildingList{})
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Near(context.Background(), 35.662, 139.717, 2000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestToggleFavorite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/favorites/toggle" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(Toggle{Name: req["name"], Favorite: true, State: "committed"})
	}))
	defer srv.Close()

	tog, err := New(srv.URL, WithToken("tok")).ToggleFavorite(context.Background(), "根津美術館")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tog.Favorite || tog.Name != "根津美術館" {
		t.Errorf("toggle = %+v", tog)
	}
}

func TestAPIError_SentinelMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "toggle_in_flight",
			"message": "toggle already in flight",
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithToken("tok")).ToggleFavorite(context.Background(), "A")
	if !errors.Is(err, ErrToggleInFlight) {
		t.Fatalf("expected ErrToggleInFlight, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("expected *APIError")
	}
	if apiErr.Status != http.StatusConflict || apiErr.Code != "toggle_in_flight" {
		t.Errorf("api error = %+v", apiErr)
	}
}

func TestAPIError_UnknownCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"code": "remote_unavailable", "message": "retry"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Facets(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrToggleInFlight) {
		t.Error("unknown code must not map to a sentinel")
	}
}
