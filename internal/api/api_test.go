package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/santa/internal/auth"
	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/internal/service"
	"github.com/mmynk/santa/internal/storage/sqlite"
)

var testPasswords = map[string]string{
	"alice": "pa", "bob": "pb", "carol": "pc", "dave": "pd",
}

func testGroups() []models.Group {
	return []models.Group{{
		ID: "family", Name: "Family Exchange", Budget: 50, Currency: "$",
		Participants: []models.Participant{
			{Username: "alice", Name: "Alice", Password: "pa"},
			{Username: "bob", Name: "Bob", Password: "pb"},
			{Username: "carol", Name: "Carol", Password: "pc"},
			{Username: "dave", Name: "Dave", Password: "pd"},
		},
	}}
}

// setupTestServer reconciles a fresh store and serves the full API over
// httptest.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	groups := testGroups()
	exchange := service.NewExchangeService(store, groups)
	if err := exchange.Reconcile(context.Background()); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	srv := NewServer(
		exchange,
		service.NewWishService(store),
		auth.NewAuthenticator(groups),
		auth.NewJWTManager("test-secret", time.Hour),
	)

	server := httptest.NewServer(srv.Handler())
	t.Cleanup(server.Close)
	return server
}

func doRequest(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return resp, out.Bytes()
}

func login(t *testing.T, serverURL, username string) string {
	t.Helper()

	resp, body := doRequest(t, http.MethodPost, serverURL+"/api/v1/login", "", map[string]string{
		"username": username,
		"password": testPasswords[username],
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login for %q failed: %d %s", username, resp.StatusCode, body)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to parse login response: %v", err)
	}
	if out.Token == "" {
		t.Fatal("login returned empty token")
	}
	return out.Token
}

func TestLogin(t *testing.T) {
	server := setupTestServer(t)

	t.Run("valid credentials return a token", func(t *testing.T) {
		login(t, server.URL, "alice")
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodPost, server.URL+"/api/v1/login", "", map[string]string{
			"username": "alice", "password": "wrong",
		})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/login", bytes.NewBufferString("{"))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestAuthRequired(t *testing.T) {
	server := setupTestServer(t)

	for _, url := range []string{
		server.URL + "/api/v1/me/groups",
		server.URL + "/api/v1/me/wishes",
		server.URL + "/api/v1/groups/family/assignment",
	} {
		resp, _ := doRequest(t, http.MethodGet, url, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 without token, got %d", url, resp.StatusCode)
		}
	}

	resp, _ := doRequest(t, http.MethodGet, server.URL+"/api/v1/me/groups", "garbage-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad token, got %d", resp.StatusCode)
	}
}

func TestMyGroups(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server.URL, "alice")

	resp, body := doRequest(t, http.MethodGet, server.URL+"/api/v1/me/groups", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out struct {
		Groups []struct {
			ID       string  `json:"id"`
			Budget   float64 `json:"budget"`
			Currency string  `json:"currency"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(out.Groups) != 1 || out.Groups[0].ID != "family" {
		t.Fatalf("unexpected groups: %+v", out.Groups)
	}
	if out.Groups[0].Budget != 50 || out.Groups[0].Currency != "$" {
		t.Errorf("budget/currency not surfaced: %+v", out.Groups[0])
	}
}

func TestAssignmentAndWishFlow(t *testing.T) {
	server := setupTestServer(t)
	aliceToken := login(t, server.URL, "alice")

	// Alice finds out who she gives to.
	resp, body := doRequest(t, http.MethodGet, server.URL+"/api/v1/groups/family/assignment", aliceToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var assignment struct {
		Recipient struct {
			Username string `json:"username"`
			Name     string `json:"name"`
		} `json:"recipient"`
		Wishes []models.WishItem `json:"wishes"`
	}
	if err := json.Unmarshal(body, &assignment); err != nil {
		t.Fatalf("failed to parse assignment: %v", err)
	}
	if assignment.Recipient.Username == "" || assignment.Recipient.Username == "alice" {
		t.Fatalf("bad recipient: %+v", assignment.Recipient)
	}
	if len(assignment.Wishes) != 0 {
		t.Fatalf("expected empty wish list, got %d", len(assignment.Wishes))
	}

	// The recipient adds a wish...
	recipientToken := login(t, server.URL, assignment.Recipient.Username)
	resp, body = doRequest(t, http.MethodPost, server.URL+"/api/v1/me/wishes", recipientToken,
		map[string]string{"content": "wool socks"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}
	var created models.WishItem
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("failed to parse created wish: %v", err)
	}

	// ...and Alice, their giver, sees it.
	resp, body = doRequest(t, http.MethodGet, server.URL+"/api/v1/groups/family/assignment", aliceToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &assignment); err != nil {
		t.Fatalf("failed to parse assignment: %v", err)
	}
	if len(assignment.Wishes) != 1 || assignment.Wishes[0].Content != "wool socks" {
		t.Fatalf("giver cannot see recipient wish: %+v", assignment.Wishes)
	}

	// The recipient removes the wish; a second delete is a 404.
	wishURL := fmt.Sprintf("%s/api/v1/me/wishes/%s", server.URL, created.ID)
	resp, _ = doRequest(t, http.MethodDelete, wishURL, recipientToken, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	resp, _ = doRequest(t, http.MethodDelete, wishURL, recipientToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for double delete, got %d", resp.StatusCode)
	}

	// Another user cannot delete somebody else's wish either.
	resp, body = doRequest(t, http.MethodPost, server.URL+"/api/v1/me/wishes", recipientToken,
		map[string]string{"content": "a kettle"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("failed to parse created wish: %v", err)
	}
	resp, _ = doRequest(t, http.MethodDelete,
		fmt.Sprintf("%s/api/v1/me/wishes/%s", server.URL, created.ID), aliceToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for cross-user delete, got %d", resp.StatusCode)
	}
}

func TestAssignmentUnknownGroup(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server.URL, "alice")

	resp, _ := doRequest(t, http.MethodGet, server.URL+"/api/v1/groups/nope/assignment", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown group, got %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	server := setupTestServer(t)

	resp, _ := doRequest(t, http.MethodGet, server.URL+"/healthz", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
