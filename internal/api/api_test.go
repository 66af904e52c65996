package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/polica/internal/config"
	"github.com/erazemk/polica/internal/inventory"
	"github.com/erazemk/polica/internal/model"
	"github.com/erazemk/polica/internal/service"
	"github.com/erazemk/polica/internal/storage"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	dir := t.TempDir()
	store := inventory.New(inventory.Options{
		Storage:  storage.NewFileStore(filepath.Join(dir, "inventory.json")),
		PhotoDir: filepath.Join(dir, "photos"),
	})
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	registry := service.NewRegistry()
	service.RegisterInventory(registry, store)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	router := NewRouter(store, registry, config.AuthConfig{
		Username:     "admin",
		PasswordHash: string(hash),
		JWTSecret:    testJWTSecret,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Get token.
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "password"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	token := loginResp["token"]
	if token == "" {
		t.Fatal("empty token from login")
	}

	return server, token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func createItem(t *testing.T, server *httptest.Server, token, name string) model.Item {
	t.Helper()

	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]string{"name": name})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var item model.Item
	json.NewDecoder(resp.Body).Decode(&item)
	return item
}

func TestLoginEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	// Test invalid credentials.
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUnauthenticatedAccess(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/items")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated request, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestItemsAPIFlow(t *testing.T) {
	server, token := setupTestServer(t)
	item := createItem(t, server, token, "Laptop")

	if item.ID == "" || item.Quantity != 1.0 || item.Unit != "pcs" {
		t.Errorf("unexpected created item: %+v", item)
	}

	// Partial update.
	req, _ := authRequest("PATCH", server.URL+"/api/items/"+item.ID, token, map[string]any{
		"quantity": 3,
		"bogus":    "ignored",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var updated model.Item
	json.NewDecoder(resp.Body).Decode(&updated)
	resp.Body.Close()
	if updated.Quantity != 3 {
		t.Errorf("expected quantity 3, got %v", updated.Quantity)
	}

	// List.
	req, _ = authRequest("GET", server.URL+"/api/items", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	var items []model.Item
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 1 {
		t.Errorf("expected 1 item, got %d", len(items))
	}

	// Delete twice: deleted true then false.
	for i, want := range []bool{true, false} {
		req, _ = authRequest("DELETE", server.URL+"/api/items/"+item.ID, token, nil)
		resp, _ = http.DefaultClient.Do(req)
		var result map[string]bool
		json.NewDecoder(resp.Body).Decode(&result)
		resp.Body.Close()
		if result["deleted"] != want {
			t.Errorf("delete %d: expected deleted=%v, got %v", i+1, want, result["deleted"])
		}
	}
}

func TestItemNotFound(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("PATCH", server.URL+"/api/items/nope", token, map[string]any{"quantity": 2})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCreateItemRequiresName(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]string{"description": "no name"})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestMoveAreaEndpoint(t *testing.T) {
	server, token := setupTestServer(t)
	item := createItem(t, server, token, "Bike")

	req, _ := authRequest("PUT", server.URL+"/api/items/"+item.ID+"/area", token, map[string]string{
		"area_id": "garage",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var moved model.Item
	json.NewDecoder(resp.Body).Decode(&moved)
	resp.Body.Close()
	if moved.AreaID == nil || *moved.AreaID != "garage" {
		t.Errorf("expected area 'garage', got %v", moved.AreaID)
	}
}

func TestPhotoUploadEndpoint(t *testing.T) {
	server, token := setupTestServer(t)
	item := createItem(t, server, token, "Camera")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("photo", "front.jpg")
	part.Write([]byte("jpeg bytes"))
	writer.Close()

	req, _ := http.NewRequest("POST", server.URL+"/api/items/"+item.ID+"/photo", &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var updated model.Item
	json.NewDecoder(resp.Body).Decode(&updated)
	if len(updated.Attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(updated.Attachments))
	}
	if updated.Attachments[0].Name != "front.jpg" {
		t.Errorf("expected filename 'front.jpg', got %q", updated.Attachments[0].Name)
	}
}

func TestServiceDispatchEndpoint(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/services/add_item", token, map[string]any{
		"name": "Soldering Iron",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var result map[string]model.Item
	json.NewDecoder(resp.Body).Decode(&result)
	resp.Body.Close()
	if result["result"].Name != "Soldering Iron" {
		t.Errorf("unexpected dispatch result: %+v", result)
	}

	// Unknown service name.
	req, _ = authRequest("POST", server.URL+"/api/services/polish_item", token, map[string]any{})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown service, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCategoriesEndpoint(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("GET", server.URL+"/api/categories", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var cats []model.Category
	json.NewDecoder(resp.Body).Decode(&cats)
	resp.Body.Close()
	if len(cats) != 0 {
		t.Errorf("expected empty category list, got %d", len(cats))
	}
}
