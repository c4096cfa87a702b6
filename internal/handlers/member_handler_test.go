package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elif-d/StudioFitBack/internal/models"
	"github.com/gofiber/fiber/v2"
)

func newMemberTestApp(store *stubMemberStore, actorID, role string) *fiber.App {
	handler := &MemberHandler{memberRepo: store}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("member_id", actorID)
		c.Locals("role", role)
		return c.Next()
	})
	app.Get("/api/v1/members/:id", handler.GetMember)
	app.Put("/api/v1/members/:id", handler.UpdateMember)
	return app
}

func TestGetMemberAllowsSelf(t *testing.T) {
	store := &stubMemberStore{byID: &models.Member{ID: 42, Username: "elif42"}}
	app := newMemberTestApp(store, "42", "member")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/members/42", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestGetMemberForbidsOtherMembers(t *testing.T) {
	store := &stubMemberStore{byID: &models.Member{ID: 7}}
	app := newMemberTestApp(store, "42", "member")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/members/7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestGetMemberAllowsAdminForOthers(t *testing.T) {
	store := &stubMemberStore{byID: &models.Member{ID: 7}}
	app := newMemberTestApp(store, "1", "admin")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/members/7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestUpdateMemberTrimsFields(t *testing.T) {
	store := &stubMemberStore{updateResult: &models.Member{ID: 42}}
	app := newMemberTestApp(store, "42", "member")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/members/42", strings.NewReader(`{
		"first_name": "  Elif ",
		"membership_type": "partial"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastUpdate.FirstName == nil || *store.lastUpdate.FirstName != "Elif" {
		t.Fatalf("expected trimmed first name, got %+v", store.lastUpdate.FirstName)
	}
	if store.lastUpdate.MembershipType == nil || *store.lastUpdate.MembershipType != "partial" {
		t.Fatalf("expected membership type partial, got %+v", store.lastUpdate.MembershipType)
	}
}

func TestUpdateMemberRejectsUnknownTier(t *testing.T) {
	app := newMemberTestApp(&stubMemberStore{}, "42", "member")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/members/42", strings.NewReader(`{
		"membership_type": "platinum"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateMemberRequiresAField(t *testing.T) {
	app := newMemberTestApp(&stubMemberStore{}, "42", "member")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/members/42", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
