package server

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"linkboard/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:           "development",
		ServerAddr:    ":0",
		BaseURL:       "http://localhost:3000",
		SessionSecret: "test-secret-that-is-long-enough-for-production",
	}
}

func TestDeriveEncryptionKey(t *testing.T) {
	key := deriveEncryptionKey("some-secret")

	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		t.Fatalf("key is not valid base64: %v", err)
	}
	if len(raw) != 32 {
		t.Errorf("decoded key length = %d, want 32", len(raw))
	}
	if deriveEncryptionKey("some-secret") != key {
		t.Error("key derivation is not deterministic")
	}
	if deriveEncryptionKey("other-secret") == key {
		t.Error("different secrets produced the same key")
	}
}

func TestErrorHandlerReturnsJSON(t *testing.T) {
	srv := New(testConfig())
	srv.App.Get("/boom", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "teapot")
	})

	req, _ := http.NewRequest("GET", "/boom", nil)
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusTeapot {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusTeapot)
	}

	var body struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("response is not JSON: %v: %s", err, raw)
	}
	if body.Status != "error" {
		t.Errorf("error response status = %q, want %q", body.Status, "error")
	}
	if body.Error != "teapot" {
		t.Errorf("error message = %q, want %q", body.Error, "teapot")
	}
}

func TestSessionSurvivesCookieReplay(t *testing.T) {
	srv := New(testConfig())

	srv.App.Post("/session-set", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		sess.Set("user_sub", "oidc|alice")
		return c.SendString("ok")
	})
	srv.App.Get("/session-get", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		val, _ := sess.Get("user_sub").(string)
		return c.SendString(val)
	})

	req, _ := http.NewRequest("POST", "/session-set", nil)
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("set request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("set request: status %d: %s", resp.StatusCode, raw)
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("set request returned no cookies")
	}

	req2, _ := http.NewRequest("GET", "/session-get", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	resp2, err := srv.App.Test(req2)
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	raw, _ := io.ReadAll(resp2.Body)
	if resp2.StatusCode != 200 {
		t.Fatalf("get request: status %d: %s", resp2.StatusCode, raw)
	}
	if string(raw) != "oidc|alice" {
		t.Errorf("session value = %q, want %q", raw, "oidc|alice")
	}
}
