package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testSecret = "test-secret"

func TestFlash_RoundTrip(t *testing.T) {
	set := httptest.NewRecorder()
	SetFlash(set, testSecret, "success", "Task created successfully")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range set.Result().Cookies() {
		req.AddCookie(c)
	}
	pop := httptest.NewRecorder()

	flash := PopFlash(pop, req, testSecret)
	if flash == nil {
		t.Fatal("flash should round-trip")
	}
	if flash.Kind != "success" || flash.Message != "Task created successfully" {
		t.Errorf("got %+v", flash)
	}

	// Cookie гасится при чтении
	cleared := false
	for _, c := range pop.Result().Cookies() {
		if c.Name == flashCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("flash cookie should be cleared on read")
	}
}

func TestFlash_TamperedSignature(t *testing.T) {
	set := httptest.NewRecorder()
	SetFlash(set, testSecret, "success", "legit message")

	cookie := set.Result().Cookies()[0]
	payload, _, _ := strings.Cut(cookie.Value, ".")
	cookie.Value = payload + "." + strings.Repeat("0", 64)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	if flash := PopFlash(httptest.NewRecorder(), req, testSecret); flash != nil {
		t.Errorf("tampered flash should be ignored, got %+v", flash)
	}
}

func TestFlash_WrongSecret(t *testing.T) {
	set := httptest.NewRecorder()
	SetFlash(set, "other-secret", "error", "message")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(set.Result().Cookies()[0])

	if flash := PopFlash(httptest.NewRecorder(), req, testSecret); flash != nil {
		t.Errorf("flash signed with another key should be ignored, got %+v", flash)
	}
}

func TestFlash_NoCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	if flash := PopFlash(w, req, testSecret); flash != nil {
		t.Errorf("got %+v, want nil", flash)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("no clearing cookie should be set when there was no flash")
	}
}

func TestFlash_MessageWithSeparator(t *testing.T) {
	set := httptest.NewRecorder()
	SetFlash(set, testSecret, "error", "a|b|c")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(set.Result().Cookies()[0])

	flash := PopFlash(httptest.NewRecorder(), req, testSecret)
	if flash == nil || flash.Message != "a|b|c" {
		t.Errorf("got %+v, want message %q", flash, "a|b|c")
	}
}
