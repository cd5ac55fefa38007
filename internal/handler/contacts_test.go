// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestSubmitContact(t *testing.T) {
	h, _ := newTestHandler(t)
	router := testRouter(h)

	w := postJSON(t, router, "/api/contact",
		`{"name":"Jamie","email":"jamie@example.com","subject":"Hello","message":"Nice site!"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID == 0 {
		t.Error("id missing from response")
	}
}

func TestSubmitContactValidation(t *testing.T) {
	h, _ := newTestHandler(t)
	router := testRouter(h)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.com","subject":"s","message":"m"}`},
		{"bad email", `{"name":"n","email":"not-an-email","subject":"s","message":"m"}`},
		{"missing message", `{"name":"n","email":"a@b.com","subject":"s"}`},
		{"oversized message", fmt.Sprintf(`{"name":"n","email":"a@b.com","subject":"s","message":%q}`, strings.Repeat("x", 2001))},
		{"not json", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/api/contact", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestContactAdminFlow(t *testing.T) {
	h, _ := newTestHandler(t)
	router := testRouter(h)

	w := postJSON(t, router, "/api/contact",
		`{"name":"Jamie","email":"jamie@example.com","subject":"Hello","message":"Nice site!"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit status = %d", w.Code)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	// List shows the message with status "new"
	r := httptest.NewRequest(http.MethodGet, "/api/contacts?status=new", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list struct {
		Contacts []contactResponse `json:"contacts"`
		Total    int64             `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if list.Total != 1 || len(list.Contacts) != 1 {
		t.Fatalf("total = %d, contacts = %d", list.Total, len(list.Contacts))
	}
	if list.Contacts[0].Status != "new" {
		t.Errorf("status = %q, want new", list.Contacts[0].Status)
	}

	// Mark read: no reply timestamp
	patch := func(status string) contactResponse {
		r := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/contacts/%d", created.ID),
			strings.NewReader(fmt.Sprintf(`{"status":%q}`, status)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("patch %s status = %d: %s", status, w.Code, w.Body.String())
		}
		var c contactResponse
		if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
			t.Fatalf("decoding patch response: %v", err)
		}
		return c
	}

	c := patch("read")
	if c.RepliedAt != nil {
		t.Error("read transition should not set repliedAt")
	}

	c = patch("replied")
	if c.RepliedAt == nil {
		t.Error("replied transition should set repliedAt")
	}
}

func TestUpdateContactUnknownID(t *testing.T) {
	h, _ := newTestHandler(t)
	router := testRouter(h)

	r := httptest.NewRequest(http.MethodPatch, "/api/contacts/999", strings.NewReader(`{"status":"read"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUpdateContactUnknownStatus(t *testing.T) {
	h, _ := newTestHandler(t)
	router := testRouter(h)

	w := postJSON(t, router, "/api/contact",
		`{"name":"n","email":"a@b.com","subject":"s","message":"m"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit status = %d", w.Code)
	}

	r := httptest.NewRequest(http.MethodPatch, "/api/contacts/1", strings.NewReader(`{"status":"bogus"}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
