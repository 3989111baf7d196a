package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"pet-care-log/internal/router"
)

type logDTO struct {
	ID        int64     `json:"id"`
	PetName   string    `json:"petName"`
	Task      string    `json:"task"`
	Time      time.Time `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func TestHTTP_AdminCRUDFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Admin crea un log
	created := createLog(t, ts.URL, map[string]any{
		"petName": "Milo",
		"task":    "Fed",
		"time":    "2024-01-01T08:00:00Z",
	})
	if created.ID <= 0 {
		t.Fatalf("expected generated integer id, got %d", created.ID)
	}
	if created.PetName != "Milo" || created.Task != "Fed" {
		t.Fatalf("expected echoed fields, got %+v", created)
	}
	if !created.Time.Equal(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected echoed time, got %v", created.Time)
	}

	// 2) Un segundo log más reciente queda primero en list
	newest := createLog(t, ts.URL, map[string]any{
		"petName": "Luna",
		"task":    "Walked",
		"time":    "2024-01-02T09:00:00Z",
	})

	items := listLogs(t, ts.URL, "admin-1", "admin")
	if len(items) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(items))
	}
	if items[0].ID != newest.ID || items[1].ID != created.ID {
		t.Fatalf("expected time-descending order, got %v then %v", items[0].ID, items[1].ID)
	}

	// 3) Update reemplaza los tres campos y refresca updatedAt
	st, body := doReq(t, ts.URL, "PUT", "/logs/"+itoa(created.ID), "admin-1", "admin", map[string]any{
		"petName": "Milo",
		"task":    "Medication",
		"time":    "2024-01-01T20:00:00Z",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 update, got %d body=%s", st, string(body))
	}

	var updated logDTO
	mustUnmarshal(t, body, &updated)
	if updated.Task != "Medication" {
		t.Fatalf("expected replaced task, got %q", updated.Task)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("createdAt must not change on update")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("expected updatedAt stamped on update, got %v", updated.UpdatedAt)
	}

	// 4) Get by id devuelve lo persistido
	st, body = doReq(t, ts.URL, "GET", "/logs/"+itoa(created.ID), "admin-1", "admin", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get, got %d body=%s", st, string(body))
	}
	var got logDTO
	mustUnmarshal(t, body, &got)
	if got.Task != "Medication" {
		t.Fatalf("expected stored row, got %+v", got)
	}

	// 5) Delete devuelve acknowledgment; repetirlo es 404
	st, body = doReq(t, ts.URL, "DELETE", "/logs/"+itoa(created.ID), "admin-1", "admin", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 delete, got %d body=%s", st, string(body))
	}
	var ack struct {
		Deleted bool  `json:"deleted"`
		ID      int64 `json:"id"`
	}
	mustUnmarshal(t, body, &ack)
	if !ack.Deleted || ack.ID != created.ID {
		t.Fatalf("expected delete ack, got %s", string(body))
	}

	st, _ = doReq(t, ts.URL, "DELETE", "/logs/"+itoa(created.ID), "admin-1", "admin", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", st)
	}

	items = listLogs(t, ts.URL, "admin-1", "admin")
	if len(items) != 1 || items[0].ID != newest.ID {
		t.Fatalf("expected only the remaining log, got %v", items)
	}
}

func TestHTTP_ViewerIsReadOnly(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	created := createLog(t, ts.URL, map[string]any{
		"petName": "Milo",
		"task":    "Fed",
		"time":    "2024-01-01T08:00:00Z",
	})

	// Viewer puede listar
	items := listLogs(t, ts.URL, "viewer-1", "user")
	if len(items) != 1 {
		t.Fatalf("expected viewer to read 1 log, got %d", len(items))
	}

	// Ninguna mutación pasa sin rol admin, con payload válido o no
	valid := map[string]any{
		"petName": "Milo",
		"task":    "Fed",
		"time":    "2024-01-01T08:00:00Z",
	}
	mutations := []struct {
		method string
		path   string
		body   any
	}{
		{"POST", "/logs", valid},
		{"PUT", "/logs/" + itoa(created.ID), valid},
		{"DELETE", "/logs/" + itoa(created.ID), nil},
		{"POST", "/logs", map[string]any{"petName": ""}}, // inválido igual da 403
	}
	for _, m := range mutations {
		st, body := doReq(t, ts.URL, m.method, m.path, "viewer-1", "user", m.body)
		if st != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403 for viewer, got %d body=%s", m.method, m.path, st, string(body))
		}
	}

	// Store sin cambios
	items = listLogs(t, ts.URL, "viewer-1", "user")
	if len(items) != 1 || items[0].Task != "Fed" {
		t.Fatalf("expected store unchanged, got %v", items)
	}
}

func TestHTTP_RequiresSession(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/logs"},
		{"POST", "/logs"},
		{"PUT", "/logs/1"},
		{"DELETE", "/logs/1"},
	}
	for _, p := range paths {
		st, _ := doReq(t, ts.URL, p.method, p.path, "", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without session, got %d", p.method, p.path, st)
		}
	}
}

func TestHTTP_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// Campos faltantes => 400
	st, _ := doReq(t, ts.URL, "POST", "/logs", "admin-1", "admin", map[string]any{
		"task": "Fed",
		"time": "2024-01-01T08:00:00Z",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 missing petName, got %d", st)
	}

	// time no parseable => 400 y sin mutación
	st, _ = doReq(t, ts.URL, "POST", "/logs", "admin-1", "admin", map[string]any{
		"petName": "Milo",
		"task":    "Fed",
		"time":    "yesterday at eight",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 malformed time, got %d", st)
	}
	if items := listLogs(t, ts.URL, "admin-1", "admin"); len(items) != 0 {
		t.Fatalf("expected no mutation after rejected create, got %d logs", len(items))
	}

	// ids malformados => 400
	valid := map[string]any{
		"petName": "Milo",
		"task":    "Fed",
		"time":    "2024-01-01T08:00:00Z",
	}
	for _, raw := range []string{"abc", "0", "-1", "1.5"} {
		st, _ = doReq(t, ts.URL, "PUT", "/logs/"+raw, "admin-1", "admin", valid)
		if st != http.StatusBadRequest {
			t.Fatalf("PUT /logs/%s: expected 400, got %d", raw, st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/logs/"+raw, "admin-1", "admin", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("DELETE /logs/%s: expected 400, got %d", raw, st)
		}
	}

	// id bien formado pero inexistente => 404
	st, _ = doReq(t, ts.URL, "PUT", "/logs/9999", "admin-1", "admin", valid)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown id, got %d", st)
	}
}

func createLog(t *testing.T, baseURL string, payload map[string]any) logDTO {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/logs", "admin-1", "admin", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create log, got %d body=%s", st, string(body))
	}

	var resp logDTO
	mustUnmarshal(t, body, &resp)
	if resp.ID == 0 {
		t.Fatalf("create log: missing id body=%s", string(body))
	}
	return resp
}

func listLogs(t *testing.T, baseURL, userID, role string) []logDTO {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/logs", userID, role, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list logs, got %d body=%s", st, string(body))
	}

	var items []logDTO
	mustUnmarshal(t, body, &items)
	return items
}

func doReq(t *testing.T, baseURL, method, path, debugUserID, debugRole string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	if debugRole != "" {
		req.Header.Set("X-Debug-Role", debugRole)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func mustUnmarshal(t *testing.T, b []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("json unmarshal: %v body=%s", err, string(b))
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
