package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"timeclock/internal/app/server"
	"timeclock/internal/platform/config"
)

func testConfig(t *testing.T, dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		FrontendDir:        t.TempDir(),
		UploadDir:          t.TempDir(),
		MigrationsDir:      "../../../../migrations",
		Environment:        "test",
		Timezone:           "UTC",
		LogLevel:           "error",
		EmailFrom:          "no-reply@test.local",
		RunMigrations:      true,
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		MaxUploadBytes:     5 * 1048576,
		RateLimitPerMinute: 1000,
		MetricsEnabled:     true,
	}
}

func startApp(t *testing.T) (*httptest.Server, *server.App) {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	app, err := server.New(context.Background(), testConfig(t, dbURL))
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return ts, app
}

func TestEmployeeCheckInJourney(t *testing.T) {
	ts, _ := startApp(t)
	client := ts.Client()

	employeeID := "EMP-" + strings.ToUpper(uuid.NewString()[:8])
	status, _ := doJSON(t, client, http.MethodPost, ts.URL+"/api/employees", map[string]any{
		"id": employeeID, "name": "Prueba Journey", "area": "Calidad",
	}, nil)
	if status != http.StatusCreated {
		t.Fatalf("create employee: expected 201, got %d", status)
	}
	t.Cleanup(func() {
		doJSON(t, client, http.MethodDelete, ts.URL+"/api/employees/"+employeeID, nil, nil)
	})

	status, body := doJSON(t, client, http.MethodPost, ts.URL+"/api/checkin", map[string]any{"employeeId": employeeID}, map[string]string{"Idempotency-Key": employeeID + "-1"})
	if status != http.StatusCreated {
		t.Fatalf("checkin: expected 201, got %d: %s", status, body)
	}
	var checkIn struct {
		Type        string `json:"type"`
		HoursWorked string `json:"hoursWorked"`
		Message     string `json:"message"`
		Attendance  struct {
			Date  string `json:"date"`
			Notes string `json:"notes"`
		} `json:"attendance"`
	}
	decode(t, body, &checkIn)
	if checkIn.Type != "entrada" || checkIn.Message != "Entrada exitosa" || checkIn.Attendance.Notes != "Entrada via scanner" {
		t.Fatalf("unexpected checkin body %s", body)
	}
	if checkIn.Attendance.Date != time.Now().UTC().Format("2006-01-02") {
		t.Fatalf("unexpected attendance date %s", checkIn.Attendance.Date)
	}

	status, replay := doJSON(t, client, http.MethodPost, ts.URL+"/api/checkin", map[string]any{"employeeId": employeeID}, map[string]string{"Idempotency-Key": employeeID + "-1"})
	if status != http.StatusCreated || !bytes.Equal(bytes.TrimSpace(replay), bytes.TrimSpace(body)) {
		t.Fatalf("idempotent replay: expected identical 201, got %d: %s", status, replay)
	}

	status, body = doJSON(t, client, http.MethodPost, ts.URL+"/api/checkin", map[string]any{"employeeId": employeeID}, nil)
	if status != http.StatusBadRequest || !strings.Contains(string(body), "Por favor espera") {
		t.Fatalf("cooldown: expected 400, got %d: %s", status, body)
	}

	status, body = doJSON(t, client, http.MethodGet, ts.URL+"/api/attendance?employeeId="+employeeID, nil, nil)
	var events []map[string]any
	decode(t, body, &events)
	if status != http.StatusOK || len(events) != 1 {
		t.Fatalf("attendance list: expected 1 event, got %d (%d)", len(events), status)
	}

	status, body = doJSON(t, client, http.MethodGet, ts.URL+"/api/attendance/stats", nil, nil)
	var stats struct {
		CheckIns int `json:"checkIns"`
	}
	decode(t, body, &stats)
	if status != http.StatusOK || stats.CheckIns < 1 {
		t.Fatalf("stats: unexpected %d %s", status, body)
	}

	status, body = doJSON(t, client, http.MethodGet, ts.URL+"/api/reports/attendance?employeeId="+employeeID, nil, nil)
	var rows []map[string]any
	decode(t, body, &rows)
	if status != http.StatusOK || len(rows) != 1 || rows[0]["employeeName"] != "Prueba Journey" {
		t.Fatalf("report: unexpected %d %s", status, body)
	}

	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/attendance/auto-checkout", nil, nil)
	if status != http.StatusOK {
		t.Fatalf("auto checkout: expected 200, got %d", status)
	}
	status, body = doJSON(t, client, http.MethodGet, ts.URL+"/api/reports/job-runs?jobType=auto_checkout", nil, nil)
	decode(t, body, &rows)
	if status != http.StatusOK || len(rows) == 0 {
		t.Fatalf("job runs: expected recorded auto_checkout run, got %d %s", status, body)
	}
}

func TestConfigJourney(t *testing.T) {
	ts, _ := startApp(t)
	client := ts.Client()

	status, body := doJSON(t, client, http.MethodPost, ts.URL+"/api/config", map[string]any{"key": "notificationDuration", "value": 5}, nil)
	if status != http.StatusOK {
		t.Fatalf("set config: expected 200, got %d: %s", status, body)
	}

	status, body = doJSON(t, client, http.MethodGet, ts.URL+"/api/config/notificationDuration", nil, nil)
	var entry struct {
		Key   string `json:"key"`
		Value int    `json:"value"`
	}
	decode(t, body, &entry)
	if status != http.StatusOK || entry.Value != 5 {
		t.Fatalf("get config: unexpected %d %s", status, body)
	}

	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/config", map[string]any{"key": "theme", "value": "dark"}, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("unknown key: expected 400, got %d", status)
	}

	status, body = doJSON(t, client, http.MethodGet, ts.URL+"/api/audit/events?entityType=setting&entityId=notificationDuration", nil, nil)
	var events []map[string]any
	decode(t, body, &events)
	if status != http.StatusOK || len(events) == 0 {
		t.Fatalf("audit: expected setting events, got %d %s", status, body)
	}
}

func TestDefaultScheduleSeeded(t *testing.T) {
	ts, _ := startApp(t)

	status, body := doJSON(t, ts.Client(), http.MethodGet, ts.URL+"/api/schedules", nil, nil)
	var schedules []map[string]any
	decode(t, body, &schedules)
	if status != http.StatusOK {
		t.Fatalf("schedules: expected 200, got %d", status)
	}
	for _, s := range schedules {
		if s["isDefault"] == true {
			return
		}
	}
	t.Fatalf("expected a default schedule, got %s", body)
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any, headers map[string]string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return resp.StatusCode, raw
}

func decode(t *testing.T, raw []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("failed to decode %q: %v", raw, err)
	}
}
