//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"room_balancer/internal/adapters/advisor"
	httpserver "room_balancer/internal/adapters/http_server"
	redisad "room_balancer/internal/adapters/redis"
	"room_balancer/internal/app"
	"room_balancer/internal/balancer"
	"room_balancer/internal/domain"
	mysqlrepo "room_balancer/internal/storage/mysql"
)

// ---------- helpers ----------

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// ---------- the test ----------
func TestHTTP_EndToEnd_Overbooked_Night(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=balancer",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "balancer")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redisad.NewClient(mr.Addr(), "", 0)
	cache := redisad.NewFromClient(client)

	repo := mysqlrepo.New(db)
	ctx := context.Background()
	prop := balancer.DefaultProperty()
	king, ok := prop.RoomType("KNGN")
	if !ok {
		t.Fatalf("default property lacks KNGN")
	}

	// One more KNGN arrival than the hotel has KNGN rooms, plus one bad row.
	const night = "2026-09-12"
	var feed []map[string]any
	for i := 0; i <= king.Inventory; i++ {
		feed = append(feed, map[string]any{
			"reservation_id": fmt.Sprintf("E2E-%03d", i),
			"guest_name":     fmt.Sprintf("Guest %03d", i),
			"room_type":      "kngn",
			"checkin_date":   night,
			"nights":         2,
			"rate_type":      "Direct",
			"honors_status":  "Gold",
		})
	}
	feed = append(feed, map[string]any{"reservation_id": "E2E-BAD", "room_type": "KNGN", "checkin_date": night})

	stored, rejected, err := app.NewIngestionService(repo, cache).Ingest(ctx, feed)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if stored != king.Inventory+1 || rejected != 1 {
		t.Fatalf("stored=%d rejected=%d", stored, rejected)
	}

	svc := app.NewAnalysisService(repo, cache, redisad.NewLedger(client, time.Hour), prop, time.Minute)
	srv := httpserver.New(30 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{
		A:   svc,
		Adv: app.NewAdvisoryService(svc, nil, advisor.NewHeuristic(prop), time.Second),
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()
	base := ts.URL + "/v1/analyses/" + night

	// Analysis
	res, err := http.Get(base)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var a app.Analysis
	if err := json.NewDecoder(res.Body).Decode(&a); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.Result.Summary.Arrivals != king.Inventory+1 || a.Result.Summary.OverbookedTypes != 1 {
		t.Fatalf("unexpected summary: %+v", a.Result.Summary)
	}
	if len(a.Result.Alerts) != 1 {
		t.Fatalf("expected one displaced guest, got %+v", a.Result.Alerts)
	}
	displaced := a.Result.Alerts[0].GuestName

	// Approve
	req, _ := http.NewRequest(http.MethodPut, base+"/approvals",
		strings.NewReader(fmt.Sprintf(`{"guest_name":%q,"approved":true}`, displaced)))
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusOK {
		t.Fatalf("approve status %d", res2.StatusCode)
	}
	var approved app.Analysis
	if err := json.NewDecoder(res2.Body).Decode(&approved); err != nil {
		t.Fatalf("decode approve: %v", err)
	}
	if approved.RunID != a.RunID || !approved.Result.Alerts[0].Approved {
		t.Fatalf("approval should reuse run %s: %+v", a.RunID, approved)
	}

	// Finalize
	res3, err := http.Post(base+"/finalize", "application/json", nil)
	if err != nil {
		t.Fatalf("POST finalize: %v", err)
	}
	defer res3.Body.Close()
	var f domain.Finalized
	if err := json.NewDecoder(res3.Body).Decode(&f); err != nil {
		t.Fatalf("decode finalize: %v", err)
	}
	if len(f.Resolved) != 1 || len(f.Unresolved) != 0 || f.Stats.TotalGuests != king.Inventory+1 {
		t.Fatalf("unexpected finalize: %+v", f.Stats)
	}

	// CSV export
	res4, err := http.Get(base + "/assignments.csv")
	if err != nil {
		t.Fatalf("GET csv: %v", err)
	}
	defer res4.Body.Close()
	rows, err := csv.NewReader(res4.Body).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != len(f.Assignments)+1 || rows[0][1] != "Guest Name" {
		t.Fatalf("unexpected csv: %v", rows)
	}
}
