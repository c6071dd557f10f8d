package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/user/primbench/internal/primitive"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(primitive.NewStore(), ":0")
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && err != io.EOF {
		t.Fatalf("decode response: %v", err)
	}
	return resp, decoded
}

func TestHealthz(t *testing.T) {
	ts := testServer(t)
	resp, body := doJSON(t, "GET", ts.URL+"/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestCounterEndpoints(t *testing.T) {
	ts := testServer(t)

	resp, body := doJSON(t, "POST", ts.URL+"/api/v1/counter/c/increment", map[string]int64{"delta": 7})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("increment status = %d", resp.StatusCode)
	}
	if body["value"].(float64) != 7 {
		t.Errorf("increment value = %v, want 7", body["value"])
	}

	_, body = doJSON(t, "POST", ts.URL+"/api/v1/counter/c/decrement", map[string]int64{"delta": 3})
	if body["value"].(float64) != 4 {
		t.Errorf("decrement value = %v, want 4", body["value"])
	}

	_, body = doJSON(t, "GET", ts.URL+"/api/v1/counter/c", nil)
	if body["value"].(float64) != 4 {
		t.Errorf("get value = %v, want 4", body["value"])
	}
}

func TestMapEndpoints(t *testing.T) {
	ts := testServer(t)

	resp, body := doJSON(t, "PUT", ts.URL+"/api/v1/map/m/keys/k1", map[string]string{"value": "v1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d", resp.StatusCode)
	}
	if body["existed"].(bool) {
		t.Error("first put reported existing value")
	}

	_, body = doJSON(t, "GET", ts.URL+"/api/v1/map/m/keys/k1", nil)
	if body["value"] != "v1" {
		t.Errorf("get value = %v, want v1", body["value"])
	}

	resp, body = doJSON(t, "DELETE", ts.URL+"/api/v1/map/m/keys/k1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove status = %d", resp.StatusCode)
	}
	if body["old"] != "v1" {
		t.Errorf("remove old = %v, want v1", body["old"])
	}

	resp, body = doJSON(t, "GET", ts.URL+"/api/v1/map/m/keys/k1", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after remove status = %d, want 404", resp.StatusCode)
	}
	if body["code"] != "NOT_FOUND" {
		t.Errorf("error code = %v, want NOT_FOUND", body["code"])
	}
}

func TestSetEndpoints(t *testing.T) {
	ts := testServer(t)

	_, body := doJSON(t, "POST", ts.URL+"/api/v1/set/s/elements", map[string]string{"element": "a"})
	if !body["added"].(bool) {
		t.Error("first add = false")
	}
	_, body = doJSON(t, "POST", ts.URL+"/api/v1/set/s/elements", map[string]string{"element": "a"})
	if body["added"].(bool) {
		t.Error("duplicate add = true")
	}

	_, body = doJSON(t, "GET", ts.URL+"/api/v1/set/s/elements/a", nil)
	if !body["contains"].(bool) {
		t.Error("contains after add = false")
	}

	resp, _ := doJSON(t, "DELETE", ts.URL+"/api/v1/set/s/elements/a", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove status = %d", resp.StatusCode)
	}
	resp, body = doJSON(t, "DELETE", ts.URL+"/api/v1/set/s/elements/a", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("double remove status = %d, want 404", resp.StatusCode)
	}
	if body["code"] != "NOT_FOUND" {
		t.Errorf("error code = %v, want NOT_FOUND", body["code"])
	}
}

func TestSetAddRejectsEmptyElement(t *testing.T) {
	ts := testServer(t)
	resp, body := doJSON(t, "POST", ts.URL+"/api/v1/set/s/elements", map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if body["code"] != "BAD_REQUEST" {
		t.Errorf("error code = %v, want BAD_REQUEST", body["code"])
	}
}

func TestPrometheusMetricsEndpoint(t *testing.T) {
	ts := testServer(t)

	doJSON(t, "POST", ts.URL+"/api/v1/counter/c/increment", map[string]int64{"delta": 1})
	doJSON(t, "GET", ts.URL+"/api/v1/counter/c", nil)
	doJSON(t, "GET", ts.URL+"/api/v1/map/m/keys/missing", nil)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"primbench_backend_writes_total 1",
		"primbench_backend_reads_total 2",
		"primbench_backend_not_found_total 1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics output missing %q\n%s", want, text)
		}
	}
}
