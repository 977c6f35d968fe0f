package api

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/davey/lotvoice/internal/assets"
	"github.com/davey/lotvoice/internal/config"
	"github.com/davey/lotvoice/internal/domain"
	"github.com/davey/lotvoice/internal/logger"
	"github.com/davey/lotvoice/internal/service"
)

// newUpstream fakes the OpenAI-compatible API: chat completions return three
// variants, audio speech returns fixed bytes.
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/chat/completions":
			variants := map[string]interface{}{
				"variants": []domain.Variant{
					{Style: domain.StyleGritty, Voiceover: "One.", Beats: []string{"b"}, Hashtags: []string{"#x"}},
					{Style: domain.StyleFriendly, Voiceover: "Two.", Beats: []string{"b"}, Hashtags: []string{"#y"}},
					{Style: domain.StyleHighEnergy, Voiceover: "Three.", Beats: []string{"b"}, Hashtags: []string{"#z"}},
				},
			}
			content, err := json.Marshal(variants)
			if err != nil {
				t.Errorf("failed to marshal variants: %v", err)
			}
			body := map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"content": string(content)}},
				},
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(body)
		case "/audio/speech":
			w.Header().Set("Content-Type", "audio/mpeg")
			w.Write([]byte("mp3"))
		default:
			t.Errorf("unexpected upstream path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestRouter(t *testing.T, appKey, upstreamURL string) (http.Handler, *assets.Store) {
	t.Helper()

	store, err := assets.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.CORS.AllowAllOrigins = true
	cfg.Auth.AppKey = appKey
	cfg.Assets.BaseURL = "http://example.com"

	scripts := service.NewScriptWriter(&service.ScriptWriterConfig{
		APIKey:  "test",
		BaseURL: upstreamURL,
		Model:   "gpt-4o-mini",
	})
	speech := service.NewSpeechSynthesizer(&service.SpeechConfig{
		APIKey:  "test",
		BaseURL: upstreamURL,
		Model:   "tts-1",
		Voice:   "onyx",
		Speed:   0.95,
	})

	generator := service.NewGenerator(scripts, speech, store, nil, cfg.Assets.BaseURL, logger.GetDefault())
	archiver := service.NewArchiver(store, logger.GetDefault())

	return SetupRouter(generator, archiver, store.Root(), cfg), store
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t, "secret", "http://unused.invalid")

	// Health is exempt from the shared-key check
	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !body["ok"] {
		t.Error("expected ok=true")
	}
}

func TestRouter_AppKey(t *testing.T) {
	router, _ := newTestRouter(t, "secret", "http://unused.invalid")

	tests := []struct {
		name     string
		path     string
		key      string
		wantCode int
	}{
		{name: "generate without key", path: "/generate", key: "", wantCode: http.StatusUnauthorized},
		{name: "generate wrong key", path: "/generate", key: "wrong", wantCode: http.StatusUnauthorized},
		{name: "zip without key", path: "/zip", key: "", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.key != "" {
				headers["X-APP-KEY"] = tt.key
			}
			w := doJSON(t, router, http.MethodPost, tt.path, `{}`, headers)
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			if body["error"] != "Unauthorized" {
				t.Errorf("expected Unauthorized error, got %q", body["error"])
			}
		})
	}
}

func TestRouter_Generate(t *testing.T) {
	upstream := newUpstream(t)
	defer upstream.Close()

	router, _ := newTestRouter(t, "", upstream.URL)

	w := doJSON(t, router, http.MethodPost, "/generate",
		`{"specs":{"make":"Peterbilt","model":"579","year":"2020"}}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result service.GenerateResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	if result.BatchID == "" {
		t.Error("expected non-empty batchId")
	}
	if len(result.Files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(result.Files))
	}
	for i, f := range result.Files {
		if f.Script == "" {
			t.Errorf("file %d: empty script", i)
		}
		if !strings.HasPrefix(f.URL, "http://example.com/files/") {
			t.Errorf("file %d: unexpected url %q", i, f.URL)
		}
		if f.Beats == nil || f.Hashtags == nil {
			t.Errorf("file %d: beats and hashtags must be present", i)
		}
	}
}

func TestRouter_Generate_ValidationError(t *testing.T) {
	router, _ := newTestRouter(t, "", "http://unused.invalid")

	w := doJSON(t, router, http.MethodPost, "/generate", `{"specs":{"make":"Peterbilt"}}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error message")
	}
}

func TestRouter_Zip_EmptySelection(t *testing.T) {
	router, _ := newTestRouter(t, "", "http://unused.invalid")

	w := doJSON(t, router, http.MethodPost, "/zip", `{"files":[]}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["error"] != "No files selected." {
		t.Errorf("expected 'No files selected.', got %q", body["error"])
	}
}

func TestRouter_Zip(t *testing.T) {
	router, store := newTestRouter(t, "", "http://unused.invalid")

	if _, err := store.CreateBatchDir("batch-z"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(store.FilePath("batch-z", 1), []byte("mp3 one"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url := store.PublicURL("http://example.com", "batch-z", 1)
	w := doJSON(t, router, http.MethodPost, "/zip", `{"files":["`+url+`"]}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("expected application/zip, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="voiceovers.zip"` {
		t.Errorf("unexpected content disposition %q", cd)
	}

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	if err != nil {
		t.Fatalf("response is not a valid zip: %v", err)
	}
	if len(zr.File) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(zr.File))
	}
	if zr.File[0].Name != "vo_1.mp3" {
		t.Errorf("expected entry vo_1.mp3, got %s", zr.File[0].Name)
	}
}

func TestRouter_ServesStaticFiles(t *testing.T) {
	router, store := newTestRouter(t, "", "http://unused.invalid")

	if _, err := store.CreateBatchDir("batch-s"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(store.FilePath("batch-s", 1), []byte("audio bytes"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := doJSON(t, router, http.MethodGet, "/files/batch-s/vo_1.mp3", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "audio bytes" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}
