package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ankit-kv/gridmaker/pkg/grid/sink"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(log.NewWithOptions(io.Discard, log.Options{}))
}

func testPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func composeRequest(t *testing.T, fields map[string]string, images ...[]byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatal(err)
		}
	}
	for _, data := range images {
		part, err := mw.CreateFormFile("images", "img.png")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/compose", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestComposeAndDownload(t *testing.T) {
	srv := testServer(t)
	router := srv.Routes()

	img := testPNG(t, 8, 8, color.NRGBA{R: 255, A: 255})
	req := composeRequest(t, map[string]string{
		"rows":       "1",
		"cols":       "2",
		"cell_width": "16", "cell_height": "16",
		"format": "png",
	}, img, img)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("compose status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp composeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID == "" {
		t.Fatal("response has no job ID")
	}
	if len(resp.Artifacts) != 1 {
		t.Fatalf("artifacts = %d, want 1", len(resp.Artifacts))
	}
	if resp.CanvasWidth == 0 || resp.CanvasHeight == 0 {
		t.Fatalf("canvas = %dx%d, want nonzero", resp.CanvasWidth, resp.CanvasHeight)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.Artifacts[0].URL, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("download status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", got)
	}
	if _, err := png.Decode(rec.Body); err != nil {
		t.Errorf("downloaded artifact is not a PNG: %v", err)
	}
}

func TestComposeNoImages(t *testing.T) {
	srv := testServer(t)
	req := composeRequest(t, map[string]string{"rows": "1", "cols": "1"})
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestComposeBadParams(t *testing.T) {
	srv := testServer(t)
	img := testPNG(t, 8, 8, color.NRGBA{A: 255})
	req := composeRequest(t, map[string]string{"rows": "0", "cols": "1"}, img)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == "" {
		t.Error("error response has no message")
	}
}

func TestArtifactNotFound(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/artifacts/no-such-job/image_grid.png", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(time.Millisecond)
	job := store.Put("grid", map[sink.Format][]byte{sink.FormatPNG: {1, 2, 3}})

	if _, err := store.Get(job.ID); err != nil {
		t.Fatalf("Get right after Put: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, err := store.Get(job.ID); err == nil {
		t.Fatal("Get after expiry should fail")
	}
	if dropped := store.Cleanup(); dropped != 1 {
		t.Errorf("Cleanup dropped %d, want 1", dropped)
	}
}

func TestJobArtifactLookup(t *testing.T) {
	store := NewStore(0)
	job := store.Put("grid", map[sink.Format][]byte{
		sink.FormatPNG:  {1},
		sink.FormatJPEG: {2},
	})

	data, format, err := job.Artifact("grid.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if format != sink.FormatJPEG || len(data) != 1 {
		t.Errorf("Artifact = %q/%d bytes, want jpeg/1", format, len(data))
	}

	if _, _, err := job.Artifact("../../etc/passwd"); err == nil {
		t.Error("path traversal name should be rejected")
	}
	if _, _, err := job.Artifact("grid.webp"); err == nil {
		t.Error("missing artifact should be rejected")
	}
}

func TestParseParamsPresetOverride(t *testing.T) {
	form := url.Values{}
	form.Set("preset", "contact-sheet")
	form.Set("rows", "2")

	p, err := parseParams(form)
	if err != nil {
		t.Fatal(err)
	}
	if p.config.Grid.Rows != 2 {
		t.Errorf("Rows = %d, want explicit value 2 over preset", p.config.Grid.Rows)
	}
}

func TestParseParamsGradient(t *testing.T) {
	form := url.Values{}
	form.Set("background", "gradient")
	form.Set("gradient_start", "#102030")
	form.Set("gradient_direction", "horizontal")

	p, err := parseParams(form)
	if err != nil {
		t.Fatal(err)
	}
	bg := p.config.Background
	if bg.Start.Hex() != "#102030" {
		t.Errorf("Start = %s, want #102030", bg.Start.Hex())
	}
	if bg.Direction != "horizontal" {
		t.Errorf("Direction = %s, want horizontal", bg.Direction)
	}
}
