package server_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/user/codeshot/pkg/adapters/memstore"
	"github.com/user/codeshot/pkg/config"
	"github.com/user/codeshot/pkg/mocks"
	"github.com/user/codeshot/pkg/ports"
	"github.com/user/codeshot/pkg/server"
	"github.com/user/codeshot/pkg/snapshot"
)

func newTestServer(t *testing.T, capturer ports.Capturer) (*httptest.Server, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	gen := snapshot.NewGenerator(mocks.NewHighlighter(), capturer, snapshot.Options{})
	srv := server.New(server.Options{
		SecretKey: "test-secret",
		Store:     store,
		Generator: gen,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

// newClient returns a cookie-carrying client. When follow is false the
// client surfaces redirect responses instead of following them.
func newClient(t *testing.T, follow bool) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := &http.Client{Jar: jar}
	if !follow {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}

func upload(t *testing.T, client *http.Client, baseURL, filename string, content []byte) *http.Response {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("code_file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()

	resp, err := client.Post(baseURL+"/", w.FormDataContentType(), body)
	if err != nil {
		t.Fatalf("POST /: %v", err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}

func TestUploadRedirectsThenShowsImage(t *testing.T) {
	ts, _ := newTestServer(t, mocks.NewCapturer())
	client := newClient(t, false)

	resp := upload(t, client, ts.URL, "script.py", []byte("print('hi')"))
	readBody(t, resp)
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("POST status: expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Errorf("Location: expected /, got %s", loc)
	}

	get, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	body := readBody(t, get)
	if get.StatusCode != http.StatusOK {
		t.Fatalf("GET status: expected 200, got %d", get.StatusCode)
	}
	if !strings.Contains(body, "data:image/png;base64,") {
		t.Error("expected inline image on redirected GET")
	}
	if !strings.Contains(body, "script_code_image.png") {
		t.Error("expected derived filename on page")
	}
}

func TestUploadSizeLimitBoundary(t *testing.T) {
	ts, store := newTestServer(t, mocks.NewCapturer())

	// Exactly at the limit succeeds
	atLimit := bytes.Repeat([]byte("a"), config.MaxUploadBytes)
	resp := upload(t, newClient(t, false), ts.URL, "big.py", atLimit)
	readBody(t, resp)
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("at-limit upload: expected 303, got %d", resp.StatusCode)
	}

	// One byte over fails with the size message
	over := bytes.Repeat([]byte("a"), config.MaxUploadBytes+1)
	resp = upload(t, newClient(t, false), ts.URL, "huge.py", over)
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("over-limit upload: expected 200 form, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "File too large. Maximum size is 1024 KB.") {
		t.Errorf("expected size-limit notice, got: %s", body)
	}
	if store.Len() != 0 {
		t.Errorf("store should be empty after rejected upload, has %d entries", store.Len())
	}
}

func TestUploadInvalidUTF8(t *testing.T) {
	ts, store := newTestServer(t, mocks.NewCapturer())

	resp := upload(t, newClient(t, false), ts.URL, "binary.py", []byte{0xff, 0xfe, 0xfd})
	body := readBody(t, resp)
	if !strings.Contains(body, "Invalid file encoding. Please upload a UTF-8 encoded text file.") {
		t.Errorf("expected encoding notice, got: %s", body)
	}
	if store.Len() != 0 {
		t.Errorf("store should stay empty, has %d entries", store.Len())
	}
}

func TestReloadClearsCache(t *testing.T) {
	ts, store := newTestServer(t, mocks.NewCapturer())
	client := newClient(t, true)

	resp := upload(t, client, ts.URL, "script.py", []byte("pass"))
	body := readBody(t, resp)
	if !strings.Contains(body, "data:image/png;base64,") {
		t.Fatal("upload flow did not show image")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 cached entry, got %d", store.Len())
	}

	// A plain reload without the redirect flag clears everything
	reload, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	body = readBody(t, reload)
	if strings.Contains(body, "data:image/png;base64,") {
		t.Error("reload should show the empty form, not the image")
	}
	if store.Len() != 0 {
		t.Errorf("store should be cleared on reload, has %d entries", store.Len())
	}

	// Download afterwards reports nothing available
	dl, err := client.Get(ts.URL + "/download")
	if err != nil {
		t.Fatalf("GET /download: %v", err)
	}
	body = readBody(t, dl)
	if !strings.Contains(body, "No image available for download.") {
		t.Errorf("expected no-image notice, got: %s", body)
	}
}

func TestDownloadIsOneTime(t *testing.T) {
	ts, store := newTestServer(t, mocks.NewCapturer())
	client := newClient(t, false)

	resp := upload(t, client, ts.URL, "script.py", []byte("pass"))
	readBody(t, resp)

	dl, err := client.Get(ts.URL + "/download")
	if err != nil {
		t.Fatalf("GET /download: %v", err)
	}
	data, _ := io.ReadAll(dl.Body)
	dl.Body.Close()

	if dl.StatusCode != http.StatusOK {
		t.Fatalf("download status: expected 200, got %d", dl.StatusCode)
	}
	if ct := dl.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type: expected image/png, got %s", ct)
	}
	if cd := dl.Header.Get("Content-Disposition"); !strings.Contains(cd, `attachment`) ||
		!strings.Contains(cd, "script_code_image.png") {
		t.Errorf("content disposition: %s", cd)
	}
	if !bytes.Equal(data, mocks.TinyPNG()) {
		t.Error("downloaded bytes differ from rendered image")
	}
	if store.Len() != 0 {
		t.Errorf("entry should be deleted after download, store has %d", store.Len())
	}

	// Second attempt redirects to the form with a notice
	again, err := client.Get(ts.URL + "/download")
	if err != nil {
		t.Fatalf("second GET /download: %v", err)
	}
	readBody(t, again)
	if again.StatusCode != http.StatusSeeOther {
		t.Fatalf("second download: expected 303, got %d", again.StatusCode)
	}
	followUp, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	if body := readBody(t, followUp); !strings.Contains(body, "No image available for download.") {
		t.Errorf("expected no-image notice, got: %s", body)
	}
}

func TestSecondUploadEvictsFirst(t *testing.T) {
	ts, store := newTestServer(t, mocks.NewCapturer())
	client := newClient(t, false)

	readBody(t, upload(t, client, ts.URL, "first.py", []byte("a = 1")))
	readBody(t, upload(t, client, ts.URL, "second.py", []byte("b = 2")))

	if store.Len() != 1 {
		t.Fatalf("single-slot store: expected 1 entry, got %d", store.Len())
	}

	dl, err := client.Get(ts.URL + "/download")
	if err != nil {
		t.Fatalf("GET /download: %v", err)
	}
	readBody(t, dl)
	if cd := dl.Header.Get("Content-Disposition"); !strings.Contains(cd, "second_code_image.png") {
		t.Errorf("expected second upload's filename, got %s", cd)
	}
}

func TestMissingFilePart(t *testing.T) {
	ts, _ := newTestServer(t, mocks.NewCapturer())

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if err := w.WriteField("unrelated", "x"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	w.Close()

	resp, err := newClient(t, false).Post(ts.URL+"/", w.FormDataContentType(), body)
	if err != nil {
		t.Fatalf("POST /: %v", err)
	}
	if got := readBody(t, resp); !strings.Contains(got, "No file uploaded.") {
		t.Errorf("expected no-file notice, got: %s", got)
	}
}

func TestEmptyFilename(t *testing.T) {
	ts, _ := newTestServer(t, mocks.NewCapturer())

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="code_file"; filename=""`)
	header.Set("Content-Type", "application/octet-stream")
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte("pass")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	resp, err := newClient(t, false).Post(ts.URL+"/", w.FormDataContentType(), body)
	if err != nil {
		t.Fatalf("POST /: %v", err)
	}
	if got := readBody(t, resp); !strings.Contains(got, "No file selected.") {
		t.Errorf("expected no-selection notice, got: %s", got)
	}
}

func TestRenderFailureShowsNotice(t *testing.T) {
	capturer := mocks.NewCapturer()
	capturer.CaptureElementFunc = func(ctx context.Context, html, selector string, opts ports.CaptureOptions) ([]byte, error) {
		return nil, errors.New("target crashed")
	}
	ts, store := newTestServer(t, capturer)

	resp := upload(t, newClient(t, false), ts.URL, "script.py", []byte("pass"))
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 form on failure, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Failed to generate screenshot") || !strings.Contains(body, "target crashed") {
		t.Errorf("expected render-failure notice, got: %s", body)
	}
	if store.Len() != 0 {
		t.Errorf("store should stay empty on failure, has %d entries", store.Len())
	}
}

func TestBrowserUnavailableShowsProvisioningNotice(t *testing.T) {
	capturer := mocks.NewCapturer()
	capturer.CaptureElementFunc = func(ctx context.Context, html, selector string, opts ports.CaptureOptions) ([]byte, error) {
		return nil, ports.ErrBrowserUnavailable
	}
	ts, _ := newTestServer(t, capturer)

	resp := upload(t, newClient(t, false), ts.URL, "script.py", []byte("pass"))
	if body := readBody(t, resp); !strings.Contains(body, "Browser binaries are missing.") {
		t.Errorf("expected provisioning notice, got: %s", body)
	}
}
