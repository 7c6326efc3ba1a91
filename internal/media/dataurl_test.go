package media

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func uploadedFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", name)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	return req.MultipartForm.File["image"][0]
}

func TestDataURLFromFile(t *testing.T) {
	got, err := DataURLFromFile(uploadedFile(t, "meal.png", pngHeader), 0)
	if err != nil {
		t.Fatalf("DataURLFromFile: unexpected error: %v", err)
	}
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader)
	if got != want {
		t.Fatalf("DataURLFromFile: want %q got %q", want, got)
	}
	if !ValidDataURL(got) {
		t.Fatalf("ValidDataURL: rejected its own output")
	}
}

func TestDataURLFromFileRejects(t *testing.T) {
	if _, err := DataURLFromFile(uploadedFile(t, "notes.txt", []byte("plain text")), 0); !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("DataURLFromFile text: want validation error got %v", err)
	}
	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	if _, err := DataURLFromFile(uploadedFile(t, "big.png", big), 16); !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("DataURLFromFile oversize: want validation error got %v", err)
	}
	if _, err := DataURLFromFile(nil, 0); err == nil {
		t.Fatalf("DataURLFromFile nil: want error")
	}
}

func TestValidDataURL(t *testing.T) {
	cases := map[string]bool{
		"data:image/jpeg;base64,/9j/4AAQ":   true,
		"data:image/png;base64,":            false,
		"data:text/plain;base64,aGVsbG8=":   false,
		"data:image/png,rawpayload":         false,
		"https://cdn.example.test/meal.png": false,
		"data:image/png;base64,not*base64!": false,
		"":                                  false,
	}
	for in, want := range cases {
		if got := ValidDataURL(in); got != want {
			t.Fatalf("ValidDataURL(%q): want %v got %v", strings.TrimSpace(in), want, got)
		}
	}
}
