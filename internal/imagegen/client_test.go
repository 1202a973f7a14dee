package imagegen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateDecodesImage(t *testing.T) {
	pngHeader := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/images/generations" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Fatalf("unexpected authorization header: %q", auth)
		}

		var req wireRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Prompt != "a lighthouse at dusk" {
			t.Fatalf("unexpected prompt: %q", req.Prompt)
		}
		if req.N != 1 || req.ResponseFormat != "b64_json" {
			t.Fatalf("unexpected request: %+v", req)
		}
		if req.Size != "1024x1024" {
			t.Fatalf("expected default size, got %q", req.Size)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{
				{"b64_json": base64.StdEncoding.EncodeToString(pngHeader)},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "gpt-image-1", "sk-test")
	img, err := client.Generate(context.Background(), Request{Prompt: "a lighthouse at dusk"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(img) != string(pngHeader) {
		t.Fatalf("decoded image does not match: %v", img)
	}
}

func TestGenerateRequiresPrompt(t *testing.T) {
	client := NewClient("http://localhost:1", "gpt-image-1", "")
	if _, err := client.Generate(context.Background(), Request{Prompt: "   "}); err == nil {
		t.Fatalf("expected error for empty prompt")
	}
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "billing hard limit reached"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "gpt-image-1", "sk-test")
	_, err := client.Generate(context.Background(), Request{Prompt: "anything"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "billing hard limit reached") {
		t.Fatalf("expected API error message, got: %v", err)
	}
}

func TestGenerateRejectsEmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "gpt-image-1", "")
	if _, err := client.Generate(context.Background(), Request{Prompt: "anything"}); err == nil {
		t.Fatalf("expected error for empty data")
	}
}

func TestGenerateRejectsInvalidBase64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"b64_json":"not base64!!!"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "gpt-image-1", "")
	if _, err := client.Generate(context.Background(), Request{Prompt: "anything"}); err == nil {
		t.Fatalf("expected base64 decode error")
	}
}

func TestDefaultOutputName(t *testing.T) {
	name := DefaultOutputName()
	if !strings.HasPrefix(name, "image-") || !strings.HasSuffix(name, ".png") {
		t.Fatalf("unexpected output name: %q", name)
	}
	if name == DefaultOutputName() {
		t.Fatalf("expected unique names")
	}
}
