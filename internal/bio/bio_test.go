package bio_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"localspot/internal/bio"
	"localspot/internal/config"
	"localspot/internal/model"
)

func TestGeminiClient(t *testing.T) {
	ctx := context.Background()

	t.Run("returns trimmed candidate text", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.URL.Path, ":generateContent") {
				t.Errorf("request path = %s, want generateContent call", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("decode request body: %v", err)
			}
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Fresh sourdough daily.  "}]}}]}`))
		}))
		defer server.Close()

		client := bio.NewGeminiClient("test-key", "test-model", server.URL)
		text, err := client.GenerateBio(ctx, "Aria's Artisan Bakery", model.CategoryFoodDrink, "sourdough, pastries")
		if err != nil {
			t.Fatalf("GenerateBio() error = %v", err)
		}
		if text != "Fresh sourdough daily." {
			t.Errorf("GenerateBio() = %q, want trimmed text", text)
		}

		prompt := promptFromRequest(t, gotBody)
		for _, want := range []string{"Aria's Artisan Bakery", "Food & Drink", "sourdough, pastries", "under 150 characters"} {
			if !strings.Contains(prompt, want) {
				t.Errorf("prompt missing %q:\n%s", want, prompt)
			}
		}
	})

	t.Run("errors without an API key", func(t *testing.T) {
		client := bio.NewGeminiClient("", "", "")
		if _, err := client.GenerateBio(ctx, "Shop", model.CategoryRetail, ""); err == nil {
			t.Error("GenerateBio() error = nil, want missing key error")
		}
	})

	t.Run("errors on non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := bio.NewGeminiClient("test-key", "", server.URL)
		if _, err := client.GenerateBio(ctx, "Shop", model.CategoryRetail, ""); err == nil {
			t.Error("GenerateBio() error = nil, want status error")
		}
	})

	t.Run("errors on empty candidates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		}))
		defer server.Close()

		client := bio.NewGeminiClient("test-key", "", server.URL)
		if _, err := client.GenerateBio(ctx, "Shop", model.CategoryRetail, ""); err == nil {
			t.Error("GenerateBio() error = nil, want empty candidates error")
		}
	})
}

func promptFromRequest(t *testing.T, body map[string]any) string {
	t.Helper()
	contents, ok := body["contents"].([]any)
	if !ok || len(contents) == 0 {
		t.Fatalf("request body missing contents: %v", body)
	}
	parts := contents[0].(map[string]any)["parts"].([]any)
	return parts[0].(map[string]any)["text"].(string)
}

func TestTemplateGenerator(t *testing.T) {
	ctx := context.Background()
	gen := bio.TemplateGenerator{}

	t.Run("mentions name and category", func(t *testing.T) {
		text, err := gen.GenerateBio(ctx, "Precision Cuts", model.CategoryHairBeauty, "")
		if err != nil {
			t.Fatalf("GenerateBio() error = %v", err)
		}
		if !strings.Contains(text, "Precision Cuts") || !strings.Contains(text, "hair & beauty") {
			t.Errorf("GenerateBio() = %q, want name and category mentioned", text)
		}
	})

	t.Run("folds keywords into the sentence", func(t *testing.T) {
		text, err := gen.GenerateBio(ctx, "Precision Cuts", model.CategoryHairBeauty, "fades, beard trims")
		if err != nil {
			t.Fatalf("GenerateBio() error = %v", err)
		}
		if !strings.Contains(text, "fades and beard trims") {
			t.Errorf("GenerateBio() = %q, want keywords joined", text)
		}
	})

	t.Run("requires a name", func(t *testing.T) {
		if _, err := gen.GenerateBio(ctx, "", model.CategoryOther, ""); err == nil {
			t.Error("GenerateBio() error = nil, want missing name error")
		}
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Run("gemini requires api key", func(t *testing.T) {
		if _, err := bio.NewFromConfig(config.BioConfig{Type: "gemini"}); err == nil {
			t.Error("NewFromConfig() error = nil, want missing key error")
		}
	})

	t.Run("defaults to template", func(t *testing.T) {
		gen, err := bio.NewFromConfig(config.BioConfig{})
		if err != nil {
			t.Fatalf("NewFromConfig() error = %v", err)
		}
		if _, ok := gen.(bio.TemplateGenerator); !ok {
			t.Errorf("NewFromConfig() = %T, want TemplateGenerator", gen)
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		if _, err := bio.NewFromConfig(config.BioConfig{Type: "markov"}); err == nil {
			t.Error("NewFromConfig() error = nil, want unknown type error")
		}
	})
}
