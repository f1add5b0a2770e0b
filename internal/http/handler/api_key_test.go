package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"symposium.app/api-server/common/llm"
	"symposium.app/api-server/internal/http/handler"
	"symposium.app/api-server/internal/model"
)

var _ = Describe("APIKeyHandler", func() {
	var (
		router *gin.Engine
		keys   *mockAPIKeyService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		keys = &mockAPIKeyService{}

		h := handler.NewAPIKeyHandler(keys)
		router.POST("/keys", h.Create)
		router.GET("/keys", h.List)
		router.POST("/keys/validate", h.Validate)
	})

	Describe("Create", func() {
		It("returns 201 without echoing the secret", func() {
			keys.createFn = func(_ context.Context, provider, name, secret string) (*model.APIKey, error) {
				return &model.APIKey{ID: 5, Provider: provider, Name: name, Secret: secret, IsActive: true}, nil
			}

			body, _ := json.Marshal(map[string]string{
				"provider": "openai",
				"name":     "work key",
				"key":      "sk-secret",
			})
			req := httptest.NewRequest(http.MethodPost, "/keys", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(w.Body.String()).NotTo(ContainSubstring("sk-secret"))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["provider"]).To(Equal("openai"))
			Expect(resp["is_active"]).To(BeTrue())
		})

		It("returns 401 for a provider-rejected key", func() {
			keys.createFn = func(context.Context, string, string, string) (*model.APIKey, error) {
				return nil, llm.ErrInvalidCredential
			}

			body, _ := json.Marshal(map[string]string{
				"provider": "anthropic",
				"name":     "bad",
				"key":      "sk-bad",
			})
			req := httptest.NewRequest(http.MethodPost, "/keys", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns 400 for an unsupported provider", func() {
			body, _ := json.Marshal(map[string]string{
				"provider": "cohere",
				"name":     "k",
				"key":      "sk",
			})
			req := httptest.NewRequest(http.MethodPost, "/keys", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Validate", func() {
		It("reports invalid keys in the body, not the status", func() {
			keys.validateFn = func(context.Context, string, string) error {
				return llm.ErrInvalidCredential
			}

			body, _ := json.Marshal(map[string]string{
				"provider": "openai",
				"key":      "sk-bad",
			})
			req := httptest.NewRequest(http.MethodPost, "/keys/validate", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["valid"]).To(BeFalse())
			Expect(resp["error"]).NotTo(BeEmpty())
		})

		It("reports valid keys", func() {
			body, _ := json.Marshal(map[string]string{
				"provider": "openai",
				"key":      "sk-good",
			})
			req := httptest.NewRequest(http.MethodPost, "/keys/validate", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["valid"]).To(BeTrue())
		})
	})

	Describe("List", func() {
		It("lists keys without secrets", func() {
			keys.listFn = func(context.Context) ([]model.APIKey, error) {
				return []model.APIKey{
					{ID: 1, Provider: "openai", Name: "a", Secret: "sk-one", IsActive: true},
					{ID: 2, Provider: "anthropic", Name: "b", Secret: "sk-two"},
				}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/keys", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).NotTo(ContainSubstring("sk-one"))
			var resp []map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp).To(HaveLen(2))
		})
	})
})
