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

	"symposium.app/api-server/internal/http/handler"
	"symposium.app/api-server/internal/model"
	"symposium.app/api-server/internal/service"
	"symposium.app/api-server/internal/turn"
)

var _ = Describe("DiscussionHandler", func() {
	var (
		router      *gin.Engine
		discussions *mockDiscussionService
		turns       *mockTurnService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		discussions = &mockDiscussionService{}
		turns = &mockTurnService{}

		h := handler.NewDiscussionHandler(discussions, turns)
		router.POST("/discussions", h.Create)
		router.GET("/discussions/:id", h.GetByID)
		router.POST("/discussions/:id/messages", h.SubmitTurn)
		router.GET("/discussions/:id/turn-state", h.TurnState)
		router.POST("/discussions/:id/advance-round", h.AdvanceRound)
		router.DELETE("/discussions/:id", h.Delete)
	})

	Describe("Create", func() {
		It("returns 201 with the new discussion", func() {
			discussions.createFn = func(_ context.Context, topic, _ string, mode model.DiscussionMode, expertIDs []string) (*model.Discussion, error) {
				return &model.Discussion{
					ID:           101,
					Topic:        topic,
					Status:       model.DiscussionActive,
					Mode:         mode,
					ExpertIDs:    expertIDs,
					CurrentRound: 1,
				}, nil
			}

			body, _ := json.Marshal(map[string]any{
				"topic":           "API versioning",
				"discussion_mode": "sequential",
				"expert_ids":      []string{"architect", "security"},
			})
			req := httptest.NewRequest(http.MethodPost, "/discussions", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["id"]).To(Equal("101"))
			Expect(resp["current_round"]).To(BeEquivalentTo(1))
			Expect(resp["status"]).To(Equal("active"))
		})

		It("returns 400 when the panel is too small", func() {
			body, _ := json.Marshal(map[string]any{
				"topic":           "t",
				"discussion_mode": "sequential",
				"expert_ids":      []string{"architect"},
			})
			req := httptest.NewRequest(http.MethodPost, "/discussions", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 on unknown mode", func() {
			body, _ := json.Marshal(map[string]any{
				"topic":           "t",
				"discussion_mode": "roundtable",
				"expert_ids":      []string{"architect", "security"},
			})
			req := httptest.NewRequest(http.MethodPost, "/discussions", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GetByID", func() {
		It("returns 404 for a missing discussion", func() {
			req := httptest.NewRequest(http.MethodGet, "/discussions/5", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 400 for a malformed id", func() {
			req := httptest.NewRequest(http.MethodGet, "/discussions/abc", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("SubmitTurn", func() {
		It("returns 201 with both persisted messages", func() {
			turns.submitFn = func(_ context.Context, discussionID int64, expertID, userText string) (*service.TurnResult, error) {
				Expect(discussionID).To(Equal(int64(7)))
				Expect(expertID).To(Equal("architect"))
				return &service.TurnResult{
					UserMessage: &model.Message{
						ID: 1, DiscussionID: 7, Author: model.AuthorUser,
						Content: userText, Round: 1, ResponseOrder: 1,
					},
					ExpertMessage: &model.Message{
						ID: 2, DiscussionID: 7, Author: expertID,
						Content: "Version in the path.", Round: 1, ResponseOrder: 2,
						Metadata: &model.MessageMetadata{
							Confidence:       0.8,
							AgreementLevel:   0.5,
							ContributionType: model.ContributionPrimary,
						},
					},
					CanAdvance: false,
				}, nil
			}

			body, _ := json.Marshal(map[string]string{
				"expert_id": "architect",
				"content":   "How should we version?",
			})
			req := httptest.NewRequest(http.MethodPost, "/discussions/7/messages", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			expertMsg := resp["expert_message"].(map[string]any)
			Expect(expertMsg["author"]).To(Equal("architect"))
			Expect(expertMsg["response_order"]).To(BeEquivalentTo(2))
			Expect(resp["can_advance"]).To(BeFalse())
		})

		It("returns 409 when the policy rejects the turn", func() {
			turns.submitFn = func(context.Context, int64, string, string) (*service.TurnResult, error) {
				return nil, turn.ErrNotExpertTurn
			}

			body, _ := json.Marshal(map[string]string{
				"expert_id": "security",
				"content":   "hello",
			})
			req := httptest.NewRequest(http.MethodPost, "/discussions/7/messages", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("returns 400 when content is missing", func() {
			body, _ := json.Marshal(map[string]string{"expert_id": "architect"})
			req := httptest.NewRequest(http.MethodPost, "/discussions/7/messages", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("TurnState", func() {
		It("reports eligibility and advance readiness", func() {
			discussions.getFn = func(context.Context, int64) (*model.Discussion, error) {
				return &model.Discussion{ID: 7, Status: model.DiscussionActive, Mode: model.ModeSequential, CurrentRound: 3}, nil
			}
			discussions.eligibleFn = func(context.Context, int64) ([]string, error) {
				return []string{"security"}, nil
			}
			discussions.roundCompleteFn = func(context.Context, int64) (bool, error) {
				return false, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/discussions/7/turn-state", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["round"]).To(BeEquivalentTo(3))
			Expect(resp["eligible_experts"]).To(ConsistOf("security"))
			Expect(resp["can_advance"]).To(BeFalse())
		})
	})

	Describe("AdvanceRound", func() {
		It("returns 409 while the round is incomplete", func() {
			discussions.advanceRoundFn = func(context.Context, int64) (*model.Discussion, error) {
				return nil, turn.ErrRoundIncomplete
			}

			req := httptest.NewRequest(http.MethodPost, "/discussions/7/advance-round", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("Delete", func() {
		It("returns 409 for an active discussion", func() {
			discussions.deleteFn = func(context.Context, int64) error {
				return service.ErrDiscussionNotCompleted
			}

			req := httptest.NewRequest(http.MethodDelete, "/discussions/7", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("returns 204 on success", func() {
			req := httptest.NewRequest(http.MethodDelete, "/discussions/7", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
		})
	})
})
