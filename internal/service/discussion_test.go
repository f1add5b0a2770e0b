package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"symposium.app/api-server/common/id"
	"symposium.app/api-server/internal/expert"
	"symposium.app/api-server/internal/model"
	"symposium.app/api-server/internal/service"
	"symposium.app/api-server/internal/turn"
)

var _ = Describe("DiscussionService", func() {
	var (
		svc         service.DiscussionService
		discussions *mockDiscussionStore
		messages    *mockMessageStore
		ctx         context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		discussions = &mockDiscussionStore{}
		messages = &mockMessageStore{}

		err := id.Init(1)
		Expect(err).NotTo(HaveOccurred())

		svc = service.NewDiscussionService(discussions, messages, expert.NewRegistry())
	})

	Describe("Create", func() {
		It("creates an active discussion at round 1", func() {
			var captured *model.Discussion
			discussions.createFn = func(_ context.Context, d *model.Discussion) error {
				captured = d
				return nil
			}

			d, err := svc.Create(ctx, "Caching strategy", "", model.ModeSequential, []string{"architect", "security"})
			Expect(err).NotTo(HaveOccurred())
			Expect(d.ID).NotTo(BeZero())
			Expect(d.Status).To(Equal(model.DiscussionActive))
			Expect(d.CurrentRound).To(Equal(1))
			Expect(captured).To(Equal(d))
		})

		It("rejects a single-expert panel", func() {
			_, err := svc.Create(ctx, "t", "", model.ModeSequential, []string{"architect"})
			Expect(err).To(MatchError(service.ErrPanelSize))
		})

		It("rejects a four-expert panel", func() {
			_, err := svc.Create(ctx, "t", "", model.ModeSequential,
				[]string{"architect", "security", "devops", "architect"})
			Expect(err).To(MatchError(service.ErrPanelSize))
		})

		It("rejects duplicate experts", func() {
			_, err := svc.Create(ctx, "t", "", model.ModeSequential, []string{"architect", "architect"})
			Expect(err).To(MatchError(service.ErrDuplicateExpert))
		})

		It("rejects unknown experts", func() {
			_, err := svc.Create(ctx, "t", "", model.ModeSequential, []string{"architect", "historian"})
			Expect(err).To(MatchError(expert.ErrExpertNotFound))
		})

		It("rejects unknown modes", func() {
			_, err := svc.Create(ctx, "t", "", "roundtable", []string{"architect", "security"})
			Expect(err).To(MatchError(service.ErrInvalidMode))
		})
	})

	Describe("AdvanceRound", func() {
		active := func() *model.Discussion {
			return &model.Discussion{
				ID:           1,
				Status:       model.DiscussionActive,
				Mode:         model.ModeSequential,
				ExpertIDs:    []string{"architect", "security"},
				CurrentRound: 1,
			}
		}

		It("advances once every participant has spoken", func() {
			discussions.getByIDFn = func(context.Context, int64) (*model.Discussion, error) {
				return active(), nil
			}
			messages.listByRoundFn = func(context.Context, int64, int) ([]model.Message, error) {
				return []model.Message{
					{Author: "architect", Round: 1},
					{Author: "security", Round: 1},
				}, nil
			}

			var newRound int
			discussions.updateRoundFn = func(_ context.Context, _ int64, round int) error {
				newRound = round
				return nil
			}

			d, err := svc.AdvanceRound(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.CurrentRound).To(Equal(2))
			Expect(newRound).To(Equal(2))
		})

		It("refuses while a participant is still silent", func() {
			discussions.getByIDFn = func(context.Context, int64) (*model.Discussion, error) {
				return active(), nil
			}
			messages.listByRoundFn = func(context.Context, int64, int) ([]model.Message, error) {
				return []model.Message{{Author: "architect", Round: 1}}, nil
			}

			_, err := svc.AdvanceRound(ctx, 1)
			Expect(err).To(MatchError(turn.ErrRoundIncomplete))
		})
	})

	Describe("Delete", func() {
		It("removes a completed discussion", func() {
			discussions.getByIDFn = func(context.Context, int64) (*model.Discussion, error) {
				return &model.Discussion{ID: 1, Status: model.DiscussionCompleted}, nil
			}
			deleted := false
			discussions.deleteFn = func(context.Context, int64) error {
				deleted = true
				return nil
			}

			Expect(svc.Delete(ctx, 1)).To(Succeed())
			Expect(deleted).To(BeTrue())
		})

		It("refuses to delete an active discussion", func() {
			discussions.getByIDFn = func(context.Context, int64) (*model.Discussion, error) {
				return &model.Discussion{ID: 1, Status: model.DiscussionActive}, nil
			}

			err := svc.Delete(ctx, 1)
			Expect(err).To(MatchError(service.ErrDiscussionNotCompleted))
		})
	})

	Describe("Eligible", func() {
		It("returns the next sequential expert", func() {
			discussions.getByIDFn = func(context.Context, int64) (*model.Discussion, error) {
				return &model.Discussion{
					ID:           1,
					Status:       model.DiscussionActive,
					Mode:         model.ModeSequential,
					ExpertIDs:    []string{"architect", "security"},
					CurrentRound: 2,
				}, nil
			}
			messages.listByRoundFn = func(_ context.Context, _ int64, round int) ([]model.Message, error) {
				Expect(round).To(Equal(2))
				return []model.Message{{Author: "architect", Round: 2}}, nil
			}

			eligible, err := svc.Eligible(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(eligible).To(Equal([]string{"security"}))
		})
	})
})
