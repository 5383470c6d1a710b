package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	"villa/infras/otel/mocks"
	faqMocks "villa/internal/domains/faq/mocks"
	"villa/internal/domains/faq/model"
	"villa/internal/domains/faq/model/dto"
	"villa/internal/domains/faq/repository"
	"villa/internal/domains/faq/service"
	cacheMocks "villa/shared/cache/mocks"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"
)

type fixture struct {
	svc   service.Faq
	repo  *faqMocks.MockFaq
	cache *cacheMocks.MockRedisCache
}

func setup(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  faqMocks.NewMockFaq(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func helpful(v bool) dto.VoteRequest {
	return dto.VoteRequest{Helpful: &v}
}

func TestFaqService_Vote(t *testing.T) {
	published := model.Faq{ID: "faq-1", Published: true}

	tests := []struct {
		name         string
		ctx          context.Context
		req          dto.VoteRequest
		anonymousKey string
		mock         func(f fixture)
		wantCode     int
		want         dto.VoteResponse
	}{
		{
			name: "signed-in user votes as themselves",
			ctx:  context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1"),
			req:  helpful(true),
			mock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published, nil)
				f.repo.EXPECT().Vote(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, vote model.Vote) (model.VoteCounts, error) {
					assert.Equal(t, "user:user-1", vote.VoterKey)
					assert.Equal(t, "user-1", *vote.UserID)
					assert.True(t, vote.Helpful)

					return model.VoteCounts{HelpfulVotes: 3, NotHelpfulVotes: 1}, nil
				})
			},
			want: dto.VoteResponse{ID: "faq-1", HelpfulVotes: 3, NotHelpfulVotes: 1},
		},
		{
			name:         "anonymous visitor keyed by session",
			ctx:          context.Background(),
			req:          helpful(false),
			anonymousKey: "browser-session",
			mock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published, nil)
				f.repo.EXPECT().Vote(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, vote model.Vote) (model.VoteCounts, error) {
					assert.Equal(t, "anon:browser-session", vote.VoterKey)
					assert.Nil(t, vote.UserID)
					assert.False(t, vote.Helpful)

					return model.VoteCounts{HelpfulVotes: 0, NotHelpfulVotes: 1}, nil
				})
			},
			want: dto.VoteResponse{ID: "faq-1", NotHelpfulVotes: 1},
		},
		{
			name:     "no voter identity",
			ctx:      context.Background(),
			req:      helpful(true),
			mock:     func(f fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:         "missing helpful flag",
			ctx:          context.Background(),
			req:          dto.VoteRequest{},
			anonymousKey: "10.0.0.1",
			mock:         func(f fixture) {},
			wantCode:     http.StatusBadRequest,
		},
		{
			name:         "unpublished faq",
			ctx:          context.Background(),
			req:          helpful(true),
			anonymousKey: "10.0.0.1",
			mock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Faq{ID: "faq-1"}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:         "faq removed mid-vote",
			ctx:          context.Background(),
			req:          helpful(true),
			anonymousKey: "10.0.0.1",
			mock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published, nil)
				f.repo.EXPECT().Vote(gomock.Any(), gomock.Any()).Return(model.VoteCounts{}, repository.ErrFaqNotFound)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:         "database error",
			ctx:          context.Background(),
			req:          helpful(true),
			anonymousKey: "10.0.0.1",
			mock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published, nil)
				f.repo.EXPECT().Vote(gomock.Any(), gomock.Any()).Return(model.VoteCounts{}, errors.New("deadlock"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.mock(f)

			res, err := f.svc.Vote(tt.ctx, tt.req, "faq-1", tt.anonymousKey)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, res)
			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestFaqService_GetAll(t *testing.T) {
	f := setup(t)

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: []any{model.FilterPublished()}}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.repo.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), filter).Return([]model.Faq{{ID: "faq-1", Published: true, HelpfulVotes: 2}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, filter)

	assert.NoError(t, err)
	assert.Len(t, res.Faqs, 1)
	assert.Equal(t, 2, res.Faqs[0].HelpfulVotes)
	time.Sleep(10 * time.Millisecond)
}

func TestFaqService_Create(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	res, err := f.svc.Create(ctx, dto.CreateFaqRequest{Question: " Is there parking? ", Answer: "Yes, two cars."})

	assert.NoError(t, err)
	assert.Equal(t, "Is there parking?", res.Question)
	assert.Equal(t, dto.DefaultCategory, res.Category)
	time.Sleep(10 * time.Millisecond)
}

func TestFaqService_Update(t *testing.T) {
	f := setup(t)

	err := f.svc.Update(context.Background(), dto.UpdateFaqRequest{}, "faq-1")

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestFaqService_Delete(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Faq{}, nil)

	err := f.svc.Delete(context.Background(), "faq-1")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
