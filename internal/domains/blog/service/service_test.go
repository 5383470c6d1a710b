package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	"villa/infras/otel/mocks"
	s3Mocks "villa/infras/s3/mocks"
	blogMocks "villa/internal/domains/blog/mocks"
	"villa/internal/domains/blog/model"
	"villa/internal/domains/blog/model/dto"
	"villa/internal/domains/blog/service"
	cacheMocks "villa/shared/cache/mocks"
	"villa/shared/constant"
	"villa/shared/failure"
)

type fixture struct {
	svc   service.Blog
	repo  *blogMocks.MockBlogPost
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
}

func setup(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  blogMocks.NewMockBlogPost(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func asAdmin() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func TestBlogService_Create(t *testing.T) {
	t.Run("derives slug from title", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, post model.BlogPost) error {
			assert.Equal(t, "five-walks-from-the-villa", post.Slug)
			assert.NotNil(t, post.PublishedAt)

			return nil
		})

		res, err := f.svc.Create(asAdmin(), dto.CreatePostRequest{Title: "Five Walks From The Villa", Content: "...", Published: true})

		assert.NoError(t, err)
		assert.Equal(t, "five-walks-from-the-villa", res.Slug)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(asAdmin(), dto.CreatePostRequest{Title: "Taken", Content: "..."})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("invalid slug", func(t *testing.T) {
		f := setup(t)

		bad := "Bad Slug"

		_, err := f.svc.Create(asAdmin(), dto.CreatePostRequest{Title: "Title", Slug: &bad, Content: "..."})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBlogService_GetPublished(t *testing.T) {
	tests := []struct {
		name     string
		stored   model.BlogPost
		wantCode int
	}{
		{name: "published", stored: model.BlogPost{ID: "p1", Slug: "hello", Published: true}},
		{name: "draft", stored: model.BlogPost{ID: "p1", Slug: "hello"}, wantCode: http.StatusNotFound},
		{name: "missing", stored: model.BlogPost{}, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
			f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.stored, nil)

			res, err := f.svc.GetPublished(context.Background(), "hello")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "hello", res.Slug)
			}

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestBlogService_Delete(t *testing.T) {
	f := setup(t)

	cover := "https://cdn.example.com/blog/cover.jpg"

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.BlogPost{ID: "p1", CoverImage: &cover}, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	f.s3.EXPECT().ObjectKeyFromURL(cover).Return("blog/cover.jpg")
	f.s3.EXPECT().Delete(gomock.Any(), "blog/cover.jpg").Return(nil)

	err := f.svc.Delete(asAdmin(), "p1")

	assert.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
}

func TestBlogService_UploadCover(t *testing.T) {
	f := setup(t)

	header := &multipart.FileHeader{
		Filename: "Cover.PNG",
		Header:   textproto.MIMEHeader{constant.RequestHeaderContentType: []string{"image/png"}},
	}

	f.s3.EXPECT().
		Upload(gomock.Any(), model.CoverDirectory, gomock.Any(), "image/png", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, fileName, _ string, _ any) (string, error) {
			assert.True(t, strings.HasSuffix(fileName, ".png"))

			return "https://cdn.example.com/blog/" + fileName, nil
		})

	res, err := f.svc.UploadCover(asAdmin(), dto.UploadCoverRequest{Image: header})

	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/blog/"+res.FileName, res.URL)
}
