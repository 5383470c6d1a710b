package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"villa/config"
	"villa/infras/otel"
	"villa/infras/s3"
	"villa/internal/domains/blog/model"
	"villa/internal/domains/blog/model/dto"
	"villa/internal/domains/blog/repository"
	"villa/shared"
	"villa/shared/cache"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"
	"villa/shared/media"
	"villa/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPost    = "blog:get"
	cacheGetAllPost = "blog:gets"
)

const (
	errPostNotFound = "post not found"
	errSlugTaken    = "slug is already in use"
)

type Blog interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPostsResponse, error)
	GetPublished(ctx context.Context, slug string) (dto.PostResponse, error)
	Get(ctx context.Context, id string) (dto.PostResponse, error)
	Create(ctx context.Context, req dto.CreatePostRequest) (dto.PostResponse, error)
	Update(ctx context.Context, req dto.UpdatePostRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadCover(ctx context.Context, req dto.UploadCoverRequest) (dto.UploadResponse, error)
}

type serviceImpl struct {
	repo  repository.BlogPost
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.BlogPost, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Blog {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

// GetAll lists posts matching filter. Public callers pass model.FilterPublished.
func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPostsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cache.Remember(ctx, s.cache, shared.BuildCacheKeyWithQuery(cacheGetAllPost, params, filter), s.cfg.Cache.TTL, func() (page dto.GetPostsResponse, err error) {
		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count blog posts")

			return page, fmt.Errorf("failed to count blog posts: %w", err)
		}

		posts, err := s.repo.GetAll(ctx, params, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get blog posts")

			return page, fmt.Errorf("failed to get blog posts: %w", err)
		}

		page.FromModels(posts, total, params.Limit)

		return page, nil
	})
}

// GetPublished returns a live post by slug. Drafts are reported as not found.
func (s *serviceImpl) GetPublished(ctx context.Context, slug string) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPublished")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cache.Remember(ctx, s.cache, shared.BuildCacheKey(cacheGetPost, model.FieldSlug, slug), s.cfg.Cache.TTL, func() (found dto.PostResponse, err error) {
		post, err := s.repo.Get(ctx, model.FilterBySlug(slug))
		if err != nil {
			log.Error().Err(err).Msg("failed to get blog post")

			return found, fmt.Errorf("failed to get blog post: %w", err)
		}

		if post.ID == constant.Empty || !post.Published {
			return found, failure.NotFound(errPostNotFound)
		}

		found.FromModel(post)

		return found, nil
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	post, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(post)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePostRequest) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	post, err := req.ToModel(actor, timezone.Now())
	if err != nil {
		return res, failure.BadRequest(err)
	}

	if err = s.ensureSlugFree(ctx, post.Slug, constant.Empty); err != nil {
		return res, err
	}

	err = s.repo.Insert(ctx, post)
	if shared.IsUniqueViolation(err) {
		return res, failure.Conflict(errSlugTaken)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create blog post")

		return res, fmt.Errorf("failed to create blog post: %w", err)
	}

	res.FromModel(post)

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePostRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdatePostRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	changes, err := req.ToChanges(current, timezone.Now())
	if err != nil {
		return failure.BadRequest(err)
	}

	if changes.Slug != nil && *changes.Slug != current.Slug {
		if err = s.ensureSlugFree(ctx, *changes.Slug, id); err != nil {
			return err
		}
	}

	err = s.repo.Update(ctx, shared.TransformFields(changes, actor), shared.FilterByID(id, model.FieldID, model.TableName))
	if shared.IsUniqueViolation(err) {
		return failure.Conflict(errSlugTaken)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to update blog post")

		return fmt.Errorf("failed to update blog post: %w", err)
	}

	s.invalidate(ctx)

	if changes.CoverImage != nil && current.CoverImage != nil && *changes.CoverImage != *current.CoverImage {
		s.deleteCover(ctx, *current.CoverImage)
	}

	return nil
}

// Delete removes the post and, in the background, its cover image.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	post, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete blog post")

		return fmt.Errorf("failed to delete blog post: %w", err)
	}

	s.invalidate(ctx)

	if post.CoverImage != nil {
		s.deleteCover(ctx, *post.CoverImage)
	}

	return nil
}

func (s *serviceImpl) UploadCover(ctx context.Context, req dto.UploadCoverRequest) (res dto.UploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadCover")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fileName := s3.NewObjectName(req.Image.Filename)
	contentType := media.ContentType(req.Image)

	url, err := s.s3.Upload(ctx, model.CoverDirectory, fileName, contentType, req.ImageFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload blog cover")

		return res, fmt.Errorf("failed to upload blog cover: %w", err)
	}

	res.URL = url
	res.FileName = fileName

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.BlogPost, error) {
	post, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get blog post")

		return post, fmt.Errorf("failed to get blog post: %w", err)
	}

	if post.ID == constant.Empty {
		return post, failure.NotFound(errPostNotFound)
	}

	return post, nil
}

func (s *serviceImpl) ensureSlugFree(ctx context.Context, slug, excludeID string) error {
	taken, err := s.repo.Exist(ctx, model.FilterSlugTaken(slug, excludeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check blog slug")

		return fmt.Errorf("failed to check blog slug: %w", err)
	}

	if taken {
		return failure.Conflict(errSlugTaken)
	}

	return nil
}

func (s *serviceImpl) deleteCover(ctx context.Context, url string) {
	go func() {
		objectKey := s.s3.ObjectKeyFromURL(url)
		if objectKey == constant.Empty {
			log.Warn().Str("url", url).Msg("cover image is not stored in the bucket")

			return
		}

		if err := s.s3.Delete(context.WithoutCancel(ctx), objectKey); err != nil {
			log.Error().Err(err).Str("objectKey", objectKey).Msg("failed to delete blog cover")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetPost)
		shared.InvalidateCaches(c, s.cache, cacheGetAllPost)
	}()
}
