package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"villa/config"
	"villa/infras/otel"
	"villa/infras/s3"
	"villa/internal/domains/gallery/model"
	"villa/internal/domains/gallery/model/dto"
	"villa/internal/domains/gallery/repository"
	"villa/shared"
	"villa/shared/cache"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"
	"villa/shared/media"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetImage    = "gallery:get"
	cacheGetAllImage = "gallery:gets"
)

const errImageNotFound = "gallery image not found"

type Gallery interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetImagesResponse, error)
	Get(ctx context.Context, id string) (dto.ImageResponse, error)
	Create(ctx context.Context, req dto.CreateImageRequest) (dto.ImageResponse, error)
	Update(ctx context.Context, req dto.UpdateImageRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.GalleryImage
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.GalleryImage, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Gallery {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cache.Remember(ctx, s.cache, shared.BuildCacheKeyWithQuery(cacheGetAllImage, params, filter), s.cfg.Cache.TTL, func() (page dto.GetImagesResponse, err error) {
		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count gallery images")

			return page, fmt.Errorf("failed to count gallery images: %w", err)
		}

		images, err := s.repo.GetAll(ctx, params, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get gallery images")

			return page, fmt.Errorf("failed to get gallery images: %w", err)
		}

		page.FromModels(images, total, params.Limit)

		return page, nil
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cache.Remember(ctx, s.cache, shared.BuildCacheKey(cacheGetImage, model.FieldID, id), s.cfg.Cache.TTL, func() (found dto.ImageResponse, err error) {
		image, err := s.get(ctx, id)
		if err != nil {
			return found, err
		}

		found.FromModel(image)

		return found, nil
	})
}

// Create uploads the photo first and only records it once the bucket accepted it.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateImageRequest) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fileName := s3.NewObjectName(req.Image.Filename)
	contentType := media.ContentType(req.Image)

	url, err := s.s3.Upload(ctx, model.ImageDirectory, fileName, contentType, req.ImageFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload gallery image")

		return res, fmt.Errorf("failed to upload gallery image: %w", err)
	}

	image := req.ToModel(actor, url)

	if err = s.repo.Insert(ctx, image); err != nil {
		log.Error().Err(err).Msg("failed to create gallery image")

		s.deleteObject(ctx, url)

		return res, fmt.Errorf("failed to create gallery image: %w", err)
	}

	res.FromModel(image)

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateImageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateImageRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check gallery image")

		return fmt.Errorf("failed to check gallery image: %w", err)
	}

	if !exist {
		return failure.NotFound(errImageNotFound)
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor), filter); err != nil {
		log.Error().Err(err).Msg("failed to update gallery image")

		return fmt.Errorf("failed to update gallery image: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// Delete removes the record; the bucket object is removed in the background.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	image, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete gallery image")

		return fmt.Errorf("failed to delete gallery image: %w", err)
	}

	s.invalidate(ctx)
	s.deleteObject(ctx, image.URL)

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.GalleryImage, error) {
	image, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery image")

		return image, fmt.Errorf("failed to get gallery image: %w", err)
	}

	if image.ID == constant.Empty {
		return image, failure.NotFound(errImageNotFound)
	}

	return image, nil
}

func (s *serviceImpl) deleteObject(ctx context.Context, url string) {
	go func() {
		objectKey := s.s3.ObjectKeyFromURL(url)
		if objectKey == constant.Empty {
			log.Warn().Str("url", url).Msg("gallery image is not stored in the bucket")

			return
		}

		if err := s.s3.Delete(context.WithoutCancel(ctx), objectKey); err != nil {
			log.Error().Err(err).Str("objectKey", objectKey).Msg("failed to delete gallery object")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetImage)
		shared.InvalidateCaches(c, s.cache, cacheGetAllImage)
	}()
}
