package blog

import (
	"net/http"
	"villa/infras/otel"
	"villa/internal/domains/blog/model"
	"villa/internal/domains/blog/model/dto"
	"villa/internal/domains/blog/service"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"
	"villa/shared/validator"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formImage = "image"

type Handler struct {
	service service.Blog
	otel    otel.Otel
}

func New(service service.Blog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/blog", handler.GetPublishedPosts)
	router.Get("/blog/{slug}", handler.GetPostBySlug)

	router.Get("/admin/blog", handler.GetPosts)
	router.Post("/admin/blog", handler.CreatePost)
	router.Post("/admin/blog/cover", handler.UploadCover)
	router.Get("/admin/blog/{id}", handler.GetPostByID)
	router.Patch("/admin/blog/{id}", handler.UpdatePost)
	router.Delete("/admin/blog/{id}", handler.DeletePost)
}

// GetPublishedPosts lists live posts.
// @Summary Get published blog posts
// @Tags Blog
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param q query string false "Search title and excerpt"
// @Success 200 {object} response.Data[dto.GetPostsResponse]
// @Failure 500 {object} response.Error
// @Router /api/blog [get]
func (handler *Handler) GetPublishedPosts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublishedPosts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := postsFilter(r)
	filterGroup.Filters = append(filterGroup.Filters, model.FilterPublished())

	posts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get published posts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, posts)
}

// GetPostBySlug returns a published post.
// @Summary Get a blog post by slug
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} response.Data[dto.PostResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/blog/{slug} [get]
func (handler *Handler) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPostBySlug")
	defer scope.End()

	slug := chi.URLParam(r, constant.RequestParamSlug)

	post, err := handler.service.GetPublished(ctx, slug)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get post by slug")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, post)
}

// GetPosts lists every post, drafts included.
// @Summary Get all blog posts
// @Tags Blog
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param q query string false "Search title and excerpt"
// @Param published query boolean false "Filter by published flag"
// @Success 200 {object} response.Data[dto.GetPostsResponse]
// @Failure 500 {object} response.Error
// @Router /api/admin/blog [get]
// @Security BearerAuth
func (handler *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPosts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := postsFilter(r)

	if published := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldPublished)); published != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPublished,
			Operator: gDto.FilterOperatorEq,
			Value:    *published,
			Table:    model.TableName,
		})
	}

	posts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get posts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, posts)
}

func postsFilter(r *http.Request) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if search := r.URL.Query().Get(constant.RequestParamSearch); search != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, model.FilterSearch(search))
	}

	return filterGroup
}

// GetPostByID returns any post for editing.
// @Summary Get a blog post by ID
// @Tags Blog
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.Data[dto.PostResponse]
// @Failure 404 {object} response.Error
// @Router /api/admin/blog/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPostByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPostByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	post, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get post by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, post)
}

// CreatePost creates a post. The slug is derived from the title when omitted.
// @Summary Create a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "Post"
// @Success 201 {object} response.Data[dto.PostResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /api/admin/blog [post]
// @Security BearerAuth
func (handler *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePost")
	defer scope.End()

	req := dto.CreatePostRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create post")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Post created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdatePost edits a post.
// @Summary Update a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body dto.UpdatePostRequest true "Changes"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /api/admin/blog/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePost")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePostRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update post")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Post updated successfully")
}

// DeletePost deletes a post.
// @Summary Delete a blog post
// @Tags Blog
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /api/admin/blog/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePost")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete post")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Post deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Post deleted successfully")
}

// UploadCover stores a cover image and returns its public URL.
// @Summary Upload a blog cover image
// @Tags Blog
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Cover image"
// @Success 201 {object} response.Data[dto.UploadResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/blog/cover [post]
// @Security BearerAuth
func (handler *Handler) UploadCover(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadCover")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UploadCoverRequest{}

	file, fileHeader, err := r.FormFile(formImage)
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadCover(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload cover")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}
