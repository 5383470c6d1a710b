package gallery

import (
	"net/http"
	"villa/infras/otel"
	"villa/internal/domains/gallery/model"
	"villa/internal/domains/gallery/model/dto"
	"villa/internal/domains/gallery/service"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"
	"villa/shared/validator"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	formImage       = "image"
	formTitle       = "title"
	formDescription = "description"
	formCategory    = "category"
	formSortOrder   = "sort_order"
)

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/gallery", handler.GetImages)

	router.Post("/admin/gallery", handler.CreateImage)
	router.Get("/admin/gallery/{id}", handler.GetImageByID)
	router.Patch("/admin/gallery/{id}", handler.UpdateImage)
	router.Delete("/admin/gallery/{id}", handler.DeleteImage)
}

// GetImages lists gallery images in display order.
// @Summary Get gallery images
// @Tags Gallery
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param category query string false "Filter by category"
// @Success 200 {object} response.Data[dto.GetImagesResponse]
// @Failure 500 {object} response.Error
// @Router /api/gallery [get]
func (handler *Handler) GetImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImages")
	defer scope.End()

	queryParams := gDto.QueryParams{SortBy: model.FieldSortOrder, SortDir: gDto.SortDirAsc}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if category := r.URL.Query().Get(model.FieldCategory); category != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, model.FilterByCategory(category))
	}

	images, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery images")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, images)
}

// GetImageByID returns one gallery image.
// @Summary Get a gallery image by ID
// @Tags Gallery
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Data[dto.ImageResponse]
// @Failure 404 {object} response.Error
// @Router /api/admin/gallery/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetImageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	image, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, image)
}

// CreateImage uploads a photo and adds it to the gallery.
// @Summary Add a gallery image
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param category formData string false "Category"
// @Param sort_order formData integer false "Sort order"
// @Param image formData file true "Image"
// @Success 201 {object} response.Data[dto.ImageResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/gallery [post]
// @Security BearerAuth
func (handler *Handler) CreateImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateImage")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.CreateImageRequest{
		Title:     r.FormValue(formTitle),
		Category:  r.FormValue(formCategory),
		SortOrder: shared.ConvertStringToInt(r.FormValue(formSortOrder), 0),
	}

	if description := r.FormValue(formDescription); description != constant.Empty {
		req.Description = &description
	}

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

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create gallery image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery image created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdateImage edits the captions of a gallery image.
// @Summary Update a gallery image
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Image ID"
// @Param request body dto.UpdateImageRequest true "Changes"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/admin/gallery/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateImageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update gallery image")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Gallery image updated successfully")
}

// DeleteImage removes an image. The stored object is deleted in the background.
// @Summary Delete a gallery image
// @Tags Gallery
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /api/admin/gallery/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete gallery image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gallery image deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Gallery image deleted successfully")
}
