package chat

import (
	"net/http"
	"villa/infras/otel"
	"villa/infras/websocket"
	"villa/internal/domains/chat/model/dto"
	"villa/internal/domains/chat/service"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/validator"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Chat
	hub     websocket.Hub
	otel    otel.Otel
}

func New(service service.Chat, hub websocket.Hub, otel otel.Otel) Handler {
	return Handler{
		service: service,
		hub:     hub,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/chat/messages", handler.GetMessages)
	router.Post("/chat/messages", handler.SendMessage)
	router.Get("/chat/ws", handler.Connect)

	router.Get("/admin/chat/conversations", handler.GetConversations)
	router.Get("/admin/chat/{userId}", handler.GetThread)
	router.Post("/admin/chat/{userId}", handler.Reply)
}

// GetMessages returns the caller's conversation with the villa.
// @Summary Get my chat messages
// @Tags Chat
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetMessagesResponse]
// @Failure 401 {object} response.Error
// @Router /api/chat/messages [get]
// @Security BearerAuth
func (handler *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMessages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	messages, err := handler.service.GuestMessages(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get chat messages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, messages)
}

// SendMessage posts a guest message.
// @Summary Send a chat message
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} response.Data[dto.MessageResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /api/chat/messages [post]
// @Security BearerAuth
func (handler *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendMessage")
	defer scope.End()

	req := dto.SendMessageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.GuestSend(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to send chat message")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// Connect upgrades to a websocket that receives new chat messages.
// @Summary Chat websocket
// @Tags Chat
// @Success 101
// @Failure 401 {object} response.Error
// @Router /api/chat/ws [get]
// @Security BearerAuth
func (handler *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Connect")

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	scope.SetAttribute("user_id", userID)
	scope.End()

	// blocks for the lifetime of the socket
	if err := handler.hub.Serve(w, r, userID, role == constant.RoleAdmin); err != nil {
		log.Error().Err(err).Msg("failed to serve chat websocket")
	}
}

// GetConversations lists one entry per guest with the latest message.
// @Summary Get chat conversations
// @Tags Chat
// @Produce json
// @Success 200 {object} response.Data[[]dto.ConversationResponse]
// @Failure 500 {object} response.Error
// @Router /api/admin/chat/conversations [get]
// @Security BearerAuth
func (handler *Handler) GetConversations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConversations")
	defer scope.End()

	conversations, err := handler.service.Conversations(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get chat conversations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, conversations)
}

// GetThread returns a guest's conversation and marks the guest's messages read.
// @Summary Get a chat thread
// @Tags Chat
// @Produce json
// @Param userId path string true "Guest user ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetMessagesResponse]
// @Failure 500 {object} response.Error
// @Router /api/admin/chat/{userId} [get]
// @Security BearerAuth
func (handler *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetThread")
	defer scope.End()

	userID := chi.URLParam(r, constant.RequestParamUserID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	messages, err := handler.service.AdminThread(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get chat thread")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, messages)
}

// Reply posts an admin message to a guest.
// @Summary Reply to a guest
// @Tags Chat
// @Accept json
// @Produce json
// @Param userId path string true "Guest user ID"
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} response.Data[dto.MessageResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/chat/{userId} [post]
// @Security BearerAuth
func (handler *Handler) Reply(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reply")
	defer scope.End()

	userID := chi.URLParam(r, constant.RequestParamUserID)

	req := dto.SendMessageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AdminSend(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reply to chat")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}
