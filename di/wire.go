//go:build wireinject
// +build wireinject

package di

import (
	"villa/config"
	"villa/infras/bird"
	"villa/infras/jwt"
	"villa/infras/kafka"
	"villa/infras/maps"
	"villa/infras/otel"
	"villa/infras/postgres"
	"villa/infras/redis"
	"villa/infras/s3"
	"villa/infras/sendgrid"
	"villa/infras/websocket"
	"villa/internal/jobs"
	"villa/permissions"
	"villa/shared/cache"
	"villa/shared/event"
	"villa/transport/http"
	"villa/transport/http/middleware"
	"villa/transport/http/router"
	"villa/transport/worker"

	"github.com/google/wire"

	authService "villa/internal/domains/auth/service"
	blogRepository "villa/internal/domains/blog/repository"
	blogService "villa/internal/domains/blog/service"
	bookingRepository "villa/internal/domains/booking/repository"
	bookingService "villa/internal/domains/booking/service"
	campaignService "villa/internal/domains/campaign/service"
	chatRepository "villa/internal/domains/chat/repository"
	chatService "villa/internal/domains/chat/service"
	contactRepository "villa/internal/domains/contact/repository"
	contactService "villa/internal/domains/contact/service"
	distanceService "villa/internal/domains/distance/service"
	faqRepository "villa/internal/domains/faq/repository"
	faqService "villa/internal/domains/faq/service"
	galleryRepository "villa/internal/domains/gallery/repository"
	galleryService "villa/internal/domains/gallery/service"
	inventoryRepository "villa/internal/domains/inventory/repository"
	inventoryService "villa/internal/domains/inventory/service"
	notificationService "villa/internal/domains/notification/service"
	promotionRepository "villa/internal/domains/promotion/repository"
	promotionService "villa/internal/domains/promotion/service"
	sessionRepository "villa/internal/domains/session/repository"
	sessionService "villa/internal/domains/session/service"
	userRepository "villa/internal/domains/user/repository"
	userService "villa/internal/domains/user/service"

	authHandler "villa/internal/handlers/auth"
	blogHandler "villa/internal/handlers/blog"
	bookingHandler "villa/internal/handlers/booking"
	campaignHandler "villa/internal/handlers/campaign"
	chatHandler "villa/internal/handlers/chat"
	contactHandler "villa/internal/handlers/contact"
	distanceHandler "villa/internal/handlers/distance"
	faqHandler "villa/internal/handlers/faq"
	galleryHandler "villa/internal/handlers/gallery"
	inventoryHandler "villa/internal/handlers/inventory"
	promotionHandler "villa/internal/handlers/promotion"
	userHandler "villa/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	sendgrid.New,
	bird.New,
	maps.New,
	websocket.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.NewPublisher,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var sessionDomain = wire.NewSet(
	sessionRepository.New,
	sessionService.New,
)

var bookingDomain = wire.NewSet(
	promotionRepository.New,
	promotionService.New,
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	userDomain,
	sessionDomain,
	bookingDomain,
	authService.New,
	contactRepository.New,
	contactService.New,
	chatRepository.New,
	chatService.New,
	blogRepository.New,
	blogService.New,
	galleryRepository.New,
	galleryService.New,
	inventoryRepository.NewItem,
	inventoryRepository.NewMovement,
	inventoryService.New,
	faqRepository.New,
	faqService.New,
	campaignService.New,
	distanceService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	bookingHandler.New,
	contactHandler.New,
	chatHandler.New,
	blogHandler.New,
	galleryHandler.New,
	inventoryHandler.New,
	faqHandler.New,
	promotionHandler.New,
	campaignHandler.New,
	distanceHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		sendgrid.New,
		bird.New,
		sharedHelpers,
		sessionDomain,
		bookingDomain,
		notificationService.New,
		jobs.New,
		worker.New,
	)

	return &worker.Worker{}
}
