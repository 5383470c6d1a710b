package router

import (
	"villa/internal/handlers/auth"
	"villa/internal/handlers/blog"
	"villa/internal/handlers/booking"
	"villa/internal/handlers/campaign"
	"villa/internal/handlers/chat"
	"villa/internal/handlers/contact"
	"villa/internal/handlers/distance"
	"villa/internal/handlers/faq"
	"villa/internal/handlers/gallery"
	"villa/internal/handlers/inventory"
	"villa/internal/handlers/promotion"
	"villa/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	User      user.Handler
	Booking   booking.Handler
	Contact   contact.Handler
	Chat      chat.Handler
	Blog      blog.Handler
	Gallery   gallery.Handler
	Inventory inventory.Handler
	Faq       faq.Handler
	Promotion promotion.Handler
	Campaign  campaign.Handler
	Distance  distance.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes registers every domain on the /api sub-router.
func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Auth.Router(router)
	r.DomainHandlers.User.Router(router)
	r.DomainHandlers.Booking.Router(router)
	r.DomainHandlers.Contact.Router(router)
	r.DomainHandlers.Chat.Router(router)
	r.DomainHandlers.Blog.Router(router)
	r.DomainHandlers.Gallery.Router(router)
	r.DomainHandlers.Inventory.Router(router)
	r.DomainHandlers.Faq.Router(router)
	r.DomainHandlers.Promotion.Router(router)
	r.DomainHandlers.Campaign.Router(router)
	r.DomainHandlers.Distance.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
