package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aadrika123/Mauryavansham-sub002/internal/config"
	"github.com/aadrika123/Mauryavansham-sub002/internal/domain/enums"
	authsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/auth"
	booksvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/bookings"
	dirsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/directory"
	modsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/moderation"
	notifsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/notifications"
	profilesvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/profiles"
	reportsvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/reports"
	userssvc "github.com/aadrika123/Mauryavansham-sub002/internal/services/users"
	"github.com/aadrika123/Mauryavansham-sub002/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService         *authsvc.Service
	ModerationService   *modsvc.Service
	BookingService      *booksvc.Service
	DirectoryService    *dirsvc.Service
	ProfileService      *profilesvc.Service
	UserService         *userssvc.Service
	ReportService       *reportsvc.Service
	NotificationService *notifsvc.Service
	Logger              *zap.Logger
	Config              config.Config
}

// kindMounts maps each content kind to its public URL prefix.
var kindMounts = map[enums.ContentKind]string{
	enums.ContentKindAd:         "/ads",
	enums.ContentKindBlog:       "/blogs",
	enums.ContentKindEvent:      "/events",
	enums.ContentKindDiscussion: "/discussions",
	enums.ContentKindBusiness:   "/businesses",
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	healthHandler := handlers.NewHealthHandler()
	bookingHandler := handlers.NewBookingHandler(deps.BookingService)
	profileHandler := handlers.NewProfileHandler(deps.ProfileService, deps.DirectoryService)
	notificationHandler := handlers.NewNotificationHandler(deps.NotificationService)
	adminHandler := handlers.NewAdminHandler(
		deps.ModerationService,
		deps.BookingService,
		deps.UserService,
		deps.ProfileService,
		deps.ReportService,
	)

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	moderatorMW := RequireRole(enums.RoleAdmin, enums.RoleSuperAdmin)

	r.Get("/healthz", healthHandler.Handle)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.Group(func(r chi.Router) {
			r.Use(authMW)
			r.Post("/logout", authHandler.Logout)
			r.Post("/logout_all", authHandler.LogoutAll)
		})
	})

	for kind, mount := range kindMounts {
		contentHandler := handlers.NewContentHandler(kind, deps.ModerationService, deps.DirectoryService)
		r.Route(mount, func(r chi.Router) {
			r.Get("/", contentHandler.List)
			r.Group(func(r chi.Router) {
				r.Use(authMW)
				r.Post("/", contentHandler.Create)
				r.Get("/mine", contentHandler.Mine)
				r.Get("/{id}", contentHandler.Get)
				r.Put("/{id}", contentHandler.Update)
				r.Post("/{id}/submit", contentHandler.Submit)
				r.Post("/{id}/remove", contentHandler.Remove)
			})
		})
	}

	r.Route("/placements", func(r chi.Router) {
		r.Get("/", bookingHandler.Placements)
		r.Get("/{id}/bookings", bookingHandler.ByPlacement)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Use(authMW)
		r.Post("/", bookingHandler.Create)
		r.Get("/mine", bookingHandler.Mine)
		r.Put("/{id}", bookingHandler.Reschedule)
		r.Post("/{id}/cancel", bookingHandler.Cancel)
	})

	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", profileHandler.Search)
		r.Get("/{id}", profileHandler.Get)
		r.Group(func(r chi.Router) {
			r.Use(authMW)
			r.Get("/me", profileHandler.Me)
			r.Put("/me", profileHandler.Save)
			r.Post("/{id}/deactivate", profileHandler.Deactivate)
			r.Post("/{id}/reactivate", profileHandler.Reactivate)
		})
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", notificationHandler.List)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authMW)
		r.Use(moderatorMW)
		r.Get("/queue", adminHandler.Queue)
		r.Post("/content/{id}/approve", adminHandler.ApproveContent)
		r.Post("/content/{id}/reject", adminHandler.RejectContent)
		r.Post("/content/{id}/remove", adminHandler.RemoveContent)
		r.Post("/bookings/{id}/approve", adminHandler.ApproveBooking)
		r.Post("/bookings/{id}/reject", adminHandler.RejectBooking)
		r.Post("/users/{id}/role", adminHandler.ChangeUserRole)
		r.Post("/users/{id}/deactivate", adminHandler.DeactivateUser)
		r.Post("/users/{id}/reactivate", adminHandler.ReactivateUser)
		r.Post("/profiles/{id}/verify", adminHandler.VerifyProfile)
		r.Get("/exports/profiles", adminHandler.ExportProfiles)
		r.Get("/exports/content", adminHandler.ExportContent)
	})
}
