package routes

import (
	"net/http"

	"github.com/territoria/territoria/internal/app"
	"github.com/territoria/territoria/internal/handler"
	"github.com/territoria/territoria/internal/middleware"
)

func SetupRoutes(a *app.App) http.Handler {
	auth := handler.NewAuthHandler(a.AuthService)
	admin := handler.NewAdminHandler(a.AdminService)
	account := handler.NewAccountHandler(a.AvatarService)
	gis := handler.NewGISHandler(a.GeoGateway, a.Cfg.GeoUploadDir)

	mux := http.NewServeMux()

	// Credential and OTP endpoints are rate limited per IP
	rateLimiter := middleware.RateLimitAuth()

	// Public
	mux.HandleFunc("POST /api/register", auth.Register)
	mux.HandleFunc("POST /api/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /api/forgot-password", rateLimiter(auth.ForgotPassword))
	mux.HandleFunc("POST /api/reset-password", rateLimiter(auth.ResetPassword))

	// Account
	mux.HandleFunc("GET /api/account/me", middleware.RequireAuth(account.Me))
	mux.HandleFunc("POST /api/account/avatar", middleware.RequireAuth(account.UploadAvatar))
	mux.HandleFunc("DELETE /api/account/avatar", middleware.RequireAuth(account.DeleteAvatar))

	// Admin moderation
	mux.HandleFunc("GET /api/users", middleware.RequireAdmin(admin.Users))
	mux.HandleFunc("PATCH /api/users/{userId}/verify", middleware.RequireAdmin(admin.VerifyUser))
	mux.HandleFunc("DELETE /api/users/{userId}", middleware.RequireAdmin(admin.DeleteUser))

	// GIS
	mux.HandleFunc("POST /api/gis", middleware.RequireAuth(gis.BulkGeocode))
	mux.HandleFunc("POST /api/gis/process-rows", middleware.RequireAuth(gis.ProcessRows))
	mux.HandleFunc("POST /api/reverse-geocode", middleware.RequireAuth(gis.ReversePoint))

	return middleware.Chain(mux,
		middleware.RequestLogging,
		middleware.CORS(a.Cfg.CORSOrigins),
		middleware.AuthMiddleware(a.AuthService, a.UserRepository),
	)
}
