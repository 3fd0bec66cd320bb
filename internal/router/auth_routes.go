package router

import (
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/handler"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupAuthRoutes mounts the account endpoints at the root. Only logout
// needs a token.
func SetupAuthRoutes(r chi.Router, h *handler.AuthHandler, deps Deps) {
	r.Post("/register", h.Register)
	r.Post("/resend-otp", h.ResendOTP)
	r.Post("/send-otp", h.SendOTP)
	r.Post("/verify-otp", h.VerifyOTP)
	r.Post("/login", h.Login)
	r.Post("/refresh-token", h.Refresh)

	r.Group(func(authRouter chi.Router) {
		authRouter.Use(middleware.JWTAuth(deps.Tokens, deps.Denylist, deps.Logger))
		authRouter.Post("/logout", h.Logout)
	})
}
