package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"safealert.backend/internal/interfaces/http/handlers"
	"safealert.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler             *handlers.AuthHandler
	otpHandler              *handlers.OTPHandler
	userHandler             *handlers.UserHandler
	packageHandler          *handlers.PackageHandler
	subscriptionHandler     *handlers.SubscriptionHandler
	paymentHandler          *handlers.PaymentHandler
	safeZoneHandler         *handlers.SafeZoneHandler
	emergencyContactHandler *handlers.EmergencyContactHandler
	alertPostHandler        *handlers.AlertPostHandler
	authMiddleware          gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/forgot-password", d.authHandler.ForgotPassword)
			auth.POST("/reset-password", d.authHandler.ResetPassword)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
		}

		// OTP routes (public, correlated by bearer token)
		otp := v1.Group("/otp")
		{
			otp.POST("/resend", d.otpHandler.Resend)
			otp.POST("/verify", d.otpHandler.Verify)
		}

		// User routes (protected)
		users := v1.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("/me", d.userHandler.GetMe)
			users.GET("/me/devices", d.userHandler.LoginDevices)
			users.GET("/:id", d.userHandler.GetByID)
			users.PUT("/:id", d.userHandler.Update)
			users.DELETE("/:id", d.userHandler.Delete)
		}

		// Package routes (public read)
		packages := v1.Group("/packages")
		{
			packages.GET("", d.packageHandler.List)
			packages.GET("/:id", d.packageHandler.GetByID)
		}

		// Subscription routes (protected)
		subscriptions := v1.Group("/subscriptions")
		subscriptions.Use(d.authMiddleware)
		{
			subscriptions.POST("", d.subscriptionHandler.Create)
			subscriptions.GET("", d.subscriptionHandler.List)
			subscriptions.GET("/:id", d.subscriptionHandler.GetByID)
			subscriptions.PUT("/:id", d.subscriptionHandler.Update)
			subscriptions.DELETE("/:id", d.subscriptionHandler.Delete)
		}

		// Payment routes. The confirm endpoint is the checkout return URL
		// and must stay public.
		v1.GET("/payments/confirm-payment", d.paymentHandler.ConfirmPayment)

		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.POST("/checkout", d.paymentHandler.Checkout)
			payments.GET("", d.paymentHandler.List)
			payments.GET("/:id", d.paymentHandler.GetByID)
		}

		// Safe zone routes (protected)
		safeZones := v1.Group("/safe-zones")
		safeZones.Use(d.authMiddleware)
		{
			safeZones.POST("", d.safeZoneHandler.Create)
			safeZones.GET("", d.safeZoneHandler.List)
			safeZones.GET("/:id", d.safeZoneHandler.GetByID)
			safeZones.PUT("/:id", d.safeZoneHandler.Update)
			safeZones.DELETE("/:id", d.safeZoneHandler.Delete)
		}

		// Emergency contact routes (protected)
		contacts := v1.Group("/emergency-contacts")
		contacts.Use(d.authMiddleware)
		{
			contacts.POST("", d.emergencyContactHandler.Create)
			contacts.GET("", d.emergencyContactHandler.List)
			contacts.GET("/:id", d.emergencyContactHandler.GetByID)
			contacts.PUT("/:id", d.emergencyContactHandler.Update)
			contacts.DELETE("/:id", d.emergencyContactHandler.Delete)
		}

		// Alert post routes (protected)
		alerts := v1.Group("/alert-posts")
		alerts.Use(d.authMiddleware)
		{
			alerts.POST("", d.alertPostHandler.Create)
			alerts.GET("", d.alertPostHandler.List)
			alerts.GET("/:id", d.alertPostHandler.GetByID)
			alerts.PUT("/:id", d.alertPostHandler.Update)
			alerts.DELETE("/:id", d.alertPostHandler.Delete)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/users", d.userHandler.List)

			admin.POST("/packages", d.packageHandler.Create)
			admin.PUT("/packages/:id", d.packageHandler.Update)
			admin.DELETE("/packages/:id", d.packageHandler.Delete)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
