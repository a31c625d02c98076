package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/princeofverry/backend-tugas-akhir/docs"
	"github.com/princeofverry/backend-tugas-akhir/internal/auth"
	"github.com/princeofverry/backend-tugas-akhir/internal/cart"
	"github.com/princeofverry/backend-tugas-akhir/internal/category"
	"github.com/princeofverry/backend-tugas-akhir/internal/config"
	"github.com/princeofverry/backend-tugas-akhir/internal/httpx"
	"github.com/princeofverry/backend-tugas-akhir/internal/order"
	"github.com/princeofverry/backend-tugas-akhir/internal/postgres"
	"github.com/princeofverry/backend-tugas-akhir/internal/product"
	"github.com/princeofverry/backend-tugas-akhir/internal/user"
)

// @title        Toko Backend API
// @version      1.0
// @description  E-commerce backend: auth, catalog, carts and transactional checkout.
// @BasePath     /
func main() {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	if err := postgres.Migrate(cfg.PostgresDSN); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}

	pool, err := postgres.Connect(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.WithError(err).Fatal("postgres connection failed")
	}
	defer pool.Close()

	tokens := auth.NewTokens(cfg.JWTSecret)
	users := user.NewPGRepo(pool)
	products := product.NewPGRepo(pool)
	categories := category.NewPGRepo(pool)
	carts := cart.NewPGRepo(pool)
	orders := order.NewService(order.NewPGStore(pool))

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(log))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authn := auth.Authenticate(tokens)
	sellerOnly := auth.RequireRole(auth.RoleSeller)
	sellerOrAdmin := auth.RequireRole(auth.RoleSeller, auth.RoleAdmin)

	ag := r.Group("/auth")
	{
		ag.POST("/register", user.RegisterHandler(users))
		ag.POST("/login", user.LoginHandler(users, tokens))
		ag.GET("/users", user.ListHandler(users))
	}

	pg := r.Group("/products")
	{
		pg.GET("", product.ListHandler(products))
		pg.GET("/deleted", authn, sellerOnly, product.ListDeletedHandler(products))
		pg.GET("/:id", product.GetHandler(products))
		pg.POST("", authn, sellerOnly, product.CreateHandler(products))
		pg.PUT("/restore/:id", authn, sellerOnly, product.RestoreHandler(products))
		pg.PUT("/:id", authn, sellerOnly, product.UpdateHandler(products))
		pg.DELETE("/permanent/:id", authn, sellerOnly, product.HardDeleteHandler(products))
		pg.DELETE("/:id", authn, sellerOnly, product.SoftDeleteHandler(products))
	}

	r.GET("/categories", category.ListHandler(categories))

	cg := r.Group("/carts", authn)
	{
		cg.GET("", cart.ListHandler(carts))
		cg.POST("", cart.AddHandler(carts))
		cg.DELETE("/:id", cart.RemoveHandler(carts))
	}

	og := r.Group("/orders", authn)
	{
		og.POST("", order.CheckoutHandler(orders))
		og.GET("", order.ListHandler(orders))
		og.GET("/detail", order.DetailHandler(orders))
		og.GET("/all", sellerOrAdmin, order.AllHandler(orders))
		og.GET("/:id", order.GetHandler(orders))
		og.PATCH("/:id/status", sellerOrAdmin, order.UpdateStatusHandler(orders))
	}

	log.WithField("addr", cfg.HTTPAddr).Info("api listening")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
