package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"neocommerce.in/storefront/pkg/catalog"
	"neocommerce.in/storefront/pkg/global"
	"neocommerce.in/storefront/pkg/signup"
	"neocommerce.in/storefront/pkg/storage"
	"neocommerce.in/storefront/pkg/view"
)

// Pinger is a backing service checked by the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Dependencies struct {
	Config   *global.Config
	Logger   *zap.Logger
	Storage  storage.Store
	Catalog  *catalog.Catalog
	Renderer *view.Renderer
	Accounts signup.AccountCreator
	// Health maps a component name to its check. Optional.
	Health map[string]Pinger
}

func NewEngine(deps Dependencies) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.Default()
	router.HTMLRender = deps.Renderer

	router.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", ClientIDHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	InitializeRoutes(router, NewHandler(deps))
	return router
}

func InitializeRoutes(router *gin.Engine, h *Handler) {
	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		products := api.Group("/products")
		{
			products.GET("", h.ListProducts)
			products.GET("/suggestions", h.GetSuggestions)
			products.GET("/categories", h.GetCategories)
			products.GET("/:id", h.GetProduct)
		}

		client := api.Group("")
		client.Use(ClientMiddleware(h.storage))
		{
			cart := client.Group("/cart")
			{
				cart.GET("", h.GetCart)
				cart.POST("/items", h.AddToCart)
				cart.PUT("/items/:id", h.UpdateCartItem)
				cart.DELETE("/items/:id", h.RemoveFromCart)
				cart.DELETE("", h.ClearCart)
				cart.POST("/checkout", h.Checkout)
			}

			wizard := client.Group("/signup")
			{
				wizard.GET("", h.GetSignup)
				wizard.POST("/identity", h.SubmitIdentity)
				wizard.POST("/profile", h.SubmitProfile)
				wizard.POST("/back", h.SignupBack)
				wizard.POST("/submit", h.SubmitSignup)
			}

			session := client.Group("/session")
			{
				session.GET("", h.GetSession)
				session.POST("/logout", h.Logout)
				session.POST("/activity", h.TouchActivity)
			}
		}

		api.POST("/signup/password-strength", h.CheckPasswordStrength)
	}

	fragments := router.Group("/fragments")
	fragments.Use(ClientMiddleware(h.storage))
	{
		fragments.GET("/cart", h.CartFragment)
		fragments.GET("/products", h.ProductsFragment)
		fragments.GET("/header", h.HeaderFragment)
		fragments.GET("/signup", h.SignupFragment)
	}
}
