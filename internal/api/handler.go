package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/opentocoder/storefront/internal/models"
	"github.com/opentocoder/storefront/internal/ratelimit"
	"github.com/opentocoder/storefront/internal/service"
	"github.com/opentocoder/storefront/internal/util"
)

// Handler contains HTTP handlers
type Handler struct {
	orderService   *service.OrderService
	cartService    *service.CartService
	catalogService *service.CatalogService
	authService    *service.AuthService
	loginLimiter   *ratelimit.LoginLimiter
	jwtSecret      string
	logger         *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	orderService *service.OrderService,
	cartService *service.CartService,
	catalogService *service.CatalogService,
	authService *service.AuthService,
	loginLimiter *ratelimit.LoginLimiter,
	jwtSecret string,
) *Handler {
	return &Handler{
		orderService:   orderService,
		cartService:    cartService,
		catalogService: catalogService,
		authService:    authService,
		loginLimiter:   loginLimiter,
		jwtSecret:      jwtSecret,
		logger:         util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/register", h.register)
		v1.POST("/auth/login", h.login)

		v1.GET("/products", h.listProducts)
		v1.GET("/products/search", h.searchProducts)
		v1.GET("/products/:id", h.getProduct)
		v1.GET("/categories", h.listCategories)

		authed := v1.Group("")
		authed.Use(authMiddleware(h.jwtSecret))
		{
			authed.GET("/cart", h.getCart)
			authed.POST("/cart", h.addToCart)
			authed.PUT("/cart/:product_id", h.updateCartItem)
			authed.DELETE("/cart/:product_id", h.removeFromCart)

			authed.POST("/orders", h.createOrder)
			authed.GET("/orders", h.listOrders)
			authed.GET("/orders/:id", h.getOrder)
			authed.PUT("/orders/:id/cancel", h.cancelOrder)
		}
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().Unix()})
}

func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready", "time": time.Now().Unix()})
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	addr := c.ClientIP()
	if allowed, retryAfter := h.loginLimiter.Allow(c.Request.Context(), addr); !allowed {
		c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, try again later"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.loginLimiter.Reset(c.Request.Context(), addr)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *Handler) listProducts(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 12)
	if page < 1 {
		page = 1
	}
	if limit > 100 {
		limit = 100
	}

	if category := c.Query("category"); category != "" {
		products, total, err := h.catalogService.ListByCategory(c.Request.Context(), category, page, limit)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, productPage(products, total, page, limit))
		return
	}

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), page, limit,
		c.Query("sort_by"), c.Query("sort_order"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productPage(products, total, page, limit))
}

func (h *Handler) searchProducts(c *gin.Context) {
	limit := intQuery(c, "limit", 20)
	if limit > 100 {
		limit = 100
	}

	products, err := h.catalogService.SearchProducts(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
}

func (h *Handler) getProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) getCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

type addToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

func (h *Handler) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), currentUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateCartItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), currentUserID(c), productID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

func (h *Handler) removeFromCart(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), currentUserID(c), productID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

type createOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

func (h *Handler) createOrder(c *gin.Context) {
	// Body is optional; shipping_address is accepted but not used here
	var req createOrderRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.orderService.PlaceOrder(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": result})
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

func (h *Handler) getOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	result, err := h.orderService.GetOrder(c.Request.Context(), orderID, currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": result})
}

func (h *Handler) cancelOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), orderID, currentUserID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully"})
}

// respondError maps domain errors to status codes. Validation-class errors
// carry their own user-safe message; anything unrecognized is a storage
// failure, logged in full and returned opaquely.
func (h *Handler) respondError(c *gin.Context, err error) {
	var unavailable *models.ProductUnavailableError
	var insufficient *models.InsufficientStockError

	switch {
	case errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrInvalidState),
		errors.As(err, &unavailable),
		errors.As(err, &insufficient),
		errors.Is(err, service.ErrProductInactive),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrNotEnoughStock),
		errors.Is(err, service.ErrUsernameTooShort),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func productPage(products []models.Product, total, page, limit int) gin.H {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return gin.H{
		"products":    products,
		"total":       total,
		"page":        page,
		"limit":       limit,
		"total_pages": totalPages,
	}
}

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
