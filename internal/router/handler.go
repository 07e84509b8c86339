package router

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"neocommerce.in/storefront/pkg/cart"
	"neocommerce.in/storefront/pkg/catalog"
	"neocommerce.in/storefront/pkg/global"
	"neocommerce.in/storefront/pkg/models"
	"neocommerce.in/storefront/pkg/notify"
	"neocommerce.in/storefront/pkg/search"
	"neocommerce.in/storefront/pkg/session"
	"neocommerce.in/storefront/pkg/signup"
	"neocommerce.in/storefront/pkg/storage"
	"neocommerce.in/storefront/pkg/view"
)

type Handler struct {
	cfg      *global.Config
	logger   *zap.Logger
	storage  storage.Store
	catalog  *catalog.Catalog
	accounts signup.AccountCreator
	health   map[string]Pinger
}

func NewHandler(deps Dependencies) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		cfg:      deps.Config,
		logger:   logger,
		storage:  deps.Storage,
		catalog:  deps.Catalog,
		accounts: deps.Accounts,
		health:   deps.Health,
	}
}

// respond writes the envelope along with any toasts raised while handling the request.
func respond(c *gin.Context, code int, resp global.APIResponse) {
	if col := collector(c); col != nil {
		resp = resp.WithNotifications(col.Drain())
	}
	c.JSON(code, resp)
}

func (h *Handler) notifier(c *gin.Context) notify.Notifier {
	var next notify.Notifier = notify.Nop
	if col := collector(c); col != nil {
		next = col
	}
	return notify.Logged(h.logger.With(zap.String("client_id", c.GetString(clientIDKey))), next)
}

func (h *Handler) cartFor(c *gin.Context) (*cart.Store, error) {
	return cart.New(c.Request.Context(), clientStore(c), h.catalog, h.notifier(c), cart.Options{
		CheckoutDelay: h.cfg.CheckoutDelay,
		Logger:        h.logger,
	})
}

func (h *Handler) wizardFor(c *gin.Context) (*signup.Wizard, error) {
	return signup.New(c.Request.Context(), clientStore(c), h.accounts, h.notifier(c), signup.Options{
		Logger: h.logger,
	})
}

// sessionFor loads the client's session. Expiry clears the client's cart as a side effect.
func (h *Handler) sessionFor(c *gin.Context, store *cart.Store) (*session.Manager, error) {
	m := session.New(clientStore(c), store, h.notifier(c), session.Options{
		TTL:    h.cfg.SessionTTL,
		Logger: h.logger,
	})
	if err := m.Load(c.Request.Context()); err != nil {
		return nil, err
	}
	return m, nil
}

func (h *Handler) internalError(c *gin.Context, message string, err error) {
	h.logger.Error(message, zap.Error(err), zap.String("path", c.FullPath()))
	respond(c, http.StatusInternalServerError, global.ErrorResponse(message, nil))
}

func (h *Handler) HealthCheck(c *gin.Context) {
	status := map[string]string{"status": "OK"}
	for name, p := range h.health {
		if err := p.Ping(c.Request.Context()); err != nil {
			h.logger.Warn("Health check failed", zap.String("component", name), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, global.ErrorResponse(name+" connection failed", nil))
			return
		}
		status[name] = "Connected"
	}
	c.JSON(http.StatusOK, global.SuccessResponse(status))
}

// engineFromQuery builds a search pass from the q, category and sort query parameters.
func (h *Handler) engineFromQuery(c *gin.Context) (*search.Engine, []global.ValidationError) {
	e := search.NewEngine(h.catalog.Products())
	e.SetSearchTerm(c.Query("q"))

	var errs []global.ValidationError
	if err := e.SetCategoryFilter(c.Query("category")); err != nil {
		errs = append(errs, global.ValidationError{Field: "category", Message: err.Error(), Code: "invalid_value"})
	}
	mode, err := search.ParseSortMode(c.Query("sort"))
	if err == nil {
		err = e.SetSort(mode)
	}
	if err != nil {
		errs = append(errs, global.ValidationError{Field: "sort", Message: err.Error(), Code: "invalid_value"})
	}
	return e, errs
}

func (h *Handler) ListProducts(c *gin.Context) {
	e, errs := h.engineFromQuery(c)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid filter", errs))
		return
	}
	result := e.Apply()
	c.Header("X-Total-Count", strconv.Itoa(result.Count))
	c.JSON(http.StatusOK, global.SuccessResponse(result))
}

func (h *Handler) GetSuggestions(c *gin.Context) {
	e := search.NewEngine(h.catalog.Products())
	suggestions := e.Suggestions(c.Query("q"))
	if suggestions == nil {
		suggestions = []search.Suggestion{}
	}
	c.JSON(http.StatusOK, global.SuccessResponse(suggestions))
}

func (h *Handler) GetCategories(c *gin.Context) {
	type category struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
	out := []category{{Value: search.All, Label: "All"}}
	for _, cat := range models.Categories() {
		out = append(out, category{Value: string(cat), Label: cat.Label()})
	}
	c.JSON(http.StatusOK, global.SuccessResponse(out))
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	p, found := h.catalog.Lookup(id)
	if !found {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
			{Field: "id", Message: "No product exists with this id", Code: "not_found"},
		}))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(p))
}

func productIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		respond(c, http.StatusBadRequest, global.ErrorResponse("Invalid product id", []global.ValidationError{
			{Field: "id", Message: "Product id must be a positive integer", Code: "invalid_format"},
		}))
		return 0, false
	}
	return id, true
}

func (h *Handler) GetCart(c *gin.Context) {
	store, err := h.cartFor(c)
	if err != nil {
		h.internalError(c, "Failed to load cart", err)
		return
	}
	respond(c, http.StatusOK, global.SuccessResponse(store.Summary()))
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, global.ErrorResponse("Invalid request body", []global.ValidationError{
			{Field: "product_id", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	store, err := h.cartFor(c)
	if err != nil {
		h.internalError(c, "Failed to load cart", err)
		return
	}
	if _, err := store.Add(c.Request.Context(), req.ProductID); err != nil {
		h.internalError(c, "Failed to add to cart", err)
		return
	}
	respond(c, http.StatusOK, global.SuccessResponse(store.Summary()))
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, global.ErrorResponse("Invalid request body", []global.ValidationError{
			{Field: "quantity", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	store, err := h.cartFor(c)
	if err != nil {
		h.internalError(c, "Failed to load cart", err)
		return
	}
	if _, err := store.SetQuantity(c.Request.Context(), id, *req.Quantity); err != nil {
		h.internalError(c, "Failed to update cart", err)
		return
	}
	respond(c, http.StatusOK, global.SuccessResponse(store.Summary()))
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}
	store, err := h.cartFor(c)
	if err != nil {
		h.internalError(c, "Failed to load cart", err)
		return
	}
	if _, err := store.Remove(c.Request.Context(), id); err != nil {
		h.internalError(c, "Failed to update cart", err)
		return
	}
	respond(c, http.StatusOK, global.SuccessResponse(store.Summary()))
}

// queryConfirmer answers a confirmation prompt from a boolean query parameter and remembers
// whether it was asked.
type queryConfirmer struct {
	answer bool
	asked  bool
	prompt string
}

func confirmFromQuery(c *gin.Context, param string) *queryConfirmer {
	answer, _ := strconv.ParseBool(c.Query(param))
	return &queryConfirmer{answer: answer}
}

func (q *queryConfirmer) Confirm(prompt string) bool {
	q.asked = true
	q.prompt = prompt
	return q.answer
}

func (h *Handler) ClearCart(c *gin.Context) {
	store, err := h.cartFor(c)
	if err != nil {
		h.internalError(c, "Failed to load cart", err)
		return
	}
	confirm := confirmFromQuery(c, "confirm")
	if _, err := store.Clear(c.Request.Context(), confirm); err != nil {
		h.internalError(c, "Failed to clear cart", err)
		return
	}
	if confirm.asked && !confirm.answer {
		respond(c, http.StatusConflict, global.ErrorResponse(confirm.prompt, []global.ValidationError{
			{Field: "confirm", Message: "Pass confirm=true to clear the cart", Code: "confirmation_required"},
		}))
		return
	}
	respond(c, http.StatusOK, global.SuccessResponse(store.Summary()))
}

func (h *Handler) Checkout(c *gin.Context) {
	store, err := h.cartFor(c)
	if err != nil {
		h.internalError(c, "Failed to load cart", err)
		return
	}
	receipt, err := store.Checkout(c.Request.Context())
	switch {
	case errors.Is(err, cart.ErrCartEmpty):
		respond(c, http.StatusBadRequest, global.ErrorResponse("Cart is empty", []global.ValidationError{
			{Field: "cart", Message: "Add some products before checkout.", Code: "empty"},
		}))
		return
	case errors.Is(err, context.Canceled):
		h.logger.Info("Checkout abandoned", zap.String("client_id", c.GetString(clientIDKey)))
		return
	case err != nil:
		h.internalError(c, "Checkout failed", err)
		return
	}
	respond(c, http.StatusOK, global.SuccessResponse(receipt))
}

func signupErrors(errs signup.ValidationErrors) []global.ValidationError {
	out := make([]global.ValidationError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, global.ValidationError{Field: fe.Field, Message: fe.Message, Code: fe.Code})
	}
	return out
}

// signupResult maps a wizard error onto the response, re-rendering the current step.
func (h *Handler) signupResult(c *gin.Context, w *signup.Wizard, err error, okCode int) {
	var verrs signup.ValidationErrors
	switch {
	case err == nil:
		respond(c, okCode, global.SuccessResponse(view.NewSignupView(w, nil)))
	case errors.As(err, &verrs):
		resp := global.ErrorResponse("Validation failed", signupErrors(verrs))
		resp.Data = view.NewSignupView(w, verrs)
		respond(c, http.StatusBadRequest, resp)
	case errors.Is(err, signup.ErrInvalidTransition):
		respond(c, http.StatusConflict, global.ErrorResponse("That step is not available from step "+w.Step().String(), nil))
	case errors.Is(err, signup.ErrSignupFailed):
		respond(c, http.StatusServiceUnavailable, global.ErrorResponse(signup.FailureMessage, nil))
	default:
		h.internalError(c, "Signup failed", err)
	}
}

func (h *Handler) GetSignup(c *gin.Context) {
	w, err := h.wizardFor(c)
	if err != nil {
		h.internalError(c, "Failed to load signup", err)
		return
	}
	h.signupResult(c, w, nil, http.StatusOK)
}

func (h *Handler) SubmitIdentity(c *gin.Context) {
	var req models.IdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, global.ErrorResponse("Invalid request body", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}
	w, err := h.wizardFor(c)
	if err != nil {
		h.internalError(c, "Failed to load signup", err)
		return
	}
	h.signupResult(c, w, w.Identity(c.Request.Context(), req), http.StatusOK)
}

func (h *Handler) SubmitProfile(c *gin.Context) {
	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, global.ErrorResponse("Invalid request body", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}
	w, err := h.wizardFor(c)
	if err != nil {
		h.internalError(c, "Failed to load signup", err)
		return
	}
	h.signupResult(c, w, w.Profile(c.Request.Context(), req), http.StatusOK)
}

func (h *Handler) SignupBack(c *gin.Context) {
	w, err := h.wizardFor(c)
	if err != nil {
		h.internalError(c, "Failed to load signup", err)
		return
	}
	h.signupResult(c, w, w.Back(c.Request.Context()), http.StatusOK)
}

func (h *Handler) SubmitSignup(c *gin.Context) {
	var req models.ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, global.ErrorResponse("Invalid request body", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}
	w, err := h.wizardFor(c)
	if err != nil {
		h.internalError(c, "Failed to load signup", err)
		return
	}
	_, err = w.Submit(c.Request.Context(), req)
	if errors.Is(err, context.Canceled) {
		return
	}
	h.signupResult(c, w, err, http.StatusCreated)
}

func (h *Handler) CheckPasswordStrength(c *gin.Context) {
	var req models.PasswordStrengthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body", []global.ValidationError{
			{Field: "password", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(signup.PasswordStrength(req.Password)))
}

type sessionPayload struct {
	User   *models.UserSession `json:"user"`
	Header view.HeaderView     `json:"header"`
}

func (h *Handler) loadSession(c *gin.Context) (*session.Manager, *cart.Store, bool) {
	store, err := h.cartFor(c)
	if err != nil {
		h.internalError(c, "Failed to load cart", err)
		return nil, nil, false
	}
	m, err := h.sessionFor(c, store)
	if err != nil {
		h.internalError(c, "Failed to load session", err)
		return nil, nil, false
	}
	return m, store, true
}

func newSessionPayload(m *session.Manager, store *cart.Store) sessionPayload {
	user := m.Current()
	if user != nil {
		user.PasswordHash = ""
	}
	return sessionPayload{User: user, Header: view.NewHeaderView(user, store.Count())}
}

func (h *Handler) GetSession(c *gin.Context) {
	m, store, ok := h.loadSession(c)
	if !ok {
		return
	}
	respond(c, http.StatusOK, global.SuccessResponse(newSessionPayload(m, store)))
}

func (h *Handler) Logout(c *gin.Context) {
	m, store, ok := h.loadSession(c)
	if !ok {
		return
	}
	if !m.IsLoggedIn() {
		respond(c, http.StatusOK, global.SuccessResponse(newSessionPayload(m, store)))
		return
	}
	// A live session only produced the welcome toast, which this response supersedes.
	if col := collector(c); col != nil {
		col.Drain()
	}
	if err := m.Logout(c.Request.Context(), confirmFromQuery(c, "clear_cart")); err != nil {
		h.internalError(c, "Failed to log out", err)
		return
	}
	respond(c, http.StatusOK, global.SuccessResponse(newSessionPayload(m, store)))
}

func (h *Handler) TouchActivity(c *gin.Context) {
	m, store, ok := h.loadSession(c)
	if !ok {
		return
	}
	if err := m.TouchActivity(c.Request.Context()); err != nil {
		h.internalError(c, "Failed to record activity", err)
		return
	}
	respond(c, http.StatusOK, global.SuccessResponse(newSessionPayload(m, store)))
}

func (h *Handler) CartFragment(c *gin.Context) {
	store, err := h.cartFor(c)
	if err != nil {
		h.internalError(c, "Failed to load cart", err)
		return
	}
	c.HTML(http.StatusOK, view.CartTemplate, view.NewCartView(store.Summary()))
}

func (h *Handler) ProductsFragment(c *gin.Context) {
	e, errs := h.engineFromQuery(c)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid filter", errs))
		return
	}
	v := search.View{Result: e.Apply(), Category: e.CategoryFilter(), Sort: e.Sort()}
	if c.Query("suggest") == "true" {
		v.Suggestions = e.Suggestions(e.SearchTerm())
	}
	c.HTML(http.StatusOK, view.ProductsTemplate, view.NewResultsView(v))
}

func (h *Handler) HeaderFragment(c *gin.Context) {
	m, store, ok := h.loadSession(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, view.HeaderTemplate, view.NewHeaderView(m.Current(), store.Count()))
}

func (h *Handler) SignupFragment(c *gin.Context) {
	w, err := h.wizardFor(c)
	if err != nil {
		h.internalError(c, "Failed to load signup", err)
		return
	}
	c.HTML(http.StatusOK, view.SignupTemplate, view.NewSignupView(w, nil))
}
