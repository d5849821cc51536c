package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/auth"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

const testBaseURL = "http://localhost:3000"

type testEnv struct {
	app         *fiber.App
	authService *services.AuthService
	productRepo repositories.ProductRepository
	uploadDir   string
}

// setupApp builds a Fiber app backed by an in-memory SQLite database with the
// full route surface wired the same way the server binary wires it.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	issuer := auth.NewTokenIssuer("test_jwt_secret", 24*time.Hour)
	authService := services.NewAuthService(userRepo, issuer, auth.DefaultPolicy())
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, nil)

	uploadDir := t.TempDir()
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, uploadDir, testBaseURL)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()
	api := app.Group("/api")
	authHandler.RegisterRoutes(api, middleware.CheckExistingSession(authService))
	productHandler.RegisterRoutes(api, middleware.AuthRequired(authService))
	userGuard := middleware.RequireExistingUser(userRepo)
	cartHandler.RegisterRoutes(api, userGuard)
	orderHandler.RegisterRoutes(api, userGuard)

	return &testEnv{
		app:         app,
		authService: authService,
		productRepo: productRepo,
		uploadDir:   uploadDir,
	}
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func decodeErrors(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var body struct {
		Errors map[string]string `json:"errors"`
	}
	decodeBody(t, resp, &body)
	return body.Errors
}

// registerUser signs a user up through the API and returns their id and token.
func registerUser(t *testing.T, env *testEnv, username, email string) (string, string) {
	t.Helper()
	req := jsonRequest(http.MethodPost, "/api/users/register", map[string]string{
		"username": username,
		"email":    email,
		"password": "Str0ng!Pass",
	})
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	token := body["token"]
	assert.NotEmpty(t, token)

	user, err := env.authService.ResolveUser(token)
	assert.NoError(t, err)
	return user.ID, token
}

func seedProduct(t *testing.T, env *testEnv, name string, price float64) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Description: "a perfectly ordinary test product",
		Price:       price,
		Image:       testBaseURL + "/images/" + name + ".png",
		Category:    "test",
	}
	assert.NoError(t, env.productRepo.Create(product))
	return product
}

func TestSignupAndLogin(t *testing.T) {
	env := setupApp(t)

	req := jsonRequest(http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice",
		"email":    "Alice@Example.com",
		"password": "Str0ng!Pass",
	})
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var cookieName string
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SignupCookie {
			cookieName = c.Name
			assert.True(t, c.HttpOnly)
			assert.NotEmpty(t, c.Value)
		}
	}
	assert.Equal(t, middleware.SignupCookie, cookieName)

	var signupBody map[string]string
	decodeBody(t, resp, &signupBody)
	assert.Equal(t, "alice", signupBody["username"])
	user, err := env.authService.ResolveUser(signupBody["token"])
	assert.NoError(t, err)
	// Email is stored lowercased regardless of submitted casing.
	assert.Equal(t, "alice@example.com", user.Email)

	req = jsonRequest(http.MethodPost, "/api/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "Str0ng!Pass",
	})
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var hasLoginCookie bool
	for _, c := range resp.Cookies() {
		if c.Name == middleware.LoginCookie && c.Value != "" {
			hasLoginCookie = true
		}
	}
	assert.True(t, hasLoginCookie)

	var loginBody map[string]string
	decodeBody(t, resp, &loginBody)
	assert.Equal(t, "alice", loginBody["username"])
	assert.NotEmpty(t, loginBody["token"])

	// The user listing never serializes password hashes.
	req = httptest.NewRequest(http.MethodGet, "/api/users/", nil)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.NotContains(t, string(raw), user.Password)
}

func TestSignupValidationFailures(t *testing.T) {
	env := setupApp(t)
	registerUser(t, env, "alice", "alice@example.com")

	tests := []struct {
		name    string
		payload map[string]string
		field   string
		message string
	}{
		{
			name:    "blank username",
			payload: map[string]string{"email": "bob@example.com", "password": "Str0ng!Pass"},
			field:   "username",
			message: "Username must be filled",
		},
		{
			name:    "username too short",
			payload: map[string]string{"username": "ab", "email": "bob@example.com", "password": "Str0ng!Pass"},
			field:   "username",
			message: "Field validation failed on the 'min' rule",
		},
		{
			name:    "username too long",
			payload: map[string]string{"username": strings.Repeat("b", 25), "email": "bob@example.com", "password": "Str0ng!Pass"},
			field:   "username",
			message: "Field validation failed on the 'max' rule",
		},
		{
			name:    "invalid email",
			payload: map[string]string{"username": "bob", "email": "not-an-email", "password": "Str0ng!Pass"},
			field:   "email",
			message: "Enter A valid Email",
		},
		{
			name:    "weak password",
			payload: map[string]string{"username": "bob", "email": "bob@example.com", "password": "password"},
			field:   "password",
			message: "Password is not strong enough",
		},
		{
			name:    "duplicate username",
			payload: map[string]string{"username": "alice", "email": "bob@example.com", "password": "Str0ng!Pass"},
			field:   "username",
			message: "Username already exists",
		},
		{
			name:    "duplicate email",
			payload: map[string]string{"username": "bob", "email": "alice@example.com", "password": "Str0ng!Pass"},
			field:   "email",
			message: "Email already exists",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/users/register", tc.payload), -1)
			assert.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			fieldErrs := decodeErrors(t, resp)
			assert.Equal(t, tc.message, fieldErrs[tc.field])
			// Seeded keys are always present, even when blank.
			assert.Contains(t, fieldErrs, "username")
			assert.Contains(t, fieldErrs, "email")
			assert.Contains(t, fieldErrs, "password")
		})
	}
}

func TestLoginFailures(t *testing.T) {
	env := setupApp(t)
	registerUser(t, env, "alice", "alice@example.com")

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/users/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "Str0ng!Pass",
	}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fieldErrs := decodeErrors(t, resp)
	assert.Equal(t, "incorrect email", fieldErrs["email"])

	resp, err = env.app.Test(jsonRequest(http.MethodPost, "/api/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "Wr0ng!Pass99",
	}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fieldErrs = decodeErrors(t, resp)
	assert.Equal(t, "incorrect password", fieldErrs["password"])
}

func TestExistingSessionGuard(t *testing.T) {
	env := setupApp(t)
	_, token := registerUser(t, env, "alice", "alice@example.com")

	// A valid session cookie blocks another login attempt.
	req := jsonRequest(http.MethodPost, "/api/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "Str0ng!Pass",
	})
	req.AddCookie(&http.Cookie{Name: middleware.LoginCookie, Value: token})
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fieldErrs := decodeErrors(t, resp)
	assert.Equal(t, "User is already logged in. Log out before you attempt to log in again", fieldErrs["message"])

	// A stale cookie is cleared and the request proceeds.
	req = jsonRequest(http.MethodPost, "/api/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "Str0ng!Pass",
	})
	req.AddCookie(&http.Cookie{Name: middleware.LoginCookie, Value: "garbage.token.value"})
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCartFlow(t *testing.T) {
	env := setupApp(t)
	userID, _ := registerUser(t, env, "alice", "alice@example.com")
	mug := seedProduct(t, env, "mug", 10)

	// Add to cart; line totals and the cart total come from stored prices.
	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/"+userID+"/cart", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product": mug.ID, "quantity": 2},
		},
	}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var cart models.Cart
	decodeBody(t, resp, &cart)
	assert.Equal(t, float64(20), cart.TotalPrice)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, float64(20), cart.Items[0].LineTotal)

	// Fetching the cart populates product details.
	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/"+userID+"/cart", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &cart)
	assert.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "mug", cart.Items[0].Product.Name)

	// An update takes the caller's totals without repricing.
	resp, err = env.app.Test(jsonRequest(http.MethodPut, "/api/"+userID+"/cart", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product": mug.ID, "quantity": 3, "itemPrice": 99.0},
		},
		"totalPrice": 99.0,
	}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &cart)
	assert.Equal(t, float64(99), cart.TotalPrice)

	// Clear, then verify the cart is gone.
	resp, err = env.app.Test(httptest.NewRequest(http.MethodDelete, "/api/"+userID+"/cart", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var cleared map[string]string
	decodeBody(t, resp, &cleared)
	assert.Equal(t, "Cart cleared successfully", cleared["message"])

	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/"+userID+"/cart", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var notFound map[string]string
	decodeBody(t, resp, &notFound)
	assert.Equal(t, "Cart not found", notFound["error"])
}

func TestCartBadProductReferences(t *testing.T) {
	env := setupApp(t)
	userID, _ := registerUser(t, env, "alice", "alice@example.com")

	// A well-formed but unknown product reference prices to an empty cart.
	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/"+userID+"/cart", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product": "9f4c5a1e-0f52-4a7b-9e5d-1c2b3a4d5e6f", "quantity": 1},
		},
	}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Cart not found or could not be created.", body["message"])

	// A malformed reference is rejected on its field path before any write.
	resp, err = env.app.Test(jsonRequest(http.MethodPost, "/api/"+userID+"/cart", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product": "not-a-uuid", "quantity": 1},
		},
	}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var fieldErrs map[string]string
	decodeBody(t, resp, &fieldErrs)
	assert.Equal(t, "Invalid product format", fieldErrs["product"])

	// Updating a cart that was never created is a 404.
	resp, err = env.app.Test(jsonRequest(http.MethodPut, "/api/"+userID+"/cart", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product": "9f4c5a1e-0f52-4a7b-9e5d-1c2b3a4d5e6f", "quantity": 1},
		},
		"totalPrice": 10.0,
	}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUserScopedRouteGuard(t *testing.T) {
	env := setupApp(t)

	resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/api/not-a-uuid/cart", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "UserId is not a valid UserId", body["error"])

	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/9f4c5a1e-0f52-4a7b-9e5d-1c2b3a4d5e6f/cart", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, "UserId is not a valid UserId. Not found in Database", body["error"])
}

func TestOrderFlow(t *testing.T) {
	env := setupApp(t)
	userID, _ := registerUser(t, env, "alice", "alice@example.com")
	mug := seedProduct(t, env, "mug", 10)

	orderPayload := map[string]interface{}{
		"items": []map[string]interface{}{
			{"product": mug.ID, "quantity": 2},
		},
		"totalPrice": 20.0,
	}

	// Updating before any order exists is a 404, unlike placement.
	resp, err := env.app.Test(jsonRequest(http.MethodPut, "/api/"+userID+"/order", orderPayload), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Order not found", body["error"])

	// Placement creates the order and defaults its status.
	resp, err = env.app.Test(jsonRequest(http.MethodPost, "/api/"+userID+"/order", orderPayload), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, float64(20), order.TotalPrice)

	// A second placement overwrites the same document.
	orderPayload["status"] = models.OrderStatusShipped
	resp, err = env.app.Test(jsonRequest(http.MethodPost, "/api/"+userID+"/order", orderPayload), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var replaced models.Order
	decodeBody(t, resp, &replaced)
	assert.Equal(t, order.ID, replaced.ID)
	assert.Equal(t, models.OrderStatusShipped, replaced.Status)

	// An unknown status never reaches the store.
	orderPayload["status"] = "teleported"
	resp, err = env.app.Test(jsonRequest(http.MethodPost, "/api/"+userID+"/order", orderPayload), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err = env.app.Test(httptest.NewRequest(http.MethodDelete, "/api/"+userID+"/order", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, "Order cleared successfully", body["message"])

	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/"+userID+"/order", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func productForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, value := range fields {
		assert.NoError(t, writer.WriteField(key, value))
	}
	if withImage {
		part, err := writer.CreateFormFile("image", "mug photo.png")
		assert.NoError(t, err)
		_, err = part.Write([]byte("not really a png"))
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestProductLifecycle(t *testing.T) {
	env := setupApp(t)
	_, token := registerUser(t, env, "alice", "alice@example.com")

	body, contentType := productForm(t, map[string]string{
		"name":        "Mug",
		"description": "holds roughly one coffee",
		"price":       "12.50",
		"category":    "kitchen",
	}, true)
	req := httptest.NewRequest(http.MethodPost, "/api/products/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Product
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 12.5, created.Price)
	assert.Contains(t, created.Image, testBaseURL+"/images/")
	// Whitespace in the uploaded filename is flattened.
	assert.Contains(t, created.Image, "mug_photo.png")
	assert.NotContains(t, created.Image, " ")

	entries, err := os.ReadDir(env.uploadDir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	// Reads are public.
	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/products/", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	decodeBody(t, resp, &products)
	assert.Len(t, products, 1)

	// Full overwrite.
	req = jsonRequest(http.MethodPut, "/api/products/"+created.ID, map[string]interface{}{
		"name":        "Mug v2",
		"description": "holds roughly two coffees",
		"price":       14.0,
		"image":       created.Image,
		"category":    "kitchen",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Product
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Mug v2", updated.Name)

	// Partial update leaves untouched fields alone.
	req = jsonRequest(http.MethodPatch, "/api/products/"+created.ID, map[string]interface{}{
		"price": 16.0,
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var patched models.Product
	decodeBody(t, resp, &patched)
	assert.Equal(t, float64(16), patched.Price)
	assert.Equal(t, "Mug v2", patched.Name)

	req = httptest.NewRequest(http.MethodDelete, "/api/products/"+created.ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/products/"+created.ID, nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var notFound map[string]string
	decodeBody(t, resp, &notFound)
	assert.Equal(t, "Product not found", notFound["error"])
}

func TestProductCreateValidation(t *testing.T) {
	env := setupApp(t)
	_, token := registerUser(t, env, "alice", "alice@example.com")

	// Missing image file.
	body, contentType := productForm(t, map[string]string{
		"name":        "Mug",
		"description": "holds roughly one coffee",
		"price":       "12.50",
		"category":    "kitchen",
	}, false)
	req := httptest.NewRequest(http.MethodPost, "/api/products/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody map[string]string
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "Image file is required", errBody["error"])

	// A price with trailing garbage is rejected, not truncated.
	body, contentType = productForm(t, map[string]string{
		"name":        "Mug",
		"description": "holds roughly one coffee",
		"price":       "12.5abc",
		"category":    "kitchen",
	}, true)
	req = httptest.NewRequest(http.MethodPost, "/api/products/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fieldErrs := decodeErrors(t, resp)
	assert.Equal(t, "Price must be a number", fieldErrs["price"])

	// Description below the minimum length.
	body, contentType = productForm(t, map[string]string{
		"name":        "Mug",
		"description": "too short",
		"price":       "12.50",
		"category":    "kitchen",
	}, true)
	req = httptest.NewRequest(http.MethodPost, "/api/products/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fieldErrs = decodeErrors(t, resp)
	assert.Contains(t, fieldErrs["description"], "min")
}

func TestProductMutationsRequireBearer(t *testing.T) {
	env := setupApp(t)

	resp, err := env.app.Test(jsonRequest(http.MethodPut, "/api/products/some-id", map[string]interface{}{}), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Authorization Header Required", body["error"])

	req := jsonRequest(http.MethodPut, "/api/products/some-id", map[string]interface{}{})
	req.Header.Set("Authorization", "Token abc")
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	req = jsonRequest(http.MethodPut, "/api/products/some-id", map[string]interface{}{})
	req.Header.Set("Authorization", "Bearer garbage.token.value")
	resp, err = env.app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, "Request is not authorized", body["error"])

	// Reads stay public.
	resp, err = env.app.Test(httptest.NewRequest(http.MethodGet, "/api/products/", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
