package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sabyskool/api/model"
	"github.com/sabyskool/api/utils/auth"
)

func newMiddlewareTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.JWTTokenBlacklist{}))
	return db
}

func newTestJWTManager() *auth.JWTManager {
	return auth.NewJWTManager(auth.JWTConfig{
		Secret:        "test-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "sabyskool-test",
	})
}

// newProtectedApp wires a fiber app the way router.SetupRoutes protects
// creator-only routes: auth first, then the role gate.
func newProtectedApp(db *gorm.DB, jwtManager *auth.JWTManager) *fiber.App {
	app := fiber.New()
	authMiddleware := NewAuthMiddleware(jwtManager, db)
	app.Post("/protected", authMiddleware.Required(), RequireCreator(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func seedRoleUser(t *testing.T, db *gorm.DB, email string, role model.GlobalRole) *model.User {
	t.Helper()

	user := model.User{
		Email:        email,
		PasswordHash: "irrelevant",
		Name:         "Test User",
		GlobalRole:   role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func accessTokenFor(t *testing.T, jwtManager *auth.JWTManager, user *model.User) string {
	t.Helper()

	token, _, err := jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.GlobalRole), user.TokenVersion)
	require.NoError(t, err)
	return token
}

func TestRequireCreatorAllowsCreators(t *testing.T) {
	db := newMiddlewareTestDB(t)
	jwtManager := newTestJWTManager()
	app := newProtectedApp(db, jwtManager)

	creator := seedRoleUser(t, db, "creator@example.com", model.RoleCreator)
	token := accessTokenFor(t, jwtManager, creator)

	req := httptest.NewRequest(fiber.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireCreatorRejectsParticipants(t *testing.T) {
	db := newMiddlewareTestDB(t)
	jwtManager := newTestJWTManager()
	app := newProtectedApp(db, jwtManager)

	participant := seedRoleUser(t, db, "student@example.com", model.RoleParticipant)
	token := accessTokenFor(t, jwtManager, participant)

	req := httptest.NewRequest(fiber.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireCreatorWithoutToken(t *testing.T) {
	db := newMiddlewareTestDB(t)
	app := newProtectedApp(db, newTestJWTManager())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireCreatorUsesClaimsNotDatabase(t *testing.T) {
	db := newMiddlewareTestDB(t)
	jwtManager := newTestJWTManager()
	app := newProtectedApp(db, jwtManager)

	creator := seedRoleUser(t, db, "creator@example.com", model.RoleCreator)
	token := accessTokenFor(t, jwtManager, creator)

	// Demoting the user after login does not affect tokens already issued;
	// the role travels with the claims until the token expires or the
	// token version is bumped.
	require.NoError(t, db.Model(creator).Update("global_role", model.RoleParticipant).Error)

	req := httptest.NewRequest(fiber.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
