package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/crewhq/crew-backend/internal/constants"
	"github.com/crewhq/crew-backend/internal/middleware"
	"github.com/crewhq/crew-backend/internal/models"
	"github.com/crewhq/crew-backend/internal/repository"
	"github.com/crewhq/crew-backend/internal/services"
)

type handlerTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	userService *services.UserService
	orgService  *services.OrganisationService
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserRole{},
		&models.User{},
		&models.Organisation{},
		&models.OrganisationUser{},
	)
	require.NoError(t, err)

	for _, name := range []models.Role{models.RoleSuperAdmin, models.RoleAdmin, models.RoleEmployee} {
		require.NoError(t, db.Create(&models.UserRole{Name: name}).Error)
	}

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganisationRepository(db)
	roleRepo := repository.NewRoleRepository(db)

	userService := services.NewUserService(userRepo, roleRepo)
	orgService := services.NewOrganisationService(orgRepo, userRepo)

	authHandler := NewAuthHandler(userService)
	userHandler := NewUserHandler(userService)
	orgHandler := NewOrganisationHandler(orgService, userService)
	roleHandler := NewRoleHandler(roleRepo)
	dashboardHandler := NewDashboardHandler(services.NewDashboardService(db))

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	api := r.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)

	users := api.Group("/users")
	users.Use(middleware.RequireAuth())
	users.GET("", userHandler.ListUsers)
	users.GET("/:id", userHandler.GetUser)
	users.POST("", userHandler.CreateUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	orgs := api.Group("/organisations")
	orgs.Use(middleware.RequireAuth())
	orgs.GET("", orgHandler.ListOrganisations)
	orgs.GET("/:id", orgHandler.GetOrganisation)
	orgs.POST("", orgHandler.CreateOrganisation)
	orgs.PUT("/:id", orgHandler.UpdateOrganisation)
	orgs.DELETE("/:id", orgHandler.DeleteOrganisation)

	api.GET("/roles", middleware.RequireAuth(), roleHandler.ListRoles)
	api.GET("/dashboard", middleware.RequireAuth(), dashboardHandler.GetStats)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return handlerTestEnv{
		db:          db,
		router:      r,
		userService: userService,
		orgService:  orgService,
	}
}

func (env handlerTestEnv) createUser(t *testing.T, name, email string, role models.Role) *models.User {
	t.Helper()

	user, err := env.userService.Create(services.CreateUserInput{
		Name:                 name,
		Email:                email,
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
		Role:                 string(role),
	})
	require.NoError(t, err)
	return user
}

// login returns the session cookies of an authenticated user.
func (env handlerTestEnv) login(t *testing.T, email string) []*http.Cookie {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": "supersecret",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

func (env handlerTestEnv) request(t *testing.T, method, path string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
