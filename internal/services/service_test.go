package services

import (
	"testing"

	"github.com/crewhq/crew-backend/internal/models"
	"github.com/crewhq/crew-backend/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	userService *UserService
	orgService  *OrganisationService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

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

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:          db,
		userService: NewUserService(userRepo, roleRepo),
		orgService:  NewOrganisationService(orgRepo, userRepo),
	}
}

func (env testEnv) createUser(t *testing.T, name, email string, role models.Role) *models.User {
	t.Helper()

	user, err := env.userService.Create(CreateUserInput{
		Name:                 name,
		Email:                email,
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
		Role:                 string(role),
	})
	require.NoError(t, err)
	return user
}

func (env testEnv) createOrganisation(t *testing.T, name string) *models.Organisation {
	t.Helper()

	org, err := env.orgService.Create(CreateOrganisationInput{Name: name})
	require.NoError(t, err)
	return org
}
