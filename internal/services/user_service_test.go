package services

import (
	"testing"

	"github.com/crewhq/crew-backend/internal/apperrors"
	"github.com/crewhq/crew-backend/internal/models"
	"github.com/crewhq/crew-backend/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create_DefaultsToEmployee(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.userService.Create(CreateUserInput{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleEmployee, user.RoleName())
}

func TestUserService_Create_RoleNameIsCaseInsensitive(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.userService.Create(CreateUserInput{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
		Role:                 "superadmin",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleSuperAdmin, user.RoleName())
}

func TestUserService_Create_UnknownRoleFailsValidation(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.userService.Create(CreateUserInput{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
		Role:                 "manager",
	})

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Details, "role")
}

func TestUserService_Create_PasswordConfirmationMismatch(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.userService.Create(CreateUserInput{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "supersecret",
		PasswordConfirmation: "different-secret",
	})

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Details, "password_confirmation")
}

func TestUserService_Create_ActiveEmailCollisionFails(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "Alice", "alice@example.com", models.RoleEmployee)

	_, err := env.userService.Create(CreateUserInput{
		Name:                 "Impostor",
		Email:                "alice@example.com",
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
	})

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Details, "email")
}

func TestUserService_Create_RecyclesSoftDeletedEmail(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.createUser(t, "Admin", "admin@example.com", models.RoleSuperAdmin)
	old := env.createUser(t, "Alice", "alice@example.com", models.RoleEmployee)

	// Give the predecessor a membership so we can verify it does not leak
	// onto the successor.
	org := env.createOrganisation(t, "Acme")
	_, err := env.orgService.UpdateMembers(org.ID, []uint64{old.ID}, admin.ID)
	require.NoError(t, err)

	require.NoError(t, env.userService.Delete(old.ID, admin.ID))

	replacement, err := env.userService.Create(CreateUserInput{
		Name:                 "New Alice",
		Email:                "alice@example.com",
		Password:             "supersecret",
		PasswordConfirmation: "supersecret",
	})
	require.NoError(t, err)
	require.NotEqual(t, old.ID, replacement.ID)

	// The predecessor row is hard-removed, not merely invisible.
	var userCount int64
	require.NoError(t, env.db.Model(&models.User{}).
		Where("id = ?", old.ID).
		Count(&userCount).Error)
	require.Zero(t, userCount)

	// Its membership rows are gone outright as well.
	var memberCount int64
	require.NoError(t, env.db.Model(&models.OrganisationUser{}).
		Where("user_id = ?", old.ID).
		Count(&memberCount).Error)
	require.Zero(t, memberCount)

	// The successor starts with a clean membership set.
	require.NoError(t, env.db.Model(&models.OrganisationUser{}).
		Where("user_id = ?", replacement.ID).
		Count(&memberCount).Error)
	require.Zero(t, memberCount)
}

func TestUserService_Delete_SoftDeletesMembershipsAndStampsActor(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.createUser(t, "Admin", "admin@example.com", models.RoleSuperAdmin)
	user := env.createUser(t, "Alice", "alice@example.com", models.RoleEmployee)

	org := env.createOrganisation(t, "Acme")
	_, err := env.orgService.UpdateMembers(org.ID, []uint64{user.ID}, admin.ID)
	require.NoError(t, err)

	require.NoError(t, env.userService.Delete(user.ID, admin.ID))

	var deleted models.User
	require.NoError(t, env.db.First(&deleted, user.ID).Error)
	require.True(t, deleted.IsDeleted)
	require.NotNil(t, deleted.DeletedAt)
	require.NotNil(t, deleted.DeletedByUserID)
	require.Equal(t, admin.ID, *deleted.DeletedByUserID)

	var membership models.OrganisationUser
	require.NoError(t, env.db.Where("user_id = ?", user.ID).First(&membership).Error)
	require.True(t, membership.IsDeleted)
	require.NotNil(t, membership.DeletedByUserID)
	require.Equal(t, admin.ID, *membership.DeletedByUserID)
}

func TestUserService_Delete_AlreadyDeletedIsNotFound(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.createUser(t, "Admin", "admin@example.com", models.RoleSuperAdmin)
	user := env.createUser(t, "Alice", "alice@example.com", models.RoleEmployee)

	require.NoError(t, env.userService.Delete(user.ID, admin.ID))

	err := env.userService.Delete(user.ID, admin.ID)
	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestUserService_Update_Self(t *testing.T) {
	env := setupTestEnv(t)

	user := env.createUser(t, "Alice", "alice@example.com", models.RoleEmployee)

	updated, err := env.userService.Update(user.ID, UpdateUserInput{
		Name:  "Alice Cooper",
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "Alice Cooper", updated.Name)
}

func TestUserService_Update_EmailHeldByAnotherActiveUser(t *testing.T) {
	env := setupTestEnv(t)

	env.createUser(t, "Alice", "alice@example.com", models.RoleEmployee)
	bob := env.createUser(t, "Bob", "bob@example.com", models.RoleEmployee)

	_, err := env.userService.Update(bob.ID, UpdateUserInput{
		Name:  "Bob",
		Email: "alice@example.com",
	})

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Details, "email")
}

func TestUserService_Update_RecyclesSoftDeletedEmail(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.createUser(t, "Admin", "admin@example.com", models.RoleSuperAdmin)
	old := env.createUser(t, "Alice", "alice@example.com", models.RoleEmployee)
	bob := env.createUser(t, "Bob", "bob@example.com", models.RoleEmployee)

	require.NoError(t, env.userService.Delete(old.ID, admin.ID))

	updated, err := env.userService.Update(bob.ID, UpdateUserInput{
		Name:  "Bob",
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", updated.Email)

	// The soft-deleted predecessor is hard-removed, same as on create.
	var count int64
	require.NoError(t, env.db.Model(&models.User{}).
		Where("id = ?", old.ID).
		Count(&count).Error)
	require.Zero(t, count)
}

func TestUserService_Update_ChangesPassword(t *testing.T) {
	env := setupTestEnv(t)

	user := env.createUser(t, "Alice", "alice@example.com", models.RoleEmployee)

	_, err := env.userService.Update(user.ID, UpdateUserInput{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "even-more-secret",
		PasswordConfirmation: "even-more-secret",
	})
	require.NoError(t, err)

	_, err = env.userService.Authenticate("alice@example.com", "even-more-secret")
	require.NoError(t, err)

	_, err = env.userService.Authenticate("alice@example.com", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_List_Pagination(t *testing.T) {
	env := setupTestEnv(t)

	env.createUser(t, "One", "one@example.com", models.RoleEmployee)
	env.createUser(t, "Two", "two@example.com", models.RoleEmployee)
	env.createUser(t, "Three", "three@example.com", models.RoleEmployee)

	firstPage, total, err := env.userService.List(repository.UserFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, firstPage, 2)

	secondPage, total, err := env.userService.List(repository.UserFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, secondPage, 1)
	require.Equal(t, "Three", secondPage[0].Name)
}

func TestUserService_Authenticate(t *testing.T) {
	env := setupTestEnv(t)

	user := env.createUser(t, "Alice", "alice@example.com", models.RoleEmployee)

	got, err := env.userService.Authenticate("alice@example.com", "supersecret")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, models.RoleEmployee, got.RoleName())

	_, err = env.userService.Authenticate("alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.userService.Authenticate("nobody@example.com", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Authenticate_SoftDeletedUserCannotLogIn(t *testing.T) {
	env := setupTestEnv(t)

	admin := env.createUser(t, "Admin", "admin@example.com", models.RoleSuperAdmin)
	user := env.createUser(t, "Alice", "alice@example.com", models.RoleEmployee)

	require.NoError(t, env.userService.Delete(user.ID, admin.ID))

	_, err := env.userService.Authenticate("alice@example.com", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
