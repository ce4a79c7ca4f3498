package rbac

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/catalog/internal/database"
)

func setupTestDB(t *testing.T) (*Service, func()) {
	t.Helper()
	dbPath := "./test_rbac_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	service := NewService(db.DB)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return service, cleanup
}

func TestCodename(t *testing.T) {
	assert.Equal(t, "view_medicalrecord", Codename(ActionView, "MedicalRecord"))
	assert.Equal(t, "change_book", Codename(ActionChange, "Book"))
}

func TestService_EnsureGroup_Idempotent(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := service.EnsureGroup("doctor")
	require.NoError(t, err)
	second, err := service.EnsureGroup("doctor")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestService_Grant_DoctorPermissionSet(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	group, err := service.EnsureGroup("doctor")
	require.NoError(t, err)
	require.NoError(t, service.Grant(group, "MedicalRecord", ActionView, ActionAdd, ActionChange))

	codenames, err := service.GroupPermissions("doctor")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"view_medicalrecord",
		"add_medicalrecord",
		"change_medicalrecord",
	}, codenames)
}

func TestService_Grant_Idempotent(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	group, err := service.EnsureGroup("doctor")
	require.NoError(t, err)
	require.NoError(t, service.Grant(group, "MedicalRecord", ActionView))
	require.NoError(t, service.Grant(group, "MedicalRecord", ActionView))

	codenames, err := service.GroupPermissions("doctor")
	require.NoError(t, err)
	assert.Len(t, codenames, 1)
}

func TestService_Bootstrap(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	// Running twice must not duplicate anything.
	require.NoError(t, service.Bootstrap())
	require.NoError(t, service.Bootstrap())

	doctor, err := service.GroupPermissions("doctor")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"view_medicalrecord",
		"add_medicalrecord",
		"change_medicalrecord",
	}, doctor)

	nurse, err := service.GroupPermissions("nurse")
	require.NoError(t, err)
	assert.Len(t, nurse, 2)

	patient, err := service.GroupPermissions("patient")
	require.NoError(t, err)
	assert.Equal(t, []string{"view_medicalrecord"}, patient)

	held, err := service.HasPermission("patient", ActionChange, "MedicalRecord")
	require.NoError(t, err)
	assert.False(t, held)
}
