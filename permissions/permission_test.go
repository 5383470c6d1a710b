package permissions_test

import (
	"net/http"
	"testing"
	"villa/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	raw := []byte(`{"endpoints":[
		{"path":"/api/bookings","method":"POST","optional":true},
		{"path":"/api/admin/bookings","method":"GET","permissions":["admin"]},
		{"path":"/api/admin/bookings","method":"GET","permissions":["user"]}
	]}`)

	data, err := permissions.Parse(raw)
	require.NoError(t, err)

	assert.True(t, data.FindPermissions("/api/bookings", http.MethodPost).Optional)
	assert.Equal(t, []string{"admin"}, data.FindPermissions("/api/admin/bookings", http.MethodGet).Permissions)
	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/api/bookings", http.MethodDelete))

	_, err = permissions.Parse([]byte(`{`))
	assert.Error(t, err)
}

func TestGet_Embedded(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.True(t, data.FindPermissions("/api/login", http.MethodPost).Skip)
	assert.Contains(t, data.FindPermissions("/api/admin/inventory", http.MethodGet).Permissions, "admin")
}

func TestFindPermissions_Unindexed(t *testing.T) {
	data := &permissions.PermissionData{
		Endpoints: []permissions.Permission{{Path: "/api/faqs", Method: http.MethodGet, Skip: true}},
	}

	assert.True(t, data.FindPermissions("/api/faqs", http.MethodGet).Skip)
}
