package permissions

import (
	_ "embed"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission describes one route. Skip makes it public, Optional lets guests
// through while still resolving a logged in caller, and Permissions lists the
// roles allowed when non-empty.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
	Optional    bool     `json:"optional"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func key(method, path string) string {
	return method + " " + path
}

// FindPermissions looks a chi route pattern up. Unknown routes get the zero
// Permission, which the auth middleware treats as "login required".
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index != nil {
		return r.index[key(method, path)]
	}

	for _, endpoint := range r.Endpoints {
		if endpoint.Path == path && endpoint.Method == method {
			return endpoint
		}
	}

	return Permission{}
}

// Parse decodes a permissions document and indexes it by method and path.
// A route listed twice keeps its first entry.
func Parse(raw []byte) (*PermissionData, error) {
	var data PermissionData

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err //nolint:wrapcheck
	}

	data.index = make(map[string]Permission, len(data.Endpoints))

	for _, endpoint := range data.Endpoints {
		k := key(endpoint.Method, endpoint.Path)
		if _, dup := data.index[k]; dup {
			log.Warn().Str("route", k).Msg("duplicate permission entry ignored")

			continue
		}

		data.index[k] = endpoint
	}

	return &data, nil
}

func Get() *PermissionData {
	data, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Loaded embedded permissions")

	return data
}
