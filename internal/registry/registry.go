package registry

import "strings"

// resource describes one manageable resource type.
type resource struct {
	endpoint    string
	displayName string
	columns     []string
	restricted  bool
}

// resources is the static table behind the registry. Endpoints keep the
// backend's trailing-slash convention.
var resources = map[string]resource{
	"users": {
		endpoint:    "/api/v1/users/",
		displayName: "Users",
		columns:     []string{"id", "username", "email", "role", "subscription_type", "is_active"},
	},
	"doctors": {
		endpoint:    "/api/v1/doctors/",
		displayName: "Doctors",
		columns:     []string{"id", "user", "specialty", "years_of_experience", "license_number"},
	},
	"profiles": {
		endpoint:    "/api/v1/profiles/",
		displayName: "User Profiles",
		columns:     []string{"id", "user", "phone_number", "address", "profile_picture"},
	},
	"appointments": {
		endpoint:    "/api/v1/appointments/",
		displayName: "Appointments",
		columns:     []string{"id", "user", "date_time", "status", "notes"},
	},
	"consultations": {
		endpoint:    "/api/v1/consultations/",
		displayName: "Consultations",
		columns:     []string{"id", "patient", "doctor", "consultation_type", "status"},
	},
	"payments": {
		endpoint:    "/api/v1/payments/",
		displayName: "Payments",
		columns:     []string{"id", "user", "amount", "payment_method", "status"},
	},
	"scans": {
		endpoint:    "/api/v1/scans/",
		displayName: "Scans",
		restricted:  true,
	},
	"notifications": {
		endpoint:    "/api/v1/notifications/",
		displayName: "Notifications",
		restricted:  true,
	},
}

// filterableFields are the per-field filters the management console offers.
// Resource-specific enums first, then the generic text fields.
var filterableFields = []string{
	"status", "role", "is_read", "notification_type", "payment_method", "specialty",
	"name", "title", "type", "category",
}

// Endpoint returns the REST path prefix for a resource key. Callers must
// check ok before issuing any request; unknown keys have no endpoint.
func Endpoint(key string) (string, bool) {
	r, ok := resources[key]
	if !ok {
		return "", false
	}
	return r.endpoint, true
}

// DisplayName returns the human-readable label for a resource key.
// Unknown keys get naive capitalization so headings never come out empty.
func DisplayName(key string) string {
	if r, ok := resources[key]; ok {
		return r.displayName
	}
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// Columns returns the display-column whitelist for a resource, or nil for
// unknown resources (the list controller falls back to the first five keys).
func Columns(key string) []string {
	r, ok := resources[key]
	if !ok {
		return nil
	}
	return r.columns
}

// FilterableFields returns the fields the console may filter on.
func FilterableFields() []string {
	return filterableFields
}

// Restricted reports whether a resource must never be listed or edited from
// the management console. Scans and notifications are system-generated.
func Restricted(key string) bool {
	return resources[key].restricted
}

// Keys returns all known resource keys.
func Keys() []string {
	keys := make([]string, 0, len(resources))
	for k := range resources {
		keys = append(keys, k)
	}
	return keys
}
