package identity

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ErrNoUserRef reports a payload that carries no user reference at all.
var ErrNoUserRef = fmt.Errorf("payload contains no user reference")

// ResolveUserRef extracts the referenced user id from the wire shapes clients
// have historically sent: an embedded "user_data" object, an embedded "user"
// object, a bare "user" id string, or a plain "user_id". The first field
// present wins; a present but unparsable reference is an error, never ignored.
func ResolveUserRef(userData, user, userID json.RawMessage) (uuid.UUID, error) {
	if len(userData) > 0 {
		return idFromObject("user_data", userData)
	}
	if len(user) > 0 {
		if id, err := idFromScalar(user); err == nil {
			return id, nil
		}
		return idFromObject("user", user)
	}
	if len(userID) > 0 {
		id, err := idFromScalar(userID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("user_id: %w", err)
		}
		return id, nil
	}
	return uuid.Nil, ErrNoUserRef
}

func idFromObject(field string, raw json.RawMessage) (uuid.UUID, error) {
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", field, err)
	}
	if obj.ID == "" {
		return uuid.Nil, fmt.Errorf("%s has no id", field)
	}
	id, err := uuid.Parse(obj.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s.id: %w", field, err)
	}
	return id, nil
}

func idFromScalar(raw json.RawMessage) (uuid.UUID, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(s)
}
