package httpapi

import "net/http"

// ContextKey is a dedicated type for context keys to avoid collisions.
type ContextKey string

const (
	// AccountIDCtxKey holds the authenticated account id set by JWTAuth.
	AccountIDCtxKey = ContextKey("account_id")
	// AccountRoleCtxKey holds the authenticated account role set by JWTAuth.
	AccountRoleCtxKey = ContextKey("account_role")
)

func accountIDFromRequest(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(AccountIDCtxKey).(string)
	return id, ok && id != ""
}

func accountRoleFromRequest(r *http.Request) string {
	role, _ := r.Context().Value(AccountRoleCtxKey).(string)
	return role
}
