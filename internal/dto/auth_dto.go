package dto

// MeResponse describes the authenticated caller.
type MeResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	AuthProvider string `json:"auth_provider"`
}

// ProtectedUser is the identity echoed by the protected test route.
type ProtectedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ProtectedTestResponse confirms a successful authentication round trip.
type ProtectedTestResponse struct {
	Message string        `json:"message"`
	User    ProtectedUser `json:"user"`
}
