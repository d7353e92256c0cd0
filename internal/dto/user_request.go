package dto

// LookupUserRequest matches a user by nickname or email; at least one is required.
type LookupUserRequest struct {
	Nickname string `query:"nickname" json:"nickname" validate:"required_without=Email,max=50"`
	Email    string `query:"email" json:"email" validate:"omitempty,email,max=200"`
}
