package model

// LoginRequest accepts JSON or form-encoded credentials. Nothing is
// validated up front: a missing field simply fails to match a user.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (r *LoginRequest) Validate() error {
	return nil
}

// NoParams is the request type of routes that read nothing from the
// request.
type NoParams struct{}

func (r *NoParams) Validate() error {
	return nil
}
