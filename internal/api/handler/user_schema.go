package handler

type registerRequest struct {
	Username string `json:"username" validate:"required,min=4,max=40,username"`
	Password string `json:"password" validate:"required,min=8,max=128,password"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
