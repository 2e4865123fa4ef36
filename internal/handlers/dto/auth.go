package dto

type RegisterRequest struct {
	Phone    string `form:"phone" binding:"required"`
	Name     string `form:"name" binding:"required,min=2,max=50"`
	Password string `form:"password" binding:"required,min=6,max=64"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}
