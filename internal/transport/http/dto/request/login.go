package request

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type FilterRequest struct {
	Character string `json:"character" form:"character"`
	Place     string `json:"place" form:"place"`
}

type PageRequest struct {
	Page int `json:"page" form:"page"`
}
