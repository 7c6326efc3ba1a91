package dto

// RegisterForm is the registration form.
type RegisterForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Phone    string `form:"phone"`
	Role     string `form:"role"`
	Address  string `form:"address"`
	Lat      string `form:"lat"`
	Lng      string `form:"lng"`
	GeoError int    `form:"geo_error"`
}

// LoginForm is the login form.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}
