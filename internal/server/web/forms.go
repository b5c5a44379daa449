package web

type loginForm struct {
	UserName string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

type registerForm struct {
	UserName        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	PasswordConfirm string `form:"password2" json:"password2"`
}

type taskForm struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

type statusForm struct {
	NewStatus string `form:"newStatus" json:"newStatus"`
}
