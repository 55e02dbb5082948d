package server

// Route path constants
const (
	RouteIndex        = "/{$}"
	RouteHome         = "/"
	RouteSignup       = "/signup"
	RouteSignupSubmit = "/signupSubmit"
	RouteLogin        = "/login"
	RouteLoginSubmit  = "/loggingIn"
	RouteLoginFail    = "/loginFail"
	RouteMembers      = "/members"
	RouteLogout       = "/logout"
	RouteAdmin        = "/admin"

	// Static Asset Routes (patterns)
	RouteStaticCSS    = "/css/{file}"
	RouteStaticImages = "/images/{file}"
)
