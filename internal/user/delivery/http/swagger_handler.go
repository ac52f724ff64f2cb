package http

// Register godoc
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{email=string,nickname=string,password=string} true "Registration data"
// @Success 201 {object} object{accessToken=string,user=object}
// @Failure 400 {object} object{message=string}
// @Router /auth/register [post]
func (h *UserHandler) RegisterDoc() {}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Credentials"
// @Success 200 {object} object{accessToken=string,user=object}
// @Failure 401 {object} object{message=string}
// @Router /auth/login [post]
func (h *UserHandler) LoginDoc() {}

// OAuthLogin godoc
// @Summary Log in through an external provider
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{provider=string,providerId=string,nickname=string,email=string,image=string} true "Provider identity"
// @Success 200 {object} object{accessToken=string,user=object}
// @Failure 400 {object} object{message=string}
// @Router /auth/oauth [post]
func (h *UserHandler) OAuthLoginDoc() {}

// Me godoc
// @Summary Get the caller's profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object
// @Failure 401 {object} object{message=string}
// @Router /users/me [get]
func (h *UserHandler) MeDoc() {}
