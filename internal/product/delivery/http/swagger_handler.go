package http

// List godoc
// @Summary List products
// @Description Paginated product listing with keyword search and ordering
// @Tags Products
// @Produce json
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param orderBy query string false "recent or favorite"
// @Param keyword query string false "Case-insensitive search over name and description"
// @Success 200 {object} object{totalCount=int,list=[]object}
// @Router /products [get]
func (h *ProductHandler) ListDoc() {}

// Best godoc
// @Summary Best products
// @Description Fixed-size list ordered by favorite count descending
// @Tags Products
// @Produce json
// @Param limit query int false "Size of the best list (default 4)"
// @Success 200 {array} object
// @Router /products/best [get]
func (h *ProductHandler) BestDoc() {}

// Create godoc
// @Summary Create a product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string,price=int,images=[]string} true "Product data"
// @Success 201 {object} object
// @Failure 400 {object} object{message=string}
// @Router /products [post]
func (h *ProductHandler) CreateDoc() {}

// Update godoc
// @Summary Update a product (owner only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object
// @Failure 403 {object} object{message=string}
// @Failure 404 {object} object{message=string}
// @Router /products/{id} [patch]
func (h *ProductHandler) UpdateDoc() {}

// Like godoc
// @Summary Like a product
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object
// @Failure 409 {object} object{message=string}
// @Router /products/{id}/like [post]
func (h *ProductHandler) LikeDoc() {}

// Unlike godoc
// @Summary Remove a like from a product
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object
// @Failure 409 {object} object{message=string}
// @Router /products/{id}/unlike [delete]
func (h *ProductHandler) UnlikeDoc() {}
