package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketscan/internal/service"
)

// AdminHandler handles the administrative gate endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Login handles POST /api/admin-login
// @Summary Admin login
// @Description Compare the admin password and issue a session token for admin routes
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Admin password"
// @Success 200 {object} Response{data=AdminTokenResponse} "Session token"
// @Failure 400 {object} ErrorResponseBody "Password missing"
// @Failure 401 {object} ErrorResponseBody "Wrong password"
// @Router /admin-login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var input service.AdminLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "password is required")
		return
	}

	token, err := h.adminService.Login(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, token)
}

// Page handles GET /admin
func (h *AdminHandler) Page(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(adminPage))
}

const adminPage = `<!DOCTYPE html>
<html>
  <head><title>ticketscan admin</title></head>
  <body style="font-family: sans-serif; padding: 2rem;">
    <h2>Admin login</h2>
    <form onsubmit="login(event)">
      <input type="password" id="password" placeholder="Password" required />
      <button type="submit">Sign in</button>
    </form>
    <pre id="result"></pre>
    <script>
      async function login(e) {
        e.preventDefault();
        const password = document.getElementById('password').value;
        const res = await fetch('/api/admin-login', {
          method: 'POST',
          headers: { 'Content-Type': 'application/json' },
          body: JSON.stringify({ password }),
        });
        const data = await res.json();
        if (data.success) {
          sessionStorage.setItem('adminToken', data.data.token);
        }
        document.getElementById('result').innerText = JSON.stringify(data, null, 2);
      }
    </script>
  </body>
</html>
`
