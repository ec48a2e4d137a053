package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

type StatusHandler struct{}

func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// Status — проба живости сервера.
func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "Server işləyir!",
		"message":   "Ağdam Dövlət Sosial-İqtisadi Kolleci Backend",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   version,
	})
}

// Index — простая стартовая страница со списком эндпоинтов.
func (h *StatusHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="az">
<head>
<meta charset="UTF-8">
<title>Ağdam Dövlət Sosial-İqtisadi Kolleci</title>
</head>
<body>
<h1>Ağdam Dövlət Sosial-İqtisadi Kolleci</h1>
<p>Backend server işləyir.</p>
<h3>API Endpoints:</h3>
<ul>
<li><code>GET /api/status</code> - Server statusu</li>
<li><code>GET /api/data</code> - Fayl məlumatları</li>
<li><code>POST /api/upload</code> - Fayl yükləmə</li>
<li><code>GET /api/files/:subject/:module</code> - Faylları əldə et</li>
<li><code>POST /api/teacher-login</code> - Müəllim girişi</li>
<li><code>POST /api/module-login</code> - Modul girişi</li>
</ul>
</body>
</html>
`
