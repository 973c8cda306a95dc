package render

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvforge-backend/internal/generations"
)

func newHandlerRouter(t *testing.T, binary string) (*gin.Engine, *generations.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, repo := newRenderService(t, binary)
	handler := NewHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Set("isGuest", false)
		c.Next()
	})
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router, repo
}

func TestPreviewAndDownloadDispositions(t *testing.T) {
	binary := writeStubCompiler(t, `printf '%%PDF-1.4 stub' > "$PWD/document.pdf"
`)
	router, repo := newHandlerRouter(t, binary)
	id := storeGeneration(t, repo, "user-1", `\documentclass{article}\begin{document}x\end{document}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/generations/"+id+"/pdf", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
	assert.Equal(t, "inline", resp.Header().Get("Content-Disposition"))

	reqDL := httptest.NewRequest(http.MethodGet, "/api/v1/generations/"+id+"/download", nil)
	respDL := httptest.NewRecorder()
	router.ServeHTTP(respDL, reqDL)

	require.Equal(t, http.StatusOK, respDL.Code)
	assert.Contains(t, respDL.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, respDL.Header().Get("Content-Disposition"), ".pdf")
}

func TestPreviewEmptyDocumentReturns422(t *testing.T) {
	router, repo := newHandlerRouter(t, "definitely-not-a-latex-binary")
	id := storeGeneration(t, repo, "user-1", "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/generations/"+id+"/pdf", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code, resp.Body.String())
}

func TestPreviewUnknownGenerationReturns404(t *testing.T) {
	router, _ := newHandlerRouter(t, "definitely-not-a-latex-binary")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/generations/missing/pdf", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
