package about

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-backend/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// TestStaticPages 测试两个静态介绍页都能正常打开
func TestStaticPages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	h := NewAboutHandler()
	r.GET("/about/author/", h.Author)
	r.GET("/about/tech/", h.Tech)

	cases := []struct {
		path string
		want string
	}{
		{"/about/author/", "关于作者"},
		{"/about/tech/", "技术栈"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))

		assert.Equal(t, http.StatusOK, w.Code, tc.path)
		assert.Contains(t, w.Body.String(), tc.want)
	}
}
