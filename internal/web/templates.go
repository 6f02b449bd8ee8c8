package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
}

// Templates 返回打包进二进制的页面模板集合。
// 页面本身刻意保持简陋，渲染上下文的键才是这里的契约
func Templates() *template.Template {
	return template.Must(
		template.New("").Funcs(functions).ParseFS(templateFS, "templates/*.html"),
	)
}
