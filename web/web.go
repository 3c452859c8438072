// Package web 打包服务所需的 HTML 模板与静态资源。
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates static
var content embed.FS

// Templates 解析三个页面视图（index、upload、images）
func Templates() (*template.Template, error) {
	funcs := template.FuncMap{
		"prev": func(page int) int { return page - 1 },
		"next": func(page int) int { return page + 1 },
	}
	return template.New("").Funcs(funcs).ParseFS(content, "templates/*.html")
}

// StaticFS 返回挂载在 /static 下的打包资源
func StaticFS() (fs.FS, error) {
	return fs.Sub(content, "static")
}
