package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed index.html
var staticFiles embed.FS

// StaticFS 返回内嵌的管理后台静态文件
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFiles, ".")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
