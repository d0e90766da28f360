package api

import (
	"strings"

	"github.com/gosimple/slug"
)

// deriveSlug 根据名称/标题生成 URL slug：小写、非字母数字折叠为连字符、去掉首尾连字符
func deriveSlug(name string) string {
	return slug.Make(name)
}

// resolveSlug 决定最终 slug：调用方显式提供则原样使用（仅去首尾空白），
// 否则从 name 推导。名称更新而未显式固定 slug 时，slug 会跟随新名称变化
func resolveSlug(explicit, name string) string {
	explicit = strings.TrimSpace(explicit)
	if explicit != "" {
		return explicit
	}
	return deriveSlug(name)
}
