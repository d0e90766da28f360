package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSlug(t *testing.T) {
	assert.Equal(t, "about", deriveSlug("About"))
	assert.Equal(t, "about-the-university", deriveSlug("About  the University"))
	assert.Equal(t, "admissions-2026", deriveSlug("Admissions (2026)!"))

	// 幂等：对同一名称重复推导结果一致
	first := deriveSlug("Office of the Registrar")
	second := deriveSlug("Office of the Registrar")
	assert.Equal(t, first, second)
	assert.Equal(t, "office-of-the-registrar", first)
}

func TestResolveSlug(t *testing.T) {
	// 显式 slug 优先，与名称无关
	assert.Equal(t, "custom-slug", resolveSlug("custom-slug", "Whatever Name"))
	assert.Equal(t, "custom-slug", resolveSlug("  custom-slug  ", "Whatever Name"))

	// 未提供 slug 时从名称推导
	assert.Equal(t, "whatever-name", resolveSlug("", "Whatever Name"))
	assert.Equal(t, "whatever-name", resolveSlug("   ", "Whatever Name"))
}
