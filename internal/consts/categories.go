package consts

import "strings"

// MaxPostCategories 单篇文章最多可关联的分类数
const MaxPostCategories = 3

// ValidCategories 文章可用的分类集合
var ValidCategories = []string{
	"travel",
	"nature",
	"city",
	"adventure",
	"beaches",
	"landmarks",
	"mountains",
	"politics",
	"economy",
	"technology",
	"sports",
	"entertainment",
	"health",
	"culture",
}

var validCategorySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ValidCategories))
	for _, c := range ValidCategories {
		m[c] = struct{}{}
	}
	return m
}()

// NormalizeCategory 统一分类大小写与空白
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// IsValidCategory 判断分类是否在固定集合中（不区分大小写）
func IsValidCategory(category string) bool {
	_, ok := validCategorySet[NormalizeCategory(category)]
	return ok
}
