package consts

// 文章列表缓存键，写操作后统一失效
const (
	CacheKeyAllPosts      = "all_posts"
	CacheKeyFeaturedPosts = "featured_posts"
	CacheKeyLatestPosts   = "latest_posts"
)

// PostListCacheKeys 返回所有文章列表缓存键
func PostListCacheKeys() []string {
	return []string{CacheKeyAllPosts, CacheKeyFeaturedPosts, CacheKeyLatestPosts}
}
