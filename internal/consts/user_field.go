package consts

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// gin.Context 中由认证中间件写入的键
const (
	ContextUserID = "id"
	ContextRole   = "role"
)

// AccessTokenCookie 登录令牌 Cookie 名
const AccessTokenCookie = "access_token"
