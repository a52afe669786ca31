package service

import "portal-berita-server/internal/consts"

// Actor 当前请求的已认证用户
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == consts.RoleAdmin
}

// CanManage 资源所有者或管理员
func (a Actor) CanManage(ownerID string) bool {
	return a.IsAdmin() || (a.ID != "" && a.ID == ownerID)
}
