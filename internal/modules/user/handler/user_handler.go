package handler

import (
	"net/http"
	"portal-berita-server/internal/config"
	"portal-berita-server/internal/consts"
	"portal-berita-server/internal/modules/common/httpx"
	moduledto "portal-berita-server/internal/modules/user/dto"
	userservice "portal-berita-server/internal/modules/user/service"

	"github.com/gin-gonic/gin"
)

// Signup 注册
func (h *Handler) Signup(c *gin.Context) {
	var req moduledto.SignupRequest
	if err := httpx.BindJSONStrict(c, &req); err != nil {
		httpx.WriteServiceError(c, err, "参数格式错误")
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "注册失败，请稍后重试")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Signin 登录，令牌同时写入 HttpOnly Cookie
func (h *Handler) Signin(c *gin.Context) {
	var req moduledto.SigninRequest
	if err := httpx.BindJSONStrict(c, &req); err != nil {
		httpx.WriteServiceError(c, err, "参数错误")
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req.UserNameOrEmail, req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "登录失败，请稍后重试")
		return
	}

	setAccessTokenCookie(c, resp.Token, int(userservice.TokenTTL().Seconds()))
	c.JSON(http.StatusOK, resp)
}

// Signout 清除登录 Cookie
func (h *Handler) Signout(c *gin.Context) {
	setAccessTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}

// GetSelfInfo 获取当前用户信息
func (h *Handler) GetSelfInfo(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		httpx.Error(c, http.StatusUnauthorized, "获取用户ID失败")
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), actor.ID)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户信息失败")
		return
	}

	c.JSON(http.StatusOK, profile)
}

func setAccessTokenCookie(c *gin.Context, token string, maxAge int) {
	secure := config.Get().Server.Mode == gin.ReleaseMode
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(consts.AccessTokenCookie, token, maxAge, "/", "", secure, true)
}
