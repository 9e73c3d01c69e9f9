package handler

import (
	"locallens-server/internal/service"
	"locallens-server/pkg/jwt"
	"locallens-server/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler 创建UserHandler实例
func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// Register 用户注册
func (h *UserHandler) Register(c *gin.Context) {
	type req struct {
		Name     string `json:"name"`
		Username string `json:"username" binding:"required"`
		Email    string `json:"email"`
		Password string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.service.Register(r.Name, r.Username, r.Email, r.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "注册成功", gin.H{
		"user":         response.FilterPublicUser(user),
		"access_token": token,
	})
}

// Login 用户登录
func (h *UserHandler) Login(c *gin.Context) {
	type req struct {
		UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
		Password        string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.service.Login(r.UsernameOrEmail, r.Password)
	if err != nil {
		response.Unauthorized(c, "用户名或密码错误")
		return
	}

	response.SuccessWithMessage(c, "登录成功", gin.H{
		"user":         response.FilterPublicUser(user),
		"access_token": token,
	})
}

// GetProfile 获取当前用户资料（需要JWT认证）
func (h *UserHandler) GetProfile(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	user, err := h.service.GetProfile(actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, response.FilterPublicUser(user))
}

// UpdateProfile 更新用户资料
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	type req struct {
		Name          *string `json:"name"`
		Avatar        *string `json:"avatar"`
		LocationLabel *string `json:"location_label"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.service.UpdateProfile(actorID, service.UpdateProfileInput{
		Name:          r.Name,
		Avatar:        r.Avatar,
		LocationLabel: r.LocationLabel,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "资料已更新", nil)
}

// UpdateLocation 更新位置共享设置
func (h *UserHandler) UpdateLocation(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	type req struct {
		ShareLocation bool     `json:"share_location"`
		Lat           *float64 `json:"lat"`
		Lon           *float64 `json:"lon"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.UpdateLocation(actorID, r.ShareLocation, r.Lat, r.Lon); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "位置设置已更新", nil)
}
