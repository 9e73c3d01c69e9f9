package handler

import (
	"strconv"

	"locallens-server/internal/service"
	"locallens-server/pkg/jwt"
	"locallens-server/pkg/response"

	"github.com/gin-gonic/gin"
)

// GroupHandler 好友分组处理器
type GroupHandler struct {
	service *service.GroupService
}

// NewGroupHandler 创建GroupHandler实例
func NewGroupHandler(s *service.GroupService) *GroupHandler {
	return &GroupHandler{service: s}
}

// CreateGroup 创建好友分组
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	type req struct {
		Name string `json:"name" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	group, err := h.service.CreateGroup(actorID, r.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "分组已创建", gin.H{
		"group_id": group.ID,
		"name":     group.Name,
	})
}

// AddMember 向分组添加好友
func (h *GroupHandler) AddMember(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的分组ID")
		return
	}

	type req struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.AddMember(uint(groupID), r.UserID, actorID); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "成员已添加", nil)
}

// RemoveMember 从分组移除好友
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的分组ID")
		return
	}
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	if err := h.service.RemoveMember(uint(groupID), uint(userID), actorID); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "成员已移除", nil)
}

// ListGroups 获取自己的分组列表
func (h *GroupHandler) ListGroups(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	groups, err := h.service.ListGroups(actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"groups": groups,
		"total":  len(groups),
	})
}

// ListMembers 获取分组成员
func (h *GroupHandler) ListMembers(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的分组ID")
		return
	}

	members, err := h.service.ListMembers(uint(groupID), actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"members": members,
		"total":   len(members),
	})
}
