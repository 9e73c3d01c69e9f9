package handler

import (
	"strconv"

	"locallens-server/internal/service"
	"locallens-server/pkg/jwt"
	"locallens-server/pkg/response"

	"github.com/gin-gonic/gin"
)

// InvitationHandler 邀请/通知处理器
type InvitationHandler struct {
	service      *service.InvitationService
	groupService *service.GroupService
}

// NewInvitationHandler 创建InvitationHandler实例
func NewInvitationHandler(s *service.InvitationService, groupService *service.GroupService) *InvitationHandler {
	return &InvitationHandler{service: s, groupService: groupService}
}

// InviteUser 邀请单个用户参加活动
func (h *InvitationHandler) InviteUser(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的活动ID")
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

	inv, err := h.service.InviteUser(uint(eventID), r.UserID, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "邀请已发送", gin.H{
		"invitation_id": inv.ID,
	})
}

// InviteGroup 按好友分组批量邀请
// 分组成员先在分组服务侧展开，再交给邀请服务逐个处理
func (h *InvitationHandler) InviteGroup(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的活动ID")
		return
	}

	type req struct {
		GroupID uint `json:"group_id" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	memberIDs, err := h.groupService.MemberIDs(r.GroupID, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := h.service.InviteGroup(uint(eventID), memberIDs, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "批量邀请完成", gin.H{
		"invited": created,
	})
}

// ListNotifications 获取通知列表（活动邀请）
func (h *InvitationHandler) ListNotifications(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	notifications, err := h.service.ListNotifications(actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"notifications": notifications,
		"total":         len(notifications),
	})
}

// GetUnseenCount 获取未读通知数
func (h *InvitationHandler) GetUnseenCount(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	count, err := h.service.GetUnseenCount(actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"unseen": count,
	})
}

// MarkAllSeen 全部标记为已读
func (h *InvitationHandler) MarkAllSeen(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	if err := h.service.MarkAllSeen(actorID); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "通知已全部标记为已读", nil)
}

// DeleteNotification 删除自己在某活动下的邀请通知
func (h *InvitationHandler) DeleteNotification(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	eventID, err := strconv.ParseUint(c.Param("eventId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的活动ID")
		return
	}

	if err := h.service.MarkDeleted(uint(eventID), actorID); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "通知已删除", nil)
}
