package handler

import (
	"strconv"

	"locallens-server/internal/service"
	"locallens-server/pkg/jwt"
	"locallens-server/pkg/response"

	"github.com/gin-gonic/gin"
)

// FriendHandler 好友处理器
type FriendHandler struct {
	service *service.FriendService
}

// NewFriendHandler 创建FriendHandler实例
func NewFriendHandler(s *service.FriendService) *FriendHandler {
	return &FriendHandler{service: s}
}

// SendRequest 发送好友请求
func (h *FriendHandler) SendRequest(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	type req struct {
		ToUserID uint `json:"to_user_id" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	request, err := h.service.SendFriendRequest(actorID, r.ToUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "好友请求已发送", gin.H{
		"request_id": request.ID,
	})
}

// AcceptRequest 接受好友请求
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的请求ID")
		return
	}

	if err := h.service.AcceptFriendRequest(uint(requestID), actorID); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "已接受好友请求", nil)
}

// RejectRequest 拒绝好友请求
func (h *FriendHandler) RejectRequest(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的请求ID")
		return
	}

	if err := h.service.RejectFriendRequest(uint(requestID), actorID); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "已拒绝好友请求", nil)
}

// CancelRequest 撤回自己发出的好友请求
func (h *FriendHandler) CancelRequest(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的请求ID")
		return
	}

	if err := h.service.CancelFriendRequest(uint(requestID), actorID); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "已撤回好友请求", nil)
}

// ListFriends 获取好友列表
func (h *FriendHandler) ListFriends(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	friends, err := h.service.ListFriends(actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"friends": friends,
		"total":   len(friends),
	})
}

// ListPendingRequests 获取待处理的好友请求（双向）
func (h *FriendHandler) ListPendingRequests(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	requests, err := h.service.ListPendingRequests(actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}
