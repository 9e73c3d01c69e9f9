package handler

import (
	"strconv"

	"locallens-server/internal/service"
	"locallens-server/pkg/jwt"
	"locallens-server/pkg/response"

	"github.com/gin-gonic/gin"
)

// AttendanceHandler 活动出席处理器
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler 创建AttendanceHandler实例
func NewAttendanceHandler(s *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: s}
}

// SetAttendance 设置自己的出席状态（going/maybe/declined）
func (h *AttendanceHandler) SetAttendance(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的活动ID")
		return
	}

	type req struct {
		Status string `json:"status" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.SetAttendance(uint(eventID), actorID, r.Status); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "出席状态已更新", nil)
}

// GetAttendingUsers 获取活动的参加者列表
func (h *AttendanceHandler) GetAttendingUsers(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的活动ID")
		return
	}

	users, err := h.service.GetAttendingUsers(uint(eventID))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"attendees": users,
		"total":     len(users),
	})
}

// GetUserEventStats 获取用户的活动统计（创建数/参加数）
func (h *AttendanceHandler) GetUserEventStats(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	stats, err := h.service.GetUserEventStats(uint(userID))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, stats)
}
