package handler

import (
	"strconv"
	"time"

	"locallens-server/internal/service"
	"locallens-server/pkg/jwt"
	"locallens-server/pkg/response"

	"github.com/gin-gonic/gin"
)

// EventHandler 活动处理器
type EventHandler struct {
	service *service.EventService
}

// NewEventHandler 创建EventHandler实例
func NewEventHandler(s *service.EventService) *EventHandler {
	return &EventHandler{service: s}
}

// CreateEvent 创建活动
func (h *EventHandler) CreateEvent(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	type req struct {
		Title         string   `json:"title" binding:"required"`
		Description   string   `json:"description"`
		LocationLabel string   `json:"location_label"`
		Lat           *float64 `json:"lat"`
		Lon           *float64 `json:"lon"`
		StartsAt      string   `json:"starts_at" binding:"required"`
		Capacity      int      `json:"capacity"`
		IsPrivate     bool     `json:"is_private"`
		ImageURL      string   `json:"image_url"`
		Categories    []string `json:"categories"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		response.BadRequest(c, "starts_at格式错误，需要RFC3339")
		return
	}

	event, err := h.service.CreateEvent(actorID, service.CreateEventInput{
		Title:         r.Title,
		Description:   r.Description,
		LocationLabel: r.LocationLabel,
		Lat:           r.Lat,
		Lon:           r.Lon,
		StartsAt:      startsAt,
		Capacity:      r.Capacity,
		IsPrivate:     r.IsPrivate,
		ImageURL:      r.ImageURL,
		Categories:    r.Categories,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "活动已创建", gin.H{
		"event_id": event.ID,
	})
}

// UpdateEvent 编辑活动（仅创建者）
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的活动ID")
		return
	}

	type req struct {
		Title         *string  `json:"title"`
		Description   *string  `json:"description"`
		LocationLabel *string  `json:"location_label"`
		Lat           *float64 `json:"lat"`
		Lon           *float64 `json:"lon"`
		StartsAt      *string  `json:"starts_at"`
		Capacity      *int     `json:"capacity"`
		IsPrivate     *bool    `json:"is_private"`
		ImageURL      *string  `json:"image_url"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := service.UpdateEventInput{
		Title:         r.Title,
		Description:   r.Description,
		LocationLabel: r.LocationLabel,
		Lat:           r.Lat,
		Lon:           r.Lon,
		Capacity:      r.Capacity,
		IsPrivate:     r.IsPrivate,
		ImageURL:      r.ImageURL,
	}
	if r.StartsAt != nil {
		t, err := time.Parse(time.RFC3339, *r.StartsAt)
		if err != nil {
			response.BadRequest(c, "starts_at格式错误，需要RFC3339")
			return
		}
		input.StartsAt = &t
	}

	if err := h.service.UpdateEvent(uint(eventID), actorID, input); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "活动已更新", nil)
}

// GetEvent 获取活动详情
func (h *EventHandler) GetEvent(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的活动ID")
		return
	}

	info, err := h.service.GetEvent(uint(eventID), actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, info)
}

// ListEvents 获取对自己可见的活动列表
func (h *EventHandler) ListEvents(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	events, err := h.service.ListEvents(actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"events": events,
		"total":  len(events),
	})
}
