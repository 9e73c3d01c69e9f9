package handler

import (
	"strconv"

	"locallens-server/internal/service"
	"locallens-server/pkg/jwt"
	"locallens-server/pkg/response"

	"github.com/gin-gonic/gin"
)

// PlaceHandler 地点与点评处理器
type PlaceHandler struct {
	service *service.PlaceService
}

// NewPlaceHandler 创建PlaceHandler实例
func NewPlaceHandler(s *service.PlaceService) *PlaceHandler {
	return &PlaceHandler{service: s}
}

// CreatePlace 创建地点
func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	type req struct {
		Name    string   `json:"name" binding:"required"`
		Address string   `json:"address"`
		Lat     *float64 `json:"lat"`
		Lon     *float64 `json:"lon"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	place, err := h.service.CreatePlace(actorID, r.Name, r.Address, r.Lat, r.Lon)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "地点已创建", gin.H{
		"place_id": place.ID,
	})
}

// ListPlaces 获取地点列表
func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	places, err := h.service.ListPlaces()
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"places": places,
		"total":  len(places),
	})
}

// AddReview 为地点添加点评
func (h *PlaceHandler) AddReview(c *gin.Context) {
	actorID := jwt.GetActorID(c)

	placeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的地点ID")
		return
	}

	type req struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	review, err := h.service.AddReview(actorID, uint(placeID), r.Rating, r.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWithMessage(c, "点评已发布", gin.H{
		"review_id": review.ID,
	})
}

// ListReviews 获取地点的点评列表
func (h *PlaceHandler) ListReviews(c *gin.Context) {
	placeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的地点ID")
		return
	}

	reviews, err := h.service.ListReviews(uint(placeID))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"reviews": reviews,
		"total":   len(reviews),
	})
}
