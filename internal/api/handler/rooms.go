package handler

import (
	"log"
	"net/http"

	"quickmatch/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// MatchRoom (GET /api/rooms) забирає випадкову кімнату з пулу очікування та
// видає токени для неї. Порожній пул — нормальний результат, не помилка.
func (h *Handler) MatchRoom(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId is required"})
		return
	}

	room, err := h.Storage.ClaimWaitingRoom()
	if err != nil {
		log.Printf("ERROR: Failed to fetch rooms: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if room == nil {
		// Немає жодної кімнати в очікуванні.
		c.JSON(http.StatusOK, gin.H{"rooms": []models.Room{}, "token": nil})
		return
	}

	rtcToken, err := h.Tokens.RtcToken(room.RoomID, userID)
	if err != nil {
		log.Printf("ERROR: Failed to issue RTC token for room %s: %v", room.RoomID, err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	rtmToken, err := h.Tokens.RtmToken(userID)
	if err != nil {
		log.Printf("ERROR: Failed to issue RTM token for user %s: %v", userID, err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rooms":    []models.Room{*room},
		"rtcToken": rtcToken,
		"rtmToken": rtmToken,
	})
}

// CreateRoom (POST /api/rooms) створює нову кімнату зі статусом "waiting"
// та видає токени для її творця.
func (h *Handler) CreateRoom(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId is required"})
		return
	}

	room, err := h.Storage.CreateRoom()
	if err != nil {
		log.Printf("ERROR: Failed to create room: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create room"})
		return
	}

	rtcToken, err := h.Tokens.RtcToken(room.RoomID, userID)
	if err != nil {
		log.Printf("ERROR: Failed to issue RTC token for room %s: %v", room.RoomID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create room"})
		return
	}

	rtmToken, err := h.Tokens.RtmToken(userID)
	if err != nil {
		log.Printf("ERROR: Failed to issue RTM token for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room":     room,
		"rtcToken": rtcToken,
		"rtmToken": rtmToken,
	})
}

// ReleaseRoom (PUT /api/rooms/:roomId) повертає кімнату в статус "waiting".
// Будь-яка помилка, включно з невідомим RoomID, віддається як загальна 500.
func (h *Handler) ReleaseRoom(c *gin.Context) {
	roomID := c.Param("roomId")

	if err := h.Storage.ReleaseRoom(roomID); err != nil {
		log.Printf("ERROR: Failed to release room %s: %v", roomID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success"})
}

// Health (GET /health) повертає розмір пулу очікування.
func (h *Handler) Health(c *gin.Context) {
	waiting, err := h.Storage.CountWaitingRooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "waitingRooms": waiting})
}
