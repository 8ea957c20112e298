package controllers

import (
	"strconv"

	"quickbite/pkg/resp"
	"quickbite/services"
	"quickbite/utils"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Svc *services.ChatService
}

func NewChatController(svc *services.ChatService) *ChatController {
	return &ChatController{Svc: svc}
}

// GET /chat/rooms
func (ctl *ChatController) MyRooms(c *gin.Context) {
	rooms, err := ctl.Svc.GetRoomsByUser(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": rooms})
}

// GET /chat/rooms/:id/messages?since= — since รองรับ client polling
func (ctl *ChatController) Messages(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))
	since, _ := strconv.Atoi(c.DefaultQuery("since", "0"))

	msgs, err := ctl.Svc.GetMessages(uint(roomID), utils.CurrentUserID(c), utils.CurrentRole(c), uint(since))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": msgs})
}

type SendMessageReq struct {
	Body string `json:"body" binding:"required"`
}

// POST /chat/rooms/:id/messages
func (ctl *ChatController) Send(c *gin.Context) {
	roomID, _ := strconv.Atoi(c.Param("id"))
	var req SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	msg, err := ctl.Svc.SendMessage(uint(roomID), utils.CurrentUserID(c), utils.CurrentRole(c), req.Body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp.Created(c, msg)
}
