package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studylink/api-go/services"
	"github.com/studylink/api-go/utils"
)

type MessageController struct {
	Mailbox *services.MailboxService
	Members *services.MemberService
}

func NewMessageController(mailbox *services.MailboxService, members *services.MemberService) *MessageController {
	return &MessageController{Mailbox: mailbox, Members: members}
}

func (mc *MessageController) Send(c *gin.Context) {
	user := utils.GetUser(c)

	var input struct {
		Nickname string `json:"nickname" binding:"required"`
		Content  string `json:"content" binding:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receiver, err := mc.Members.GetByNickname(input.Nickname)
	if err != nil {
		respondError(c, err)
		return
	}

	msg, err := mc.Mailbox.Send(user.UserID, receiver.ID, input.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (mc *MessageController) Received(c *gin.Context) {
	user := utils.GetUser(c)
	msgs, err := mc.Mailbox.Received(user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (mc *MessageController) Sent(c *gin.Context) {
	user := utils.GetUser(c)
	msgs, err := mc.Mailbox.Sent(user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

type clearRequest struct {
	MessageIDs []uint `json:"messageIds" binding:"required,min=1"`
}

func (mc *MessageController) ClearReceived(c *gin.Context) {
	user := utils.GetUser(c)
	var req clearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := mc.Mailbox.ClearForReceiver(user.UserID, req.MessageIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": count})
}

func (mc *MessageController) ClearSent(c *gin.Context) {
	user := utils.GetUser(c)
	var req clearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := mc.Mailbox.ClearForSender(user.UserID, req.MessageIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": count})
}

func (mc *MessageController) ClearAll(c *gin.Context) {
	user := utils.GetUser(c)

	var input struct {
		Side string `json:"side" binding:"required,oneof=sent received"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := mc.Mailbox.ClearAllForUser(user.UserID, services.MailboxSide(input.Side)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkRead handles POST /messages/read/:id.
func (mc *MessageController) MarkRead(c *gin.Context) {
	user := utils.GetUser(c)
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
		return
	}

	changed, err := mc.Mailbox.MarkRead(user.UserID, uint(messageID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

func (mc *MessageController) UnreadCount(c *gin.Context) {
	user := utils.GetUser(c)
	count, err := mc.Mailbox.UnreadCount(user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
