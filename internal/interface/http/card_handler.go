package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mesto-api/pkg/response"
)

type CardHandler struct {
	Svc    CardService
	Logger *logrus.Logger
}

func NewCardHandler(svc CardService, logger *logrus.Logger) *CardHandler {
	return &CardHandler{Svc: svc, Logger: logger}
}

type cardParams struct {
	CardID string `uri:"cardId" binding:"required,objectid"`
}

type createCardRequest struct {
	Name string `json:"name" binding:"required,notblank,min=2,max=30"`
	Link string `json:"link" binding:"required,link"`
}

func (h *CardHandler) List(c *gin.Context) {
	cards, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCards(cards), "cards", nil)
}

func (h *CardHandler) Create(c *gin.Context) {
	var req createCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	card, err := h.Svc.Create(c.Request.Context(), currentUserID(c), req.Name, req.Link)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCard(card), "card created", nil)
}

func (h *CardHandler) Delete(c *gin.Context) {
	var p cardParams
	if err := c.ShouldBindUri(&p); err != nil {
		failBinding(c, err)
		return
	}
	card, err := h.Svc.Delete(c.Request.Context(), p.CardID, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCard(card), "card deleted", nil)
}

func (h *CardHandler) Like(c *gin.Context) {
	var p cardParams
	if err := c.ShouldBindUri(&p); err != nil {
		failBinding(c, err)
		return
	}
	card, err := h.Svc.Like(c.Request.Context(), p.CardID, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCard(card), "card liked", nil)
}

func (h *CardHandler) Unlike(c *gin.Context) {
	var p cardParams
	if err := c.ShouldBindUri(&p); err != nil {
		failBinding(c, err)
		return
	}
	card, err := h.Svc.Unlike(c.Request.Context(), p.CardID, currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCard(card), "like removed", nil)
}
