package handlers

import (
	"context"
	"errors"
	"net/http"

	"social-service/internal/metrics"
	"social-service/internal/models"
	"social-service/internal/services"
	"social-service/internal/utils"
	"social-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	friendService *services.FriendService
}

func NewFriendHandler(friendService *services.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// SendRequest godoc
// @Summary Send a friend request
// @Description Send a friend request to another user. At most 3 requests per minute.
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SendFriendRequest true "Recipient"
// @Success 201 {object} response.MessageResponse{data=models.FriendRequestResponse} "Friend request sent"
// @Success 200 {object} response.MessageResponse "Already pending or already friends"
// @Failure 400 {object} response.ErrorResponse "Self request, rate limited or invalid input"
// @Failure 404 {object} response.ErrorResponse "Recipient not found"
// @Router /friends/requests [post]
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "", err.Error())
		return
	}

	var req models.SendFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.friendService.SendRequest(c.Request.Context(), userID, req.RecipientID)
	if err != nil {
		metrics.RecordFriendOperation(metrics.OpSend, errorLabel(err))
		if errors.Is(err, services.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Friend not found.", "")
			return
		}
		writeServiceError(c, err)
		return
	}
	metrics.RecordFriendOperation(metrics.OpSend, result.Outcome.String())

	switch result.Outcome {
	case services.OutcomeAlreadyPending:
		response.Success(c, http.StatusOK, response.CodeAlreadyPending, "", nil)
	case services.OutcomeAlreadyFriends:
		response.Success(c, http.StatusOK, response.CodeAlreadyFriends, "", nil)
	default:
		response.Success(c, http.StatusCreated, response.CodeCreated, "Friend request sent successfully.",
			models.NewFriendRequestResponse(result.Request))
	}
}

// AcceptRequest godoc
// @Summary Accept a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ResolveFriendRequest true "Request id"
// @Success 200 {object} response.MessageResponse{data=models.FriendRequestResponse}
// @Failure 400 {object} response.ErrorResponse "Missing id or request no longer pending"
// @Failure 403 {object} response.ErrorResponse
// @Router /friends/requests/accept [post]
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	h.resolve(c, metrics.OpAccept, h.friendService.AcceptRequest, "Friend request accepted successfully.")
}

// RejectRequest godoc
// @Summary Reject a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ResolveFriendRequest true "Request id"
// @Success 200 {object} response.MessageResponse{data=models.FriendRequestResponse}
// @Failure 400 {object} response.ErrorResponse "Missing id or request no longer pending"
// @Failure 403 {object} response.ErrorResponse
// @Router /friends/requests/reject [post]
func (h *FriendHandler) RejectRequest(c *gin.Context) {
	h.resolve(c, metrics.OpReject, h.friendService.RejectRequest, "Friend request rejected successfully.")
}

type resolveFunc func(ctx context.Context, actingUserID, requestID uint) (*models.FriendRequest, error)

func (h *FriendHandler) resolve(c *gin.Context, op string, fn resolveFunc, message string) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "", err.Error())
		return
	}

	var req models.ResolveFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	resolved, err := fn(c.Request.Context(), userID, req.RequestID)
	if err != nil {
		metrics.RecordFriendOperation(op, errorLabel(err))
		writeServiceError(c, err)
		return
	}
	metrics.RecordFriendOperation(op, resolved.Status.String())

	response.Success(c, http.StatusOK, response.CodeSuccess, message, models.NewFriendRequestResponse(resolved))
}

// ListPending godoc
// @Summary List pending requests
// @Description Outgoing friend requests that are still pending, oldest first
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} models.Page[models.PendingRequestResponse]
// @Router /friends/requests/pending [get]
func (h *FriendHandler) ListPending(c *gin.Context) {
	userID, page, ok := listParams(c)
	if !ok {
		return
	}

	pending, err := h.friendService.ListPending(c.Request.Context(), userID, page)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pending)
}

// ListFriends godoc
// @Summary List friends
// @Description Users whose friend request from the caller was accepted
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} models.Page[models.UserResponse]
// @Router /friends [get]
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, page, ok := listParams(c)
	if !ok {
		return
	}

	friends, err := h.friendService.ListFriends(c.Request.Context(), userID, page)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, friends)
}

func listParams(c *gin.Context) (uint, models.PageQuery, bool) {
	var page models.PageQuery
	userID, err := utils.GetUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "", err.Error())
		return 0, page, false
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		writeBindError(c, err)
		return 0, page, false
	}
	return userID, page, true
}
