package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"etkinlik-api/middleware"
	"etkinlik-api/models"
	"etkinlik-api/repositories"
	"etkinlik-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const msgNotYourReview = "Yalnızca kendi değerlendirmenizi silebilirsiniz"

type ReviewController struct {
	reviews *repositories.ReviewRepository
	events  *repositories.EventRepository
	log     *logrus.Logger
}

func NewReviewController(reviews *repositories.ReviewRepository, events *repositories.EventRepository, log *logrus.Logger) *ReviewController {
	return &ReviewController{reviews: reviews, events: events, log: log}
}

type CreateReviewRequest struct {
	Rating      int     `json:"rating" binding:"required,min=1,max=5"`
	Comment     *string `json:"comment" binding:"omitempty,max=2000"`
	IsAnonymous bool    `json:"isAnonymous"`
	UserName    string  `json:"userName" binding:"required,max=255"`
}

// ReviewView is the public shape; anonymous reviewers are masked.
type ReviewView struct {
	ID          uint      `json:"id"`
	EventID     uint      `json:"eventId"`
	Rating      int       `json:"rating"`
	Comment     *string   `json:"comment"`
	IsAnonymous bool      `json:"isAnonymous"`
	UserName    string    `json:"userName"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toReviewView(r models.Review) ReviewView {
	return ReviewView{
		ID:          r.ID,
		EventID:     r.EventID,
		Rating:      r.Rating,
		Comment:     r.Comment,
		IsAnonymous: r.IsAnonymous,
		UserName:    r.PublicName(),
		CreatedAt:   r.CreatedAt,
	}
}

func (rc *ReviewController) GetEventReviews(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	reviews, summary, err := rc.reviews.ForEvent(c.Request.Context(), eventID)
	if err != nil {
		respondStoreError(c, rc.log, err, "", "list reviews")
		return
	}

	views := make([]ReviewView, len(reviews))
	for i, r := range reviews {
		views[i] = toReviewView(r)
	}
	c.JSON(http.StatusOK, gin.H{"reviews": views, "summary": summary})
}

func (rc *ReviewController) CreateReview(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBindError(c, err)
		return
	}

	if _, err := rc.events.Get(c.Request.Context(), eventID, true); err != nil {
		respondStoreError(c, rc.log, err, "Etkinlik bulunamadı", "review lookup event")
		return
	}

	if req.Comment != nil {
		trimmed := strings.TrimSpace(*req.Comment)
		if trimmed == "" {
			req.Comment = nil
		} else {
			req.Comment = &trimmed
		}
	}
	review := models.Review{
		EventID:     eventID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		IsAnonymous: req.IsAnonymous,
		UserName:    strings.TrimSpace(req.UserName),
	}
	if userID, ok := middleware.UserID(c); ok {
		review.UserID = &userID
	}

	if err := rc.reviews.Create(c.Request.Context(), &review); err != nil {
		if errors.Is(err, repositories.ErrAlreadyReviewed) {
			utils.SendError(c, http.StatusConflict, "Bu etkinliği zaten değerlendirdiniz")
			return
		}
		respondStoreError(c, rc.log, err, "", "create review")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Değerlendirmeniz kaydedildi", "review": toReviewView(review)})
}

// DeleteOwnReview removes the caller's own review. Reviews written with a
// user token can only be removed with that user's token; older reviews
// still match on userName.
func (rc *ReviewController) DeleteOwnReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	review, err := rc.reviews.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, rc.log, err, "Değerlendirme bulunamadı", "get review")
		return
	}

	if review.UserID != nil {
		userID, signedIn := middleware.UserID(c)
		if !signedIn {
			utils.SendError(c, http.StatusUnauthorized, utils.MsgUnauthorized)
			return
		}
		if userID != *review.UserID {
			utils.SendError(c, http.StatusForbidden, msgNotYourReview)
			return
		}
		rc.delete(c, id)
		return
	}

	userName := strings.TrimSpace(c.Query("userName"))
	if userName == "" {
		utils.SendValidationError(c, &utils.ValidationError{Field: "userName", Message: "userName alanı zorunludur"})
		return
	}
	if review.UserName != userName {
		utils.SendError(c, http.StatusForbidden, msgNotYourReview)
		return
	}
	rc.delete(c, id)
}

func (rc *ReviewController) DeleteReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rc.delete(c, id)
}

func (rc *ReviewController) delete(c *gin.Context, id uint) {
	if err := rc.reviews.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, rc.log, err, "Değerlendirme bulunamadı", "delete review")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Değerlendirme silindi"})
}

// GetAllReviews is the admin moderation list; names are not masked.
func (rc *ReviewController) GetAllReviews(c *gin.Context) {
	page, limit := utils.Pagination(c, maxPageSize)
	if limit == 0 {
		limit = 50
	}
	reviews, total, err := rc.reviews.List(c.Request.Context(), page, limit)
	if err != nil {
		respondStoreError(c, rc.log, err, "", "list all reviews")
		return
	}
	utils.SendPaginated(c, reviews, page, limit, total)
}
