package services

import (
	"go.uber.org/zap"

	"aisolutions/internal/database"
	"aisolutions/internal/domain"
)

// ReviewService manages customer reviews
type ReviewService struct {
	resource[domain.Review, *domain.ReviewFields]
}

// NewReviewService creates a new review service
func NewReviewService(store *database.Store[domain.Review], log *zap.Logger) *ReviewService {
	return &ReviewService{
		resource: resource[domain.Review, *domain.ReviewFields]{
			name:   "review",
			plural: "reviews",
			title:  "Review",
			store:  store,
			log:    log,
		},
	}
}
