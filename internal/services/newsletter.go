package services

import (
	"go.uber.org/zap"

	"aisolutions/internal/database"
	"aisolutions/internal/domain"
)

// NewsletterService manages newsletter subscriptions
type NewsletterService struct {
	resource[domain.Newsletter, *domain.NewsletterFields]
}

// NewNewsletterService creates a new newsletter service
func NewNewsletterService(store *database.Store[domain.Newsletter], log *zap.Logger) *NewsletterService {
	return &NewsletterService{
		resource: resource[domain.Newsletter, *domain.NewsletterFields]{
			name:   "newsletter",
			plural: "newsletters",
			title:  "Newsletter subscription",
			store:  store,
			log:    log,
		},
	}
}
