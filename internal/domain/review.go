package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ErrRatingRange is returned for a rating outside [MinRating, MaxRating]
var ErrRatingRange = errors.New("Rating must be between 1 and 5")

// Review represents a customer review
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Company   string    `gorm:"type:varchar(100);not null" json:"company"`
	Review    string    `gorm:"type:text;not null" json:"review"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Timestamp time.Time `gorm:"<-:create;not null;index" json:"timestamp"`
}

// TableName specifies the table name for Review
func (Review) TableName() string {
	return "reviews"
}

// BeforeCreate hook
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.Timestamp.IsZero() {
		r.Timestamp = tx.NowFunc()
	}
	return nil
}

// ReviewFields is the writable field set of a Review
type ReviewFields struct {
	Payload
	Name    Field[string] `json:"name"`
	Company Field[string] `json:"company"`
	Review  Field[string] `json:"review"`
	Rating  Field[int]    `json:"rating"`
}

// Missing implements Fields
func (f *ReviewFields) Missing() []string {
	return missing(map[string]bool{
		"name":    f.Name.Present(),
		"company": f.Company.Present(),
		"review":  f.Review.Present(),
		"rating":  f.Rating.Present(),
	}, "name", "company", "review", "rating")
}

// Validate implements Fields
func (f *ReviewFields) Validate() error {
	if f.Rating.Set && (f.Rating.Null || f.Rating.Value < MinRating || f.Rating.Value > MaxRating) {
		return ErrRatingRange
	}
	return joinErrors(
		checkNotNull("name", f.Name),
		checkNotNull("company", f.Company),
		checkNotNull("review", f.Review),
		checkLength("name", f.Name, 100),
		checkLength("company", f.Company, 100),
	)
}

// Apply implements Fields
func (f *ReviewFields) Apply(rec *Review) []string {
	var cols []string
	if f.Name.Present() {
		rec.Name = f.Name.Value
		cols = append(cols, "name")
	}
	if f.Company.Present() {
		rec.Company = f.Company.Value
		cols = append(cols, "company")
	}
	if f.Review.Present() {
		rec.Review = f.Review.Value
		cols = append(cols, "review")
	}
	if f.Rating.Present() {
		rec.Rating = f.Rating.Value
		cols = append(cols, "rating")
	}
	return cols
}
