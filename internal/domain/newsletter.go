package domain

import (
	"time"

	"gorm.io/gorm"
)

// Newsletter represents a newsletter subscription
type Newsletter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(100);not null" json:"email"`
	Timestamp time.Time `gorm:"<-:create;not null;index" json:"timestamp"`
}

// TableName specifies the table name for Newsletter
func (Newsletter) TableName() string {
	return "newsletters"
}

// BeforeCreate hook
func (n *Newsletter) BeforeCreate(tx *gorm.DB) error {
	if n.Timestamp.IsZero() {
		n.Timestamp = tx.NowFunc()
	}
	return nil
}

// NewsletterFields is the writable field set of a Newsletter
type NewsletterFields struct {
	Payload
	Name  Field[string] `json:"name"`
	Email Field[string] `json:"email"`
}

// Missing implements Fields
func (f *NewsletterFields) Missing() []string {
	return missing(map[string]bool{
		"name":  f.Name.Present(),
		"email": f.Email.Present(),
	}, "name", "email")
}

// Validate implements Fields
func (f *NewsletterFields) Validate() error {
	return joinErrors(
		checkNotNull("name", f.Name),
		checkNotNull("email", f.Email),
		checkLength("name", f.Name, 100),
		checkLength("email", f.Email, 100),
	)
}

// Apply implements Fields
func (f *NewsletterFields) Apply(rec *Newsletter) []string {
	var cols []string
	if f.Name.Present() {
		rec.Name = f.Name.Value
		cols = append(cols, "name")
	}
	if f.Email.Present() {
		rec.Email = f.Email.Value
		cols = append(cols, "email")
	}
	return cols
}
