package domain

import (
	"time"

	"gorm.io/gorm"
)

// Inquiry represents a business inquiry submitted from the contact form
type Inquiry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Email      string    `gorm:"type:varchar(100);not null" json:"email"`
	Phone      *string   `gorm:"type:varchar(50)" json:"phone"`
	Company    *string   `gorm:"type:varchar(100)" json:"company"`
	Country    *string   `gorm:"type:varchar(100)" json:"country"`
	JobTitle   *string   `gorm:"type:varchar(100)" json:"job_title"`
	JobDetails *string   `gorm:"type:text" json:"job_details"`
	Timestamp  time.Time `gorm:"<-:create;not null;index" json:"timestamp"`
}

// TableName specifies the table name for Inquiry
func (Inquiry) TableName() string {
	return "inquiries"
}

// BeforeCreate hook
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.Timestamp.IsZero() {
		i.Timestamp = tx.NowFunc()
	}
	return nil
}

// InquiryFields is the writable field set of an Inquiry
type InquiryFields struct {
	Payload
	Name       Field[string]  `json:"name"`
	Email      Field[string]  `json:"email"`
	Phone      Field[*string] `json:"phone"`
	Company    Field[*string] `json:"company"`
	Country    Field[*string] `json:"country"`
	JobTitle   Field[*string] `json:"job_title"`
	JobDetails Field[*string] `json:"job_details"`
}

// Missing implements Fields
func (f *InquiryFields) Missing() []string {
	return missing(map[string]bool{
		"name":  f.Name.Present(),
		"email": f.Email.Present(),
	}, "name", "email")
}

// Validate implements Fields
func (f *InquiryFields) Validate() error {
	return joinErrors(
		checkNotNull("name", f.Name),
		checkNotNull("email", f.Email),
		checkLength("name", f.Name, 100),
		checkLength("email", f.Email, 100),
		checkOptionalLength("phone", f.Phone, 50),
		checkOptionalLength("company", f.Company, 100),
		checkOptionalLength("country", f.Country, 100),
		checkOptionalLength("job_title", f.JobTitle, 100),
	)
}

// Apply implements Fields
func (f *InquiryFields) Apply(rec *Inquiry) []string {
	var cols []string
	if f.Name.Present() {
		rec.Name = f.Name.Value
		cols = append(cols, "name")
	}
	if f.Email.Present() {
		rec.Email = f.Email.Value
		cols = append(cols, "email")
	}
	if f.Phone.Set {
		rec.Phone = f.Phone.Value
		cols = append(cols, "phone")
	}
	if f.Company.Set {
		rec.Company = f.Company.Value
		cols = append(cols, "company")
	}
	if f.Country.Set {
		rec.Country = f.Country.Value
		cols = append(cols, "country")
	}
	if f.JobTitle.Set {
		rec.JobTitle = f.JobTitle.Value
		cols = append(cols, "job_title")
	}
	if f.JobDetails.Set {
		rec.JobDetails = f.JobDetails.Value
		cols = append(cols, "job_details")
	}
	return cols
}
