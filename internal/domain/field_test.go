package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFieldsNoData(t *testing.T) {
	for _, body := range []string{"", "   ", "{}", "[]", "null", "not json", `"text"`, `{"name":`} {
		t.Run(body, func(t *testing.T) {
			var f InquiryFields
			err := DecodeFields([]byte(body), &f)
			assert.ErrorIs(t, err, ErrNoData)
		})
	}
}

func TestDecodeFieldsPresence(t *testing.T) {
	var f InquiryFields
	require.NoError(t, DecodeFields([]byte(`{"name":"Ada","phone":null,"extra":1}`), &f))

	assert.True(t, f.Provided())
	assert.True(t, f.Name.Present())
	assert.Equal(t, "Ada", f.Name.Value)
	assert.True(t, f.Phone.Set)
	assert.True(t, f.Phone.Null)
	assert.False(t, f.Phone.Present())
	assert.False(t, f.Email.Set)
	assert.Equal(t, []string{"email"}, f.Missing())
}

func TestDecodeFieldsOnlyUnknownKeys(t *testing.T) {
	var f NewsletterFields
	require.NoError(t, DecodeFields([]byte(`{"nickname":"ada"}`), &f))

	assert.True(t, f.Provided())
	assert.Equal(t, []string{"name", "email"}, f.Missing())
}

func TestDecodeFieldsTypeError(t *testing.T) {
	var f ReviewFields
	err := DecodeFields([]byte(`{"rating":"five"}`), &f)
	require.Error(t, err)
	assert.Equal(t, "Invalid value for field rating: expected int", err.Error())
}

func TestReviewMissingNamesEveryField(t *testing.T) {
	var f ReviewFields
	require.NoError(t, DecodeFields([]byte(`{"company":"Acme","rating":null}`), &f))
	assert.Equal(t, []string{"name", "review", "rating"}, f.Missing())
}

func TestReviewRatingRange(t *testing.T) {
	tests := []struct {
		body string
		ok   bool
	}{
		{`{"rating":1}`, true},
		{`{"rating":5}`, true},
		{`{"rating":0}`, false},
		{`{"rating":6}`, false},
		{`{"rating":-3}`, false},
		{`{"rating":null}`, false},
		{`{"name":"Ada"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var f ReviewFields
			require.NoError(t, DecodeFields([]byte(tt.body), &f))
			err := f.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrRatingRange)
			}
		})
	}
}

func TestValidateRejectsNullRequired(t *testing.T) {
	var f InquiryFields
	require.NoError(t, DecodeFields([]byte(`{"name":null}`), &f))
	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must not be null")
}

func TestValidateLengthLimits(t *testing.T) {
	var f InquiryFields
	f.Name = Field[string]{Value: strings.Repeat("é", 100), Set: true}
	assert.NoError(t, f.Validate(), "limits count characters, not bytes")

	f.Name.Value += "x"
	long := strings.Repeat("1", 51)
	f.Phone = Field[*string]{Value: &long, Set: true}
	err := f.Validate()
	require.Error(t, err)
	assert.Equal(t, "name must not exceed 100 characters; phone must not exceed 50 characters", err.Error())
}

func TestInquiryApply(t *testing.T) {
	phone := "555-0100"
	rec := Inquiry{ID: 7, Name: "Old", Email: "old@example.com", Phone: &phone}

	var f InquiryFields
	require.NoError(t, DecodeFields([]byte(`{"name":"New","phone":null,"id":99,"timestamp":"2020-01-01T00:00:00Z"}`), &f))
	cols := f.Apply(&rec)

	assert.Equal(t, []string{"name", "phone"}, cols)
	assert.Equal(t, uint(7), rec.ID)
	assert.Equal(t, "New", rec.Name)
	assert.Equal(t, "old@example.com", rec.Email)
	assert.Nil(t, rec.Phone)
	assert.True(t, rec.Timestamp.IsZero())
}

func TestReviewApply(t *testing.T) {
	rec := Review{Name: "Ada", Company: "Acme", Review: "Good", Rating: 3}

	var f ReviewFields
	require.NoError(t, DecodeFields([]byte(`{"rating":5,"review":"Great"}`), &f))
	cols := f.Apply(&rec)

	assert.Equal(t, []string{"review", "rating"}, cols)
	assert.Equal(t, 5, rec.Rating)
	assert.Equal(t, "Great", rec.Review)
	assert.Equal(t, "Ada", rec.Name)
}
