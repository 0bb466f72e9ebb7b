package domain

import "time"

// DefaultLocation and DefaultCrop are the placeholder profile values assigned
// at signup when the farmer did not provide their own. The advisory pipeline
// treats them as "profile incomplete" and skips the weather lookup.
const (
	DefaultLocation = "India"
	DefaultCrop     = "Paddy"
)

type User struct {
	Email         string    `json:"email" bson:"email"`
	Name          string    `json:"name" bson:"name"`
	Phone         string    `json:"phone" bson:"phone"`
	Location      string    `json:"location" bson:"location"`
	PreferredCrop string    `json:"preferred_crop" bson:"preferred_crop"`
	PasswordHash  string    `json:"-" bson:"hashed_password"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// HasDefaultProfile reports whether location or crop still carry placeholder
// values ("Not Set" is what older records stored before the defaults existed).
func (u User) HasDefaultProfile() bool {
	return u.Location == DefaultLocation || u.Location == "Not Set" ||
		u.PreferredCrop == DefaultCrop || u.PreferredCrop == "Not Set"
}
