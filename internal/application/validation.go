package application

import "strings"

// ValidateProfile checks the registration form. It reports problems only and
// never rewrites the profile; Register stores whatever it is given.
func ValidateProfile(profile UserProfile) error {
	vErr := &ValidationError{}
	if strings.TrimSpace(profile.Name) == "" {
		vErr.add("name", "required")
	}
	email := strings.TrimSpace(profile.Email)
	switch {
	case email == "":
		vErr.add("email", "required")
	case !strings.Contains(email, "@"):
		vErr.add("email", "invalid")
	}
	if profile.SensoryProfile != "" && !profile.SensoryProfile.Valid() {
		vErr.add("sensoryProfile", "invalid")
	}
	return vErr.errOrNil()
}

// ValidateReservationInput requires room name, date and time.
func ValidateReservationInput(input ReservationInput) error {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.RoomName) == "" {
		vErr.add("roomName", "required")
	}
	if strings.TrimSpace(input.Date) == "" {
		vErr.add("date", "required")
	}
	if strings.TrimSpace(input.Time) == "" {
		vErr.add("time", "required")
	}
	return vErr.errOrNil()
}
