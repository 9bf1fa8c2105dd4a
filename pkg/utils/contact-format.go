package utils

import (
	"net/mail"
	"regexp"
	"strings"
)

func SanitizeEmail(email string) string {
	email = strings.ToLower(email)
	email = strings.Trim(email, " \n\r")
	return email
}

// CheckEmailFormat to check if input string is a correct email address
func CheckEmailFormat(email string) bool {
	if len(email) > 254 {
		return false
	}
	_, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// additional regex check for correct email format
	emailRule := regexp.MustCompile(`^[a-zA-Z0-9._%+'-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRule.MatchString(email)
}

var phoneRule = regexp.MustCompile(`^\+?[0-9][0-9\s().-]{5,24}$`)

// CheckPhoneFormat accepts international and local notations with common
// separators.
func CheckPhoneFormat(phone string) bool {
	phone = strings.TrimSpace(phone)
	return phoneRule.MatchString(phone)
}

// BlurEmailAddress transforms an email address to reduce exposed personal info
func BlurEmailAddress(email string) string {
	items := strings.Split(email, "@")
	if len(items) < 1 || len(items[0]) < 1 {
		return "****@**"
	}
	blurredEmail := string(items[0][0]) + "****@" + strings.Join(items[1:], "")
	return blurredEmail
}
