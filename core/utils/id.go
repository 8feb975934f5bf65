package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateReference returns a short confirmation reference embedded in the
// confirmation email and the thank-you redirect.
func GenerateReference() string {
	id, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ", 8)
	if err != nil {
		return ""
	}
	return id
}
