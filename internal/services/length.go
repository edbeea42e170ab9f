package services

import (
	"fmt"

	"precis/internal/models"
)

var lengthProfiles = map[models.Length]models.LengthProfile{
	models.LengthBrief:    {MinTokens: 20, MaxTokens: 50},
	models.LengthMedium:   {MinTokens: 50, MaxTokens: 130},
	models.LengthDetailed: {MinTokens: 100, MaxTokens: 250},
}

// ResolveLength maps a length preset to its token budget.
// It panics on a value outside models.Lengths: that is a programming error.
func ResolveLength(length models.Length) models.LengthProfile {
	profile, ok := lengthProfiles[length]
	if !ok {
		panic(fmt.Sprintf("services: no length profile for %v", length))
	}
	return profile
}
