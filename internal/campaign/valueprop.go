package campaign

import (
	"fmt"
	"strings"
)

// GenericValueProposition is used when any of the inputs is missing.
const GenericValueProposition = "I'm very interested in this role and believe my skills are a strong match."

// ValueProposition composes the personal pitch sentence from the framework
// column and the two free-text columns. It never fails.
func ValueProposition(framework, strength, audienceValue string) string {
	framework = strings.TrimSpace(framework)
	strength = strings.TrimSpace(strength)
	audienceValue = strings.TrimSpace(audienceValue)
	if framework == "" || strength == "" || audienceValue == "" {
		return GenericValueProposition
	}

	switch strings.ToLower(framework) {
	case "passion":
		return fmt.Sprintf("I'm passionate about %s to achieve %s.", strength, audienceValue)
	case "known_for":
		return fmt.Sprintf("I'm known for my %s to achieve %s.", strength, audienceValue)
	case "mission":
		return fmt.Sprintf("I'm on a mission to %s to achieve %s.", strength, audienceValue)
	default:
		return fmt.Sprintf("My experience in %s can help achieve %s.", strength, audienceValue)
	}
}
