package taglang

import "regexp"

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_+][A-Za-z0-9_+:]*$`)
	// tags never start with '+', which is the positive guard sigil
	tagPattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_+:]*$`)
	methodPattern = regexp.MustCompile(`^[A-Za-z_+][A-Za-z0-9_+]*(:[A-Za-z_+][A-Za-z0-9_+]*)+$`)
	taskPattern   = identifierPattern
)

func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

func ValidTagName(name string) bool {
	return tagPattern.MatchString(name)
}

func ValidMethod(name string) bool {
	return methodPattern.MatchString(name)
}

func ValidTaskName(name string) bool {
	return taskPattern.MatchString(name)
}
