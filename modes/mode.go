package modes

// Mode selects environment dependent behavior, like which config files are read.
type Mode uint8

const (
	ModeDevelopment Mode = iota
	ModeProduction
)

func (m Mode) String() string {
	switch m {
	case ModeDevelopment:
		return "development"
	case ModeProduction:
		return "production"
	}
	return "unknown"
}

// ReadsSystemConfig reports whether files outside the working directory are consulted.
func (m Mode) ReadsSystemConfig() bool {
	return m == ModeProduction
}
