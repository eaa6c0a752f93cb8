package domain

import (
	"fmt"
	"strings"
)

// DateConfigurationError reports invalid date inputs (bad literal
// format or a day count below one). Fatal, no retry.
type DateConfigurationError struct {
	Reason string
}

func (e *DateConfigurationError) Error() string {
	return "date configuration error: " + e.Reason
}

// DateIntegrityError reports a violated date allocation post-condition:
// wrong output length or duplicate date strings
type DateIntegrityError struct {
	Reason string
}

func (e *DateIntegrityError) Error() string {
	return "date integrity error: " + e.Reason
}

// ParticipantError reports a conversation that resolved to zero
// participants while a message required an author
type ParticipantError struct {
	ChannelID string
}

func (e *ParticipantError) Error() string {
	return fmt.Sprintf("conversation %s has no participants to author messages", e.ChannelID)
}

// CoverageError reports enabled toggles that produced zero evidence in
// a finished day. Lists every missing requirement for diagnosability.
type CoverageError struct {
	Date    string
	Missing []string
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("coverage error for %s: no evidence for %s", e.Date, strings.Join(e.Missing, ", "))
}

// FileCountMismatchError reports a conversation folder whose date file
// count does not match the configured day count
type FileCountMismatchError struct {
	Folder string
	Got    int
	Want   int
}

func (e *FileCountMismatchError) Error() string {
	return fmt.Sprintf("date file count mismatch for %s: generated %d, expected %d", e.Folder, e.Got, e.Want)
}
