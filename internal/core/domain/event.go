package domain

import "fmt"

// HookEventType enumerates the hook events published by the tusd server
type HookEventType string

const (
	HookPreCreate     HookEventType = "pre-create"
	HookPostCreate    HookEventType = "post-create"
	HookPostReceive   HookEventType = "post-receive"
	HookPostFinish    HookEventType = "post-finish"
	HookPostTerminate HookEventType = "post-terminate"
)

// ParseHookEventType maps a Hook-Name header value onto the closed set of
// supported event types.
func ParseHookEventType(name string) (HookEventType, error) {
	switch HookEventType(name) {
	case HookPreCreate, HookPostCreate, HookPostReceive, HookPostFinish, HookPostTerminate:
		return HookEventType(name), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedEvent, name)
	}
}

// TUSFileInfo is the JSON payload the tusd server posts with every hook event
type TUSFileInfo struct {
	TusID    string          `json:"ID"`
	Size     int64           `json:"Size"`
	Offset   int64           `json:"Offset"`
	Metadata TUSFileMetadata `json:"MetaData"`
}

// TUSFileMetadata carries the client-supplied metadata of an upload
type TUSFileMetadata struct {
	Filename     string `json:"name"`
	SubmissionID string `json:"submissionID"`
	JWTToken     string `json:"jwtToken"`
}

// TokenClaims holds the verified claims of a security token
type TokenClaims struct {
	Subject string
}
