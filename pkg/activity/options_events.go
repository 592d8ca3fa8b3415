package activity

import (
	"strings"
	"time"
)

const (
	// VerbOptionsShown is emitted after a show request printed its output.
	VerbOptionsShown = "options.shown"
	// VerbOptionsShowFailed is emitted after a show request reported an error.
	VerbOptionsShowFailed = "options.show_failed"

	objectTypeOptions = "options"
)

// ScopeContext describes the registry a show request was resolved against.
type ScopeContext struct {
	Name     string
	Label    string
	Global   bool
	Target   string
	Metadata map[string]any
}

// OptionsEventInput describes the common fields for show-options events.
type OptionsEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	ObjectID   string
	Channel    string
	Recipients []string
	Option     string
	Mode       string
	Verbose    bool
	Lines      int
	ErrorKind  string
	Scope      ScopeContext
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildOptionsShownEvent constructs the event for a successful show request.
func BuildOptionsShownEvent(input OptionsEventInput) Event {
	return buildOptionsEvent(VerbOptionsShown, input)
}

// BuildOptionsShowFailedEvent constructs the event for a failed show request.
// ErrorKind is recorded under the "error_kind" metadata key.
func BuildOptionsShowFailedEvent(input OptionsEventInput) Event {
	return buildOptionsEvent(VerbOptionsShowFailed, input)
}

func buildOptionsEvent(verb string, input OptionsEventInput) Event {
	metadata := ensureMetadata(cloneMap(input.Metadata))
	metadata["mode"] = input.Mode
	metadata["lines"] = input.Lines
	if input.Verbose {
		metadata["verbose"] = true
	}
	if input.Option != "" {
		metadata["option"] = input.Option
	}
	if input.ErrorKind != "" {
		metadata["error_kind"] = input.ErrorKind
	}
	if input.Scope.Name != "" {
		metadata["scope_name"] = input.Scope.Name
		metadata["scope_global"] = input.Scope.Global
		if input.Scope.Label != "" {
			metadata["scope_label"] = input.Scope.Label
		}
		if input.Scope.Target != "" {
			metadata["scope_target"] = input.Scope.Target
		}
		if len(input.Scope.Metadata) > 0 {
			metadata["scope_metadata"] = cloneMap(input.Scope.Metadata)
		}
	}

	objectID := strings.TrimSpace(input.ObjectID)
	if objectID == "" {
		objectID = strings.TrimSpace(input.Scope.Name)
	}
	if objectID == "" {
		objectID = objectTypeOptions
	}

	var recipients []string
	if len(input.Recipients) > 0 {
		recipients = append([]string{}, input.Recipients...)
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectTypeOptions,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Recipients: recipients,
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
