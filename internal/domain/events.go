package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDirectoryLoaded    EventType = "DirectoryLoaded"
	EventOperationFailed    EventType = "OperationFailed"
	EventOperationCompleted EventType = "OperationCompleted"
	EventSelectionConfirmed EventType = "SelectionConfirmed"
	EventPickerCancelled    EventType = "PickerCancelled"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
	EventConfigChanged      EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DirectoryLoadedEvent is emitted after a listing has been fetched and filtered
type DirectoryLoadedEvent struct {
	Path      string
	Count     int
	DiskSpace DiskSpace
	Err       error // set when the listing fell back to empty
}

func (e DirectoryLoadedEvent) Type() EventType { return EventDirectoryLoaded }

// OperationFailedEvent is emitted when a create/upload/delete/rename call fails
type OperationFailedEvent struct {
	Op   string
	Path string
	Err  error
}

func (e OperationFailedEvent) Type() EventType { return EventOperationFailed }

// OperationCompletedEvent is emitted when a mutation succeeded
type OperationCompletedEvent struct {
	Op   string
	Path string
}

func (e OperationCompletedEvent) Type() EventType { return EventOperationCompleted }

// SelectionConfirmedEvent carries the final selection snapshot
type SelectionConfirmedEvent struct {
	Files []FileEntry
}

func (e SelectionConfirmedEvent) Type() EventType { return EventSelectionConfirmed }

// PickerCancelledEvent is emitted when the dialog is dismissed without confirmation
type PickerCancelledEvent struct{}

func (e PickerCancelledEvent) Type() EventType { return EventPickerCancelled }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when user-facing preferences need to be persisted.
// Seq increases with every change from one publisher; zero means unordered.
type ConfigChangedEvent struct {
	Seq          uint64
	SortKey      string
	Descending   bool
	FoldersFirst bool
	ViewMode     string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
