package domain

// MessageType identifies a cross-context request or notification
type MessageType string

const (
	// MsgShuffleWallpaper asks the background context to run a shuffle
	MsgShuffleWallpaper MessageType = "ShuffleWallpaper"
	// MsgShuffleSettingsUpdated re-evaluates the scheduler immediately
	MsgShuffleSettingsUpdated MessageType = "ShuffleSettingsUpdated"
	// MsgGetWallpaper returns the current wallpaper
	MsgGetWallpaper MessageType = "GetWallpaper"
	// MsgPageOpened is the page-lifecycle event sent by a new page context
	MsgPageOpened MessageType = "PageOpened"
	// MsgWallpaperChanged is broadcast after the current wallpaper was replaced
	MsgWallpaperChanged MessageType = "WallpaperChanged"
)

// Request is the envelope sent from one context to another
type Request struct {
	ID      string      `json:"id,omitempty"`
	ReplyTo string      `json:"replyTo,omitempty"`
	Type    MessageType `json:"type"`

	// ShuffleWallpaper payload; on ShuffleSettingsUpdated these update the persisted defaults
	Source     RefreshSource `json:"source,omitempty"`
	NsfwFilter NsfwFilter    `json:"nsfwFilter,omitempty"`

	// ShuffleSettingsUpdated payload
	IsEnabled     *bool `json:"isEnabled,omitempty"`
	Interval      *int  `json:"interval,omitempty"`
	NewTabEnabled *bool `json:"newTabEnabled,omitempty"`
}

// Response answers a Request
type Response struct {
	ID        string     `json:"id,omitempty"`
	Success   bool       `json:"success"`
	Error     string     `json:"error,omitempty"`
	Wallpaper *Wallpaper `json:"wallpaper,omitempty"`
}

// Notification is pushed to every interested context
type Notification struct {
	Type      MessageType `json:"type"`
	Wallpaper *Wallpaper  `json:"wallpaper,omitempty"`
}

// Failure builds an unsuccessful response for req
func Failure(req Request, err error) Response {
	return Response{ID: req.ID, Success: false, Error: err.Error()}
}

// Merge applies the fields set in a ShuffleSettingsUpdated request and normalizes the result
func (s Settings) Merge(req Request) Settings {
	if req.IsEnabled != nil {
		s.IsShuffleEnabled = *req.IsEnabled
	}
	if req.Interval != nil {
		s.ShuffleInterval = *req.Interval
	}
	if req.NewTabEnabled != nil {
		s.ShuffleOnNewTab = *req.NewTabEnabled
	}
	if req.Source.Valid() {
		s.RefreshSource = req.Source
	}
	if req.NsfwFilter.Valid() {
		s.RefreshNsfwFilter = req.NsfwFilter
	}
	return s.Normalize()
}
