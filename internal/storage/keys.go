package storage

// Keys of the durable key-value area. Values are JSON records.
const (
	KeyCurrentWallpaper = "currentWallpaper"
	KeyLibrary          = "wallpaperLibrary"
	KeySettings         = "settings"
	KeyIsShuffleEnabled = "isShuffleEnabled"
	KeyShuffleInterval  = "shuffleInterval"
	KeyLastShuffleTime  = "lastShuffleTime"
)

// TrackedKeys are counted against the storage quota
var TrackedKeys = []string{
	KeyCurrentWallpaper,
	KeyLibrary,
	KeySettings,
	KeyIsShuffleEnabled,
	KeyShuffleInterval,
	KeyLastShuffleTime,
}
