package domain

import "strings"

// MediaKind classifies a referenced file by its extension.
type MediaKind string

// Media kinds.
const (
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
	MediaImage MediaKind = "image"
	MediaOther MediaKind = "other"
)

var mediaExtensions = map[string]MediaKind{
	// Video
	".mp4":  MediaVideo,
	".mov":  MediaVideo,
	".avi":  MediaVideo,
	".mxf":  MediaVideo,
	".r3d":  MediaVideo,
	".braw": MediaVideo,
	".dng":  MediaVideo,
	".mkv":  MediaVideo,
	".mpg":  MediaVideo,
	".mpeg": MediaVideo,
	".m4v":  MediaVideo,

	// Audio
	".wav":  MediaAudio,
	".mp3":  MediaAudio,
	".aac":  MediaAudio,
	".aif":  MediaAudio,
	".aiff": MediaAudio,
	".flac": MediaAudio,
	".m4a":  MediaAudio,

	// Images
	".jpg":  MediaImage,
	".jpeg": MediaImage,
	".png":  MediaImage,
	".tif":  MediaImage,
	".tiff": MediaImage,
	".psd":  MediaImage,
	".psb":  MediaImage,
	".bmp":  MediaImage,
	".gif":  MediaImage,
}

// ClassifyMedia returns the media kind for a path in either separator style.
func ClassifyMedia(path string) MediaKind {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 {
		return MediaOther
	}
	if kind, ok := mediaExtensions[strings.ToLower(base[dot:])]; ok {
		return kind
	}
	return MediaOther
}

// String returns the string representation.
func (k MediaKind) String() string {
	return string(k)
}
