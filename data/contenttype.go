package data

import (
	"path"
	"strings"
)

type ContentType string

// Content types of resources typically shipped in data directories and archives.
const (
	ContentTypeTextPlain         ContentType = "text/plain"
	ContentTypeTextXML           ContentType = "text/xml"
	ContentTypeImagePNG          ContentType = "image/png"
	ContentTypeImageJPEG         ContentType = "image/jpeg"
	ContentTypeImageGIF          ContentType = "image/gif"
	ContentTypeAudioOGG          ContentType = "audio/ogg"
	ContentTypeAudioWAV          ContentType = "audio/wav"
	ContentTypeAudioMpeg         ContentType = "audio/mpeg"
	ContentTypeFontTTF           ContentType = "font/ttf"
	ContentTypeApplicationZip    ContentType = "application/zip"
	ContentTypeApplicationJSON   ContentType = "application/json"
	ContentTypeApplicationStream ContentType = "application/octet-stream"
)

// ExtensionToMIME maps file extensions to MIME types.
var ExtensionToMIME = map[string]ContentType{
	".txt":  ContentTypeTextPlain,
	".xml":  ContentTypeTextXML,
	".png":  ContentTypeImagePNG,
	".jpg":  ContentTypeImageJPEG,
	".jpeg": ContentTypeImageJPEG,
	".gif":  ContentTypeImageGIF,
	".ogg":  ContentTypeAudioOGG,
	".wav":  ContentTypeAudioWAV,
	".mp3":  ContentTypeAudioMpeg,
	".ttf":  ContentTypeFontTTF,
	".zip":  ContentTypeApplicationZip,
	".json": ContentTypeApplicationJSON,
}

// GetMIMEType returns the MIME type for the extension of a virtual path.
func GetMIMEType(name string) ContentType {
	if mimeType, exists := ExtensionToMIME[strings.ToLower(path.Ext(name))]; exists {
		return mimeType
	}

	// Default to octet-stream for unknown types
	return ContentTypeApplicationStream
}
