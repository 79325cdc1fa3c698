// Package mimetype maps file name extensions to the top-level part of
// their MIME type ("text" for "text/plain", "image" for "image/png").
//
// The table only holds simple "*.ext" patterns. Compound patterns and
// subtypes are not represented.
package mimetype

// Type is the top-level part of a MIME type.
type Type string

const (
	Application Type = "application"
	Audio       Type = "audio"
	Font        Type = "font"
	Image       Type = "image"
	Model       Type = "model"
	Text        Type = "text"
	Video       Type = "video"
)

// Known reports whether t is one of the types in the table.
func Known(t Type) bool {
	switch t {
	case Application, Audio, Font, Image, Model, Text, Video:
		return true
	}
	return false
}

// FromExtension returns the type associated with a file name extension,
// without the leading dot. The lookup is case-insensitive for ASCII
// letters; extensions with other characters never match.
func FromExtension(ext string) (Type, bool) {
	if ext == "" || len(ext) > 16 {
		return "", false
	}

	var buf [16]byte
	for i := 0; i < len(ext); i++ {
		c := ext[i]
		switch {
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		default:
			return "", false
		}
		buf[i] = c
	}

	t, ok := extensions[string(buf[:len(ext)])]
	return t, ok
}

var extensions = map[string]Type{
	// text
	"txt": Text, "text": Text, "md": Text, "markdown": Text, "rst": Text,
	"adoc": Text, "org": Text, "csv": Text, "tsv": Text, "log": Text,
	"html": Text, "htm": Text, "css": Text, "xml": Text, "xsl": Text,
	"c": Text, "h": Text, "cc": Text, "cpp": Text, "cxx": Text, "hpp": Text,
	"go": Text, "rs": Text, "py": Text, "rb": Text, "pl": Text, "pm": Text,
	"java": Text, "kt": Text, "scala": Text, "cs": Text, "swift": Text,
	"sh": Text, "bash": Text, "zsh": Text, "fish": Text, "lua": Text,
	"tcl": Text, "vala": Text, "hs": Text, "ml": Text, "mli": Text,
	"el": Text, "lisp": Text, "scm": Text, "clj": Text, "erl": Text,
	"ex": Text, "exs": Text, "d": Text, "m": Text, "f": Text, "f90": Text,
	"pas": Text, "sql": Text, "tex": Text, "bib": Text, "sty": Text,
	"ini": Text, "conf": Text, "cfg": Text, "toml": Text, "yaml": Text,
	"yml": Text, "diff": Text, "patch": Text, "ics": Text, "vcf": Text,
	"mk": Text, "cmake": Text, "sgml": Text, "vtt": Text, "srt": Text,
	"js": Text, "mjs": Text, "ts": Text, "tsx": Text, "jsx": Text,
	"vue": Text, "svelte": Text, "php": Text, "r": Text, "jl": Text,
	"dart": Text, "zig": Text, "nim": Text, "v": Text, "vhd": Text,
	"proto": Text, "graphql": Text, "tf": Text, "nix": Text,

	// application
	"json": Application, "pdf": Application, "zip": Application,
	"gz": Application, "tgz": Application, "bz2": Application,
	"xz": Application, "zst": Application, "tar": Application,
	"7z": Application, "rar": Application, "jar": Application,
	"war": Application, "deb": Application, "rpm": Application,
	"apk": Application, "dmg": Application, "iso": Application,
	"exe": Application, "dll": Application, "so": Application,
	"o": Application, "a": Application, "wasm": Application,
	"doc": Application, "docx": Application, "xls": Application,
	"xlsx": Application, "ppt": Application, "pptx": Application,
	"odt": Application, "ods": Application, "odp": Application,
	"rtf": Application, "epub": Application, "sqlite": Application,
	"db": Application, "class": Application, "pyc": Application,
	"wat": Application, "swf": Application, "ps": Application,
	"eps": Application, "torrent": Application, "msi": Application,

	// image
	"png": Image, "jpg": Image, "jpeg": Image, "gif": Image, "bmp": Image,
	"webp": Image, "svg": Image, "svgz": Image, "ico": Image, "tif": Image,
	"tiff": Image, "avif": Image, "heic": Image, "heif": Image, "psd": Image,
	"xcf": Image, "jxl": Image, "ppm": Image, "pgm": Image, "pbm": Image,
	"tga": Image, "dds": Image, "exr": Image, "hdr": Image, "raw": Image,
	"cr2": Image, "nef": Image, "dng": Image, "xpm": Image, "xbm": Image,

	// audio
	"mp3": Audio, "ogg": Audio, "oga": Audio, "opus": Audio, "flac": Audio,
	"wav": Audio, "aac": Audio, "m4a": Audio, "wma": Audio, "aiff": Audio,
	"aif": Audio, "mid": Audio, "midi": Audio, "ape": Audio, "au": Audio,

	// video
	"mp4": Video, "mkv": Video, "webm": Video, "avi": Video, "mov": Video,
	"wmv": Video, "flv": Video, "mpg": Video, "mpeg": Video, "m4v": Video,
	"ogv": Video, "3gp": Video, "vob": Video,

	// font
	"ttf": Font, "otf": Font, "woff": Font, "woff2": Font, "pcf": Font,

	// model
	"stl": Model, "gltf": Model, "glb": Model, "3mf": Model,
	"wrl": Model, "x3d": Model,
}
