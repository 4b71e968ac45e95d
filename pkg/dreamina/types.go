package dreamina

import (
	"fmt"
	"strings"
)

// Ratio is the aspect ratio of generated images.
type Ratio string

// Supported aspect ratios.
const (
	Ratio1x1  Ratio = "1:1"
	Ratio3x4  Ratio = "3:4"
	Ratio4x3  Ratio = "4:3"
	Ratio9x16 Ratio = "9:16"
	Ratio16x9 Ratio = "16:9"
	Ratio2x3  Ratio = "2:3"
	Ratio3x2  Ratio = "3:2"
	Ratio21x9 Ratio = "21:9"
)

// DefaultRatio is used when no ratio is given.
const DefaultRatio = Ratio1x1

// Ratios lists the supported ratios in display order.
var Ratios = []Ratio{
	Ratio1x1, Ratio3x4, Ratio4x3, Ratio9x16,
	Ratio16x9, Ratio2x3, Ratio3x2, Ratio21x9,
}

// Valid reports whether r is one of the supported ratios.
func (r Ratio) Valid() bool {
	for _, v := range Ratios {
		if r == v {
			return true
		}
	}
	return false
}

// ParseRatio parses s into a supported Ratio. An empty string yields
// DefaultRatio.
func ParseRatio(s string) (Ratio, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultRatio, nil
	}
	r := Ratio(s)
	if !r.Valid() {
		return "", fmt.Errorf("unsupported ratio %q (supported: %s)", s, RatioList())
	}
	return r, nil
}

// RatioList returns the supported ratios joined by ", ".
func RatioList() string {
	names := make([]string, len(Ratios))
	for i, r := range Ratios {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// ResponseFormatURL asks the gateway to answer with image URLs.
const ResponseFormatURL = "url"

// GenerateRequest is the body of an image generation request.
type GenerateRequest struct {
	// Prompt describes the image.
	Prompt string `json:"prompt" yaml:"prompt"`

	// Ratio is the aspect ratio.
	Ratio Ratio `json:"ratio" yaml:"ratio"`

	// ResponseFormat is always "url"; left empty it is filled in on send.
	ResponseFormat string `json:"response_format" yaml:"response_format,omitempty"`
}

// ImageData is a single generated image.
type ImageData struct {
	URL string `json:"url" yaml:"url"`
}

// GenerateResponse is the interpreted generation response.
type GenerateResponse struct {
	// Images holds the generated images in response order.
	Images []ImageData `json:"images" yaml:"images"`

	// RequestID is the X-Request-Id the request was sent with.
	RequestID string `json:"request_id" yaml:"request_id"`
}

// URLs returns the image URLs in response order.
func (r *GenerateResponse) URLs() []string {
	if r == nil {
		return nil
	}
	urls := make([]string, len(r.Images))
	for i, img := range r.Images {
		urls[i] = img.URL
	}
	return urls
}

// Artifact is a downloaded image file.
type Artifact struct {
	Index int    `json:"index" yaml:"index"`
	URL   string `json:"url" yaml:"url"`
	Path  string `json:"path" yaml:"path"`
	Size  int64  `json:"size" yaml:"size"`
	Ext   string `json:"ext" yaml:"ext"`
}
