package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// Artwork is a catalog item as returned by the API.
type Artwork struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Images      ImageSet `json:"images"`
	ImagesHTTPS ImageSet `json:"imagesHttps"`
	Pricing     []string `json:"pricing"`
	Dimensions  string   `json:"dimensions"`
	Medium      string   `json:"medium"`
}

// ArtworkPlus is an Artwork with display fields derived from it.
type ArtworkPlus struct {
	Artwork

	// Image is the URL of the first entry of Images in server order.
	Image string `json:"image"`

	// Ratio is width/height parsed from Dimensions, 1 when unknown.
	Ratio float64 `json:"ratio"`
}

// Stats describes a page's position within a listing.
type Stats struct {
	TotalArtworks int `json:"totalArtworks"`
	ArtworkCount  int `json:"artworkCount"`
	CurrentPage   int `json:"currentPage"`
	TotalPages    int `json:"totalPages"`
}

// ArtworkPage is one page of a listing.
type ArtworkPage struct {
	Artworks []ArtworkPlus `json:"artworks"`
	Stats    Stats         `json:"stats"`
}

// ImageSet maps size labels to image URLs and keeps the order in which the
// server sent them.
type ImageSet struct {
	keys []string
	urls map[string]string
}

// NewImageSet builds an ImageSet from alternating label, URL pairs.
func NewImageSet(pairs ...string) ImageSet {
	var s ImageSet
	for i := 0; i+1 < len(pairs); i += 2 {
		s.set(pairs[i], pairs[i+1])
	}
	return s
}

func (s *ImageSet) set(label, url string) {
	if s.urls == nil {
		s.urls = make(map[string]string)
	}
	if _, ok := s.urls[label]; !ok {
		s.keys = append(s.keys, label)
	}
	s.urls[label] = url
}

// Len returns the number of images.
func (s ImageSet) Len() int { return len(s.keys) }

// Labels returns the size labels in server order.
func (s ImageSet) Labels() []string {
	return append([]string(nil), s.keys...)
}

// Get returns the URL for a size label.
func (s ImageSet) Get(label string) (string, bool) {
	url, ok := s.urls[label]
	return url, ok
}

// First returns the URL of the first label.
func (s ImageSet) First() (string, bool) {
	if len(s.keys) == 0 {
		return "", false
	}
	return s.urls[s.keys[0]], true
}

// UnmarshalJSON decodes a JSON object preserving key order. An empty JSON
// array and null decode as an empty set.
func (s *ImageSet) UnmarshalJSON(data []byte) error {
	*s = ImageSet{}

	res := gjson.ParseBytes(data)
	switch {
	case res.Type == gjson.Null:
		return nil
	case res.IsArray():
		if len(res.Array()) == 0 {
			return nil
		}
		return fmt.Errorf("images: expected object, got non-empty array")
	case !res.IsObject():
		return fmt.Errorf("images: expected object, got %s", strings.TrimSpace(string(data)))
	}

	res.ForEach(func(key, value gjson.Result) bool {
		s.set(key.String(), value.String())
		return true
	})
	return nil
}

// MarshalJSON encodes the set as a JSON object in server order.
func (s ImageSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.urls[label])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Enhance derives the display fields of an artwork. It never fails:
// missing images give an empty Image and unparsable dimensions a Ratio of 1.
func Enhance(a Artwork) ArtworkPlus {
	image, _ := a.Images.First()
	return ArtworkPlus{
		Artwork: a,
		Image:   image,
		Ratio:   Ratio(a.Dimensions),
	}
}

// Ratio returns width/height for a "<width>x<height>" string. Parts that do
// not start with an integer are dropped; unless exactly two numbers remain,
// or when the height is zero, the ratio is 1.
func Ratio(dimensions string) float64 {
	var nums []float64
	for _, part := range strings.Split(dimensions, "x") {
		if n, ok := leadingInt(part); ok {
			nums = append(nums, n)
		}
	}
	if len(nums) != 2 || nums[1] == 0 {
		return 1
	}
	return nums[0] / nums[1]
}

// leadingInt parses the integer at the start of s after optional whitespace
// and sign, ignoring anything that follows ("120 cm" is 120). The value is
// accumulated as float64 so long digit runs lose precision instead of wrapping;
// a run too long for float64 does not parse.
func leadingInt(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0.0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		n = n*10 + float64(s[digits]-'0')
		digits++
	}
	if digits == 0 || math.IsInf(n, 0) {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
