package client

import (
	"fmt"
	"strconv"
	"strings"
)

// Order is the sort order of a listing. It travels as a path segment.
type Order string

const (
	OrderDateAsc   Order = "date_asc"
	OrderDateDesc  Order = "date_desc"
	OrderTitleAsc  Order = "title_asc"
	OrderTitleDesc Order = "title_desc"
)

// Medium identifies the product a print is made on.
type Medium int

const (
	MediumCanvas            Medium = 1
	MediumFramedPrint       Medium = 2
	MediumPosterPhotoprint  Medium = 3
	MediumAluDibond         Medium = 4
	MediumXpozer            Medium = 5
	MediumWood              Medium = 8
	MediumSteel             Medium = 11
	MediumWallpaper         Medium = 12
	MediumAcousticPrints    Medium = 13
	MediumAluDibondAcryl    Medium = 15
	MediumSeamlessWallpaper Medium = 16
	MediumRound             Medium = 17
)

// Size is a print size class.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeXLarge Size = "xlarge"
)

// LanguageCode selects the language of textual fields.
type LanguageCode string

const (
	LanguageNL LanguageCode = "nl"
	LanguageDE LanguageCode = "de"
	LanguageFR LanguageCode = "fr"
	LanguageEN LanguageCode = "en"
)

// Locale selects the shop locale used for pricing and links.
type Locale string

const (
	LocaleNLNL Locale = "nl_NL"
	LocaleDEDE Locale = "de_DE"
	LocaleFRFR Locale = "fr_FR"
	LocaleDEAT Locale = "de_AT"
	LocaleDECH Locale = "de_CH"
	LocaleFRCH Locale = "fr_CH"
	LocaleENGB Locale = "en_GB"
	LocaleENUS Locale = "en_US"
)

var (
	orders    = []Order{OrderDateAsc, OrderDateDesc, OrderTitleAsc, OrderTitleDesc}
	sizes     = []Size{SizeSmall, SizeMedium, SizeLarge, SizeXLarge}
	languages = []LanguageCode{LanguageNL, LanguageDE, LanguageFR, LanguageEN}
	locales   = []Locale{LocaleNLNL, LocaleDEDE, LocaleFRFR, LocaleDEAT, LocaleDECH, LocaleFRCH, LocaleENGB, LocaleENUS}

	mediumNames = map[Medium]string{
		MediumCanvas:            "canvas",
		MediumFramedPrint:       "framed_print",
		MediumPosterPhotoprint:  "poster_photoprint",
		MediumAluDibond:         "alu_dibond",
		MediumXpozer:            "xpozer",
		MediumWood:              "wood",
		MediumSteel:             "steel",
		MediumWallpaper:         "wallpaper",
		MediumAcousticPrints:    "acoustic_prints",
		MediumAluDibondAcryl:    "alu_dibond_acryl",
		MediumSeamlessWallpaper: "seamless_wallpaper",
		MediumRound:             "round",
	}
)

// Valid reports whether o is a known order.
func (o Order) Valid() bool { return contains(orders, o) }

// Valid reports whether s is a known size.
func (s Size) Valid() bool { return contains(sizes, s) }

// Valid reports whether l is a known language code.
func (l LanguageCode) Valid() bool { return contains(languages, l) }

// Valid reports whether l is a known locale.
func (l Locale) Valid() bool { return contains(locales, l) }

// Valid reports whether m is a known medium id.
func (m Medium) Valid() bool {
	_, ok := mediumNames[m]
	return ok
}

// String returns the medium's name, or its numeric id when unknown.
func (m Medium) String() string {
	if name, ok := mediumNames[m]; ok {
		return name
	}
	return strconv.Itoa(int(m))
}

// ParseOrder parses an order value. The empty string yields the zero Order.
func ParseOrder(s string) (Order, error) {
	return parseEnum("order", orders, s)
}

// ParseSize parses a size value. The empty string yields the zero Size.
func ParseSize(s string) (Size, error) {
	return parseEnum("size", sizes, s)
}

// ParseLanguageCode parses a language code. The empty string yields the zero value.
func ParseLanguageCode(s string) (LanguageCode, error) {
	return parseEnum("language code", languages, s)
}

// ParseLocale parses a locale. The empty string yields the zero Locale.
func ParseLocale(s string) (Locale, error) {
	return parseEnum("locale", locales, s)
}

// ParseMedium accepts a numeric medium id or a medium name such as "canvas".
// The empty string yields the zero Medium.
func ParseMedium(s string) (Medium, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if m := Medium(n); m.Valid() {
			return m, nil
		}
		return 0, fmt.Errorf("unknown medium id: %d", n)
	}
	for m, name := range mediumNames {
		if strings.EqualFold(name, s) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown medium: %q", s)
}

// Filter narrows a request. Zero-valued fields are absent and are not sent.
type Filter struct {
	Order        Order
	Medium       Medium
	Size         Size
	LanguageCode LanguageCode
	Locale       Locale
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func parseEnum[T ~string](kind string, values []T, s string) (T, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, v := range values {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown %s: %q", kind, s)
}

// FilterParams holds unparsed filter values as read from flags or a query string.
type FilterParams struct {
	Order        string
	Medium       string
	Size         string
	LanguageCode string
	Locale       string
}

// ParseFilter parses p into a Filter. It returns nil when every value is empty.
func ParseFilter(p FilterParams) (*Filter, error) {
	var (
		f   Filter
		err error
	)
	if f.Order, err = ParseOrder(p.Order); err != nil {
		return nil, err
	}
	if f.Medium, err = ParseMedium(p.Medium); err != nil {
		return nil, err
	}
	if f.Size, err = ParseSize(p.Size); err != nil {
		return nil, err
	}
	if f.LanguageCode, err = ParseLanguageCode(p.LanguageCode); err != nil {
		return nil, err
	}
	if f.Locale, err = ParseLocale(p.Locale); err != nil {
		return nil, err
	}
	if f == (Filter{}) {
		return nil, nil
	}
	return &f, nil
}
