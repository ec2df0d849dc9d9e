package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("DATE_ASC")
	require.NoError(t, err)
	assert.Equal(t, OrderDateAsc, o)

	o, err = ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, Order(""), o)

	_, err = ParseOrder("random")
	assert.Error(t, err)
}

func TestParseMedium(t *testing.T) {
	tests := []struct {
		input   string
		want    Medium
		wantErr bool
	}{
		{"", 0, false},
		{"1", MediumCanvas, false},
		{"17", MediumRound, false},
		{"canvas", MediumCanvas, false},
		{"Alu_Dibond_Acryl", MediumAluDibondAcryl, false},
		{"6", 0, true},
		{"marble", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMedium(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSizeLanguageLocale(t *testing.T) {
	s, err := ParseSize("xlarge")
	require.NoError(t, err)
	assert.Equal(t, SizeXLarge, s)
	_, err = ParseSize("huge")
	assert.Error(t, err)

	l, err := ParseLanguageCode("fr")
	require.NoError(t, err)
	assert.Equal(t, LanguageFR, l)
	_, err = ParseLanguageCode("es")
	assert.Error(t, err)

	loc, err := ParseLocale("fr_ch")
	require.NoError(t, err)
	assert.Equal(t, LocaleFRCH, loc)
	_, err = ParseLocale("es_ES")
	assert.Error(t, err)
}

func TestEnumValid(t *testing.T) {
	assert.True(t, OrderTitleDesc.Valid())
	assert.False(t, Order("x").Valid())
	assert.True(t, SizeSmall.Valid())
	assert.True(t, LanguageNL.Valid())
	assert.True(t, LocaleENUS.Valid())
	assert.True(t, MediumWood.Valid())
	assert.False(t, Medium(6).Valid())
}

func TestMedium_String(t *testing.T) {
	assert.Equal(t, "framed_print", MediumFramedPrint.String())
	assert.Equal(t, "99", Medium(99).String())
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(FilterParams{})
	require.NoError(t, err)
	assert.Nil(t, f)

	f, err = ParseFilter(FilterParams{Order: "DATE_ASC", Medium: "canvas", Size: "large", LanguageCode: "en", Locale: "en_GB"})
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, Filter{
		Order:        OrderDateAsc,
		Medium:       MediumCanvas,
		Size:         SizeLarge,
		LanguageCode: LanguageEN,
		Locale:       LocaleENGB,
	}, *f)

	_, err = ParseFilter(FilterParams{Medium: "marble"})
	assert.EqualError(t, err, `unknown medium: "marble"`)

	_, err = ParseFilter(FilterParams{Order: "random"})
	assert.EqualError(t, err, `unknown order: "random"`)
}
