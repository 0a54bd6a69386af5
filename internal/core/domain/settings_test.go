package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, DefaultSchemes(), s.Transform.Schemes)
	assert.Equal(t, OrderingInputFirst, s.Transform.Ordering)
	assert.Equal(t, DefaultPageSize, s.Messages.PageSize)
	assert.Zero(t, s.Messages.PagesPerSecond)
	assert.Equal(t, "StopWords-simple.txt", s.CutWords.StopWordsPath)
	assert.Equal(t, "userdict.txt", s.CutWords.UserDictPath)
	assert.Equal(t, 21, s.CutWords.MaxWordBytes)
}

func TestTransformSettings_ExpandOptions(t *testing.T) {
	ts := TransformSettings{Schemes: []Scheme{SchemeS2T}, Ordering: OrderingLexical}
	opts := ts.ExpandOptions()
	assert.Equal(t, []Scheme{SchemeS2T}, opts.Schemes)
	assert.Equal(t, OrderingLexical, opts.Ordering)
}
