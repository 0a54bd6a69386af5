package segmenter

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/querytrans/internal/core/domain"
)

func newTestTagger(t *testing.T) *Tagger {
	t.Helper()
	if testing.Short() {
		t.Skip("loads the segmenter dictionary")
	}
	tagger, err := NewTagger()
	require.NoError(t, err)
	return tagger
}

func words(tagged []domain.TaggedWord) []string {
	out := make([]string, len(tagged))
	for i, tw := range tagged {
		out[i] = tw.Word
	}
	return out
}

func TestNewTagger_QuietStandardLogger(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the segmenter dictionary")
	}
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	_, err := NewTagger()
	require.NoError(t, err)

	assert.Empty(t, buf.String())
}

func TestTagger_Tag(t *testing.T) {
	tagger := newTestTagger(t)

	tagged := tagger.Tag("我们今天去北京")

	require.NotEmpty(t, tagged)
	assert.Contains(t, words(tagged), "北京")
	for _, tw := range tagged {
		assert.NotEmpty(t, tw.Tag, "word %q has a tag", tw.Word)
	}
}

func TestTagger_Tag_Partitions(t *testing.T) {
	tagger := newTestTagger(t)

	for _, text := range []string{
		"中华人民共和国成立了",
		"我们今天去北京",
		"落絮词云为您生成消息词云",
	} {
		t.Run(text, func(t *testing.T) {
			tagged := tagger.Tag(text)

			require.NotEmpty(t, tagged)
			assert.Equal(t, text, strings.Join(words(tagged), ""),
				"segments must not overlap")
		})
	}
}

func TestTagger_Tag_KeepsLongWordWhole(t *testing.T) {
	tagger := newTestTagger(t)

	got := words(tagger.Tag("中华人民共和国成立了"))

	assert.Contains(t, got, "中华人民共和国")
	assert.NotContains(t, got, "共和国")
	assert.NotContains(t, got, "人民")
}

func TestTagger_Tag_Empty(t *testing.T) {
	tagger := newTestTagger(t)

	assert.Empty(t, tagger.Tag(""))
}

func TestTagger_AddWords(t *testing.T) {
	tagger := newTestTagger(t)

	require.NoError(t, tagger.AddWords([]domain.DictEntry{{Word: "落絮词云", Tag: "nz"}}))

	tagged := tagger.Tag("落絮词云真好用")
	require.NotEmpty(t, tagged)
	assert.Equal(t, domain.TaggedWord{Word: "落絮词云", Tag: "nz"}, tagged[0])
	assert.Equal(t, "落絮词云真好用", strings.Join(words(tagged), ""))
	assert.NotContains(t, words(tagged), "落絮")
}
