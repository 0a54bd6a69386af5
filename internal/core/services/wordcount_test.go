package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/querytrans/internal/adapters/driven/segmenter"
	"github.com/custodia-labs/querytrans/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/querytrans/internal/core/domain"
)

func groupMessages(texts ...string) []domain.Message {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	msgs := make([]domain.Message, len(texts))
	for i, text := range texts {
		msgs[i] = domain.Message{
			ID:        int64(i + 1),
			GroupID:   42,
			FromUser:  7,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Text:      text,
		}
	}
	return msgs
}

func newCountService(msgs ...domain.Message) *WordCountService {
	return NewWordCountService(memory.NewMessageStore(msgs...), spaceTagger{}, domain.DefaultCountOptions())
}

func TestWordCountService_Count(t *testing.T) {
	service := newCountService(groupMessages(
		"Rust rust go",
		"go GO 的/uj",
		"",
		"/luoxucloud 7d",
		"[Lisa] rust",
		"落絮词云为您生成消息词云 go",
	)...)

	report, err := service.Count(context.Background(), domain.MessageFilter{GroupID: 42})
	require.NoError(t, err)

	assert.Equal(t, 6, report.Messages, "skipped messages still count")
	assert.Equal(t, []domain.WordCount{
		{Word: "go", Count: 3},
		{Word: "rust", Count: 2},
	}, report.Words)
	assert.Equal(t, int64(42), report.GroupID)
	_, err = uuid.Parse(report.ID)
	assert.NoError(t, err)
}

func TestWordCountService_Count_LineMarkers(t *testing.T) {
	service := newCountService(groupMessages(
		"before\n[webpage] title\nafter",
		"[file] report.pdf",
	)...)

	report, err := service.Count(context.Background(), domain.MessageFilter{GroupID: 42})
	require.NoError(t, err)

	assert.Equal(t, []domain.WordCount{{Word: "before", Count: 1}}, report.Words)
}

func TestWordCountService_Count_StopTagsAndLength(t *testing.T) {
	service := newCountService(groupMessages(
		"很/d 我/r 猫 ，/x 一个/m supercalifragilisticexpialidocious",
	)...)

	report, err := service.Count(context.Background(), domain.MessageFilter{GroupID: 42})
	require.NoError(t, err)

	assert.Equal(t, []domain.WordCount{{Word: "猫", Count: 1}}, report.Words)
}

func TestWordCountService_Count_StopWords(t *testing.T) {
	service := newCountService(groupMessages("The cat the dog")...)
	service.SetStopWords([]string{"the"})

	report, err := service.Count(context.Background(), domain.MessageFilter{GroupID: 42})
	require.NoError(t, err)

	assert.Equal(t, []domain.WordCount{
		{Word: "cat", Count: 1},
		{Word: "dog", Count: 1},
	}, report.Words)
}

func TestWordCountService_Count_SortsByCountThenWord(t *testing.T) {
	service := newCountService(groupMessages("b a c b a d b")...)

	report, err := service.Count(context.Background(), domain.MessageFilter{GroupID: 42})
	require.NoError(t, err)

	assert.Equal(t, []domain.WordCount{
		{Word: "b", Count: 3},
		{Word: "a", Count: 2},
		{Word: "c", Count: 1},
		{Word: "d", Count: 1},
	}, report.Words)
}

func TestWordCountService_Count_Filter(t *testing.T) {
	msgs := groupMessages("old", "new")
	msgs = append(msgs, domain.Message{ID: 9, GroupID: 42, FromUser: 8, CreatedAt: msgs[1].CreatedAt, Text: "other"})
	service := newCountService(msgs...)

	report, err := service.Count(context.Background(), domain.MessageFilter{
		GroupID: 42,
		After:   msgs[0].CreatedAt,
		UserID:  7,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Messages)
	assert.Equal(t, []domain.WordCount{{Word: "new", Count: 1}}, report.Words)
	assert.Equal(t, int64(7), report.UserID)
}

func TestWordCountService_Count_MissingGroup(t *testing.T) {
	service := newCountService()

	_, err := service.Count(context.Background(), domain.MessageFilter{})

	assert.ErrorIs(t, err, domain.ErrMissingGroup)
}

func TestWordCountService_Count_SourceErrors(t *testing.T) {
	boom := errors.New("page fetch failed")

	t.Run("open", func(t *testing.T) {
		service := NewWordCountService(&failingSource{openErr: boom}, spaceTagger{}, domain.DefaultCountOptions())
		_, err := service.Count(context.Background(), domain.MessageFilter{GroupID: 1})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("next", func(t *testing.T) {
		source := &failingSource{msgs: groupMessages("a"), err: boom}
		service := NewWordCountService(source, spaceTagger{}, domain.DefaultCountOptions())
		report, err := service.Count(context.Background(), domain.MessageFilter{GroupID: 1})
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, report)
	})
}

func TestWordCountService_Progress(t *testing.T) {
	service := newCountService(groupMessages("a", "b", "c")...)
	var seen []int
	service.SetProgress(func(n int) { seen = append(seen, n) })

	_, err := service.Count(context.Background(), domain.MessageFilter{GroupID: 42})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestWordCountService_SetProgress_Concurrent(t *testing.T) {
	service := newCountService(groupMessages("a", "b", "c")...)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			service.SetProgress(func(int) {})
			service.SetProgress(nil)
		}
	}()
	for i := 0; i < 10; i++ {
		_, err := service.Count(context.Background(), domain.MessageFilter{GroupID: 42})
		require.NoError(t, err)
	}
	<-done
}

func TestWordCountService_Count_SegmenterCountsEachWordOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the segmenter dictionary")
	}
	tagger, err := segmenter.NewTagger()
	require.NoError(t, err)
	require.NoError(t, tagger.AddWords([]domain.DictEntry{{Word: "落絮词云", Tag: "nz"}}))

	store := memory.NewMessageStore(groupMessages(
		"落絮词云真好用",
		"中华人民共和国成立了",
	)...)
	service := NewWordCountService(store, tagger, domain.DefaultCountOptions())

	report, err := service.Count(context.Background(), domain.MessageFilter{GroupID: 42})
	require.NoError(t, err)

	counts := make(map[string]int, len(report.Words))
	for _, w := range report.Words {
		counts[w.Word] = w.Count
	}
	assert.Equal(t, 1, counts["落絮词云"])
	assert.Equal(t, 1, counts["中华人民共和国"])
	for _, piece := range []string{"落絮", "词云", "人民", "共和国", "中华"} {
		assert.NotContains(t, counts, piece)
	}
}

func TestWordCountService_SetStopWords_Concurrent(t *testing.T) {
	service := newCountService(groupMessages("a b c")...)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			service.SetStopWords([]string{"a"})
		}
	}()
	for i := 0; i < 10; i++ {
		_, err := service.Count(context.Background(), domain.MessageFilter{GroupID: 42})
		require.NoError(t, err)
	}
	<-done
}

func TestWordCountService_CountDump(t *testing.T) {
	msgs := groupMessages("rust go", "go")
	msgs = append(msgs, domain.Message{ID: 3, GroupID: 99, Text: "elsewhere"})
	service := newCountService()
	service.SetDumpReader(&sliceDump{files: map[string][]domain.Message{"chat.jsonl": msgs}})

	report, err := service.CountDump(context.Background(), "chat.jsonl", domain.MessageFilter{GroupID: 42})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Messages)
	assert.Equal(t, []domain.WordCount{
		{Word: "go", Count: 2},
		{Word: "rust", Count: 1},
	}, report.Words)
}

func TestWordCountService_CountDump_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no reader", func(t *testing.T) {
		service := newCountService()
		_, err := service.CountDump(ctx, "chat.jsonl", domain.MessageFilter{GroupID: 42})
		assert.ErrorIs(t, err, ErrNoDumpReader)
	})

	t.Run("missing group", func(t *testing.T) {
		service := newCountService()
		service.SetDumpReader(&sliceDump{})
		_, err := service.CountDump(ctx, "chat.jsonl", domain.MessageFilter{})
		assert.ErrorIs(t, err, domain.ErrMissingGroup)
	})

	t.Run("missing file", func(t *testing.T) {
		service := newCountService()
		service.SetDumpReader(&sliceDump{})
		_, err := service.CountDump(ctx, "nope.jsonl", domain.MessageFilter{GroupID: 42})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("read failure", func(t *testing.T) {
		boom := errors.New("corrupt line")
		service := newCountService()
		service.SetDumpReader(&sliceDump{files: map[string][]domain.Message{"x": groupMessages("a")}, err: boom})
		report, err := service.CountDump(ctx, "x", domain.MessageFilter{GroupID: 42})
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, report)
	})
}
