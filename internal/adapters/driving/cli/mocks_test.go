package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driving"
)

// mockQueryService wraps each input in a group and
// fails inputs that start with a space.
type mockQueryService struct {
	batches [][]string
}

func (m *mockQueryService) Transform(_ context.Context, input string) (string, error) {
	if strings.HasPrefix(input, " ") {
		return "", &domain.ParseError{Offset: 0, Remaining: input, Reason: domain.ParseReasonLeadingSpace}
	}
	return "(" + input + " OR " + input + "2)", nil
}

func (m *mockQueryService) Explain(ctx context.Context, input string) (*domain.Explanation, error) {
	out, err := m.Transform(ctx, input)
	if err != nil {
		return nil, err
	}
	return &domain.Explanation{
		Input:  input,
		Parsed: domain.NodeView{Kind: domain.NodeKindQuery, Children: []domain.NodeView{{Kind: domain.NodeKindTerm, Text: input}}},
		Expanded: domain.NodeView{Kind: domain.NodeKindQuery, Children: []domain.NodeView{{
			Kind: domain.NodeKindGroup,
			Children: []domain.NodeView{
				{Kind: domain.NodeKindTerm, Text: input},
				{Kind: domain.NodeKindTerm, Text: domain.OrMarker},
				{Kind: domain.NodeKindTerm, Text: input + "2"},
			},
		}}},
		Output: out,
	}, nil
}

func (m *mockQueryService) TransformBatch(ctx context.Context, inputs []string) ([]domain.TransformResult, error) {
	m.batches = append(m.batches, inputs)
	results := make([]domain.TransformResult, len(inputs))
	for i, in := range inputs {
		out, err := m.Transform(ctx, in)
		results[i] = domain.TransformResult{Input: in, Output: out, Err: err}
	}
	return results, nil
}

// mockWordCountService records the last filter and dump path.
type mockWordCountService struct {
	filter   domain.MessageFilter
	dump     string
	err      error
	progress func(int)
}

func (m *mockWordCountService) report(filter domain.MessageFilter) *domain.WordCountReport {
	return &domain.WordCountReport{
		ID:       "run-1",
		GroupID:  filter.GroupID,
		After:    filter.After,
		UserID:   filter.UserID,
		Messages: 3,
		Words: []domain.WordCount{
			{Word: "头发", Count: 3},
			{Word: "中文", Count: 2},
			{Word: "简体", Count: 1},
		},
	}
}

func (m *mockWordCountService) Count(_ context.Context, filter domain.MessageFilter) (*domain.WordCountReport, error) {
	m.filter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.report(filter), nil
}

func (m *mockWordCountService) CountDump(
	_ context.Context, path string, filter domain.MessageFilter,
) (*domain.WordCountReport, error) {
	m.filter = filter
	m.dump = path
	if m.err != nil {
		return nil, m.err
	}
	return m.report(filter), nil
}

func (m *mockWordCountService) SetStopWords(_ []string) {}

func (m *mockWordCountService) SetProgress(fn func(int)) {
	m.progress = fn
}

// mockMessageService counts imports per path.
type mockMessageService struct {
	imported []string
	counts   map[int64]int
}

func (m *mockMessageService) Import(_ context.Context, path string) (int, error) {
	if path == "missing.jsonl" {
		return 0, errors.New("open missing.jsonl: no such file or directory")
	}
	m.imported = append(m.imported, path)
	return 42, nil
}

func (m *mockMessageService) Count(_ context.Context, groupID int64) (int, error) {
	return m.counts[groupID], nil
}

// mockSettingsService keeps values in a map.
type mockSettingsService struct {
	values map[string]string
}

var mockSettingKeys = []string{"transform.schemes", "transform.ordering"}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{values: map[string]string{
		"transform.schemes":  "s2tw,tw2s,s2twp,tw2sp",
		"transform.ordering": "input-first",
	}}
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	s := domain.DefaultSettings()
	return &s, nil
}

func (m *mockSettingsService) SetTransform(_ domain.TransformSettings) error { return nil }

func (m *mockSettingsService) SetValue(key, value string) error {
	if _, ok := m.values[key]; !ok {
		return domain.ErrInvalidInput
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsService) GetValue(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", domain.ErrInvalidInput
	}
	return v, nil
}

func (m *mockSettingsService) Keys() []string { return mockSettingKeys }

func (m *mockSettingsService) Path() string { return "/tmp/querytrans/config.toml" }

var (
	_ driving.QueryService     = (*mockQueryService)(nil)
	_ driving.WordCountService = (*mockWordCountService)(nil)
	_ driving.MessageService   = (*mockMessageService)(nil)
	_ driving.SettingsService  = (*mockSettingsService)(nil)
)

// testServices are the mocks installed by setupTestServices.
type testServices struct {
	query     *mockQueryService
	wordCount *mockWordCountService
	messages  *mockMessageService
	settings  *mockSettingsService
}

// setupTestServices installs mock services and returns them with a
// cleanup that clears them again.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		query:     &mockQueryService{},
		wordCount: &mockWordCountService{},
		messages:  &mockMessageService{counts: map[int64]int{-100: 3}},
		settings:  newMockSettingsService(),
	}
	SetServices(Services{
		Query:     ts.query,
		WordCount: ts.wordCount,
		Messages:  ts.messages,
		Settings:  ts.settings,
	})
	return ts, func() { SetServices(Services{}) }
}

// runCommand executes the root command with args and returns stdout and
// stderr. Flags of every command are reset first so values do not leak
// between tests.
func runCommand(stdin string, args ...string) (string, string, error) {
	resetFlags(rootCmd)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
