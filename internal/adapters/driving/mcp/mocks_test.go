package mcp

import (
	"context"

	"github.com/custodia-labs/querytrans/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	output      string
	explanation *domain.Explanation
	err         error
	inputs      []string
}

func (m *mockQueryService) Transform(_ context.Context, input string) (string, error) {
	m.inputs = append(m.inputs, input)
	return m.output, m.err
}

func (m *mockQueryService) Explain(_ context.Context, input string) (*domain.Explanation, error) {
	m.inputs = append(m.inputs, input)
	return m.explanation, m.err
}

func (m *mockQueryService) TransformBatch(_ context.Context, inputs []string) ([]domain.TransformResult, error) {
	out := make([]domain.TransformResult, len(inputs))
	for i, in := range inputs {
		out[i] = domain.TransformResult{Input: in, Output: m.output, Err: m.err}
	}
	return out, nil
}

// mockWordCountService is a mock implementation of driving.WordCountService.
type mockWordCountService struct {
	report *domain.WordCountReport
	err    error
	filter domain.MessageFilter
}

func (m *mockWordCountService) Count(_ context.Context, filter domain.MessageFilter) (*domain.WordCountReport, error) {
	m.filter = filter
	return m.report, m.err
}

func (m *mockWordCountService) SetStopWords(_ []string) {}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) SetTransform(_ domain.TransformSettings) error {
	return m.err
}

func (m *mockSettingsService) SetValue(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

func (m *mockWordCountService) CountDump(
	_ context.Context, _ string, filter domain.MessageFilter,
) (*domain.WordCountReport, error) {
	m.filter = filter
	return m.report, m.err
}

func (m *mockSettingsService) GetValue(_ string) (string, error) {
	return "", m.err
}

func (m *mockSettingsService) Path() string {
	return ":memory:"
}
