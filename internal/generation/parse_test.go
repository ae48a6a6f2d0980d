package generation_test

import (
	"context"
	"strings"
	"testing"

	"github.com/procrastilist/procrastilist/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDistractions(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("é", 150)

	tests := []struct {
		name    string
		text    string
		max     int
		want    []string
		wantErr bool
	}{
		{
			name: "two strings",
			text: `["Watch cat videos", "Reorganize the sock drawer"]`,
			max:  10,
			want: []string{"Watch cat videos", "Reorganize the sock drawer"},
		},
		{
			name: "surrounding whitespace is tolerated",
			text: "\n  [\"Nap\"]  \n",
			max:  10,
			want: []string{"Nap"},
		},
		{
			name: "entries are trimmed and blanks dropped",
			text: `["  Nap  ", "", "   ", "Snack"]`,
			max:  10,
			want: []string{"Nap", "Snack"},
		},
		{
			name: "empty array",
			text: `[]`,
			max:  10,
			want: []string{},
		},
		{
			name: "capped at max",
			text: `["a", "b", "c", "d"]`,
			max:  2,
			want: []string{"a", "b"},
		},
		{
			name: "non-positive max disables cap",
			text: `["a", "b", "c"]`,
			max:  0,
			want: []string{"a", "b", "c"},
		},
		{
			name: "long entries truncated",
			text: `["` + long + `"]`,
			max:  10,
			want: []string{strings.Repeat("é", 100)},
		},
		{name: "code fence", text: "```json\n[\"Nap\"]\n```", max: 10, wantErr: true},
		{name: "prose before array", text: `Sure! ["Nap"]`, max: 10, wantErr: true},
		{name: "prose after array", text: `["Nap"] hope this helps`, max: 10, wantErr: true},
		{name: "object", text: `{"distractions": ["Nap"]}`, max: 10, wantErr: true},
		{name: "null", text: `null`, max: 10, wantErr: true},
		{name: "number element", text: `["Nap", 3]`, max: 10, wantErr: true},
		{name: "null element", text: `["Nap", null]`, max: 10, wantErr: true},
		{name: "non-string after cap", text: `["a", "b", {}]`, max: 1, wantErr: true},
		{name: "python list literal", text: `['Nap', 'Snack']`, max: 10, wantErr: true},
		{name: "empty text", text: "", max: 10, wantErr: true},
		{name: "NUL inside element", text: `["Watch\u0000videos", "ok"]`, max: 10, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := generation.ParseDistractions(tc.text, tc.max)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, generation.ErrInvalidResponse)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNoopGenerator(t *testing.T) {
	t.Parallel()

	var g generation.Generator = generation.NoopGenerator{}

	got, err := g.GenerateDistractions(context.Background(), "Write report")
	require.NoError(t, err)
	assert.Empty(t, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.GenerateDistractions(ctx, "Write report")
	assert.ErrorIs(t, err, context.Canceled)
}
