package category

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Swift Concurrency", SwiftConcurrency.Label())
	assert.Equal(t, "SwiftUI", SwiftUI.Label())
	assert.Equal(t, "", Category("cooking").Label())
}

func TestAll_EveryCategoryLabelledAndUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range All() {
		label := c.Label()
		assert.NotEmpty(t, label, "category %q", c)
		assert.False(t, seen[label], "duplicate label %q", label)
		seen[label] = true
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	a := All()
	a[0] = "mutated"
	assert.Equal(t, SwiftConcurrency, All()[0])
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{in: "swift-concurrency", want: SwiftConcurrency},
		{in: "  SwiftUI ", want: SwiftUI},
		{in: "XCODE", want: Xcode},
		{in: "cooking", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownCategory))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
