package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTomorrow(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		now      time.Time
		zone     *time.Location
		expected string
	}{
		{
			// already the 27th in Seoul
			now:      time.Date(2024, time.August, 26, 16, 0, 0, 0, time.UTC),
			zone:     seoul,
			expected: "20240828",
		},
		{
			now:      time.Date(2024, time.August, 26, 12, 0, 0, 0, seoul),
			expected: "20240827",
		},
		{
			now:      time.Date(2024, time.December, 31, 23, 59, 0, 0, seoul),
			expected: "20250101",
		},
		{
			now:      time.Date(2024, time.February, 28, 0, 0, 0, 0, seoul),
			expected: "20240229",
		},
	}

	for _, test := range cases {
		tomorrow := Tomorrow(FixedImpl{Time: test.now, Zone: test.zone})
		require.Equal(t, test.expected, tomorrow.Format("20060102"))
	}
}

func TestStandardImpl(t *testing.T) {
	impl, err := NewStandardImpl()
	require.NoError(t, err)
	require.Equal(t, "Asia/Seoul", impl.Location().String())
	require.Equal(t, impl.Location(), impl.Now().Location())
}
