package chat

import (
	"context"
	"testing"
	"time"

	"pitchbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"whitespace", "  \n{\"a\":1}\n ", `{"a":1}`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestParseIntentJSONFenceEquivalence(t *testing.T) {
	body := `{"bookingDate":"2025-05-15","slotList":[13,14],"pitchType":"FIVE_A_SIDE","message":"","data":{"action":"check_size","productName":"Nike Air Max","size":"42"}}`

	plain, err := parseIntentJSON(body)
	require.NoError(t, err)
	fenced, err := parseIntentJSON("```json\n" + body + "\n```")
	require.NoError(t, err)

	assert.Equal(t, plain, fenced)
	assert.Equal(t, "2025-05-15", plain.BookingDate)
	assert.Equal(t, []int{13, 14}, plain.SlotList)
	assert.Equal(t, models.PitchTypeFive, plain.PitchType)
	assert.Equal(t, "check_size", plain.Action())
	assert.Equal(t, "Nike Air Max", plain.DataString("productName"))
}

func TestParseIntentJSONMalformed(t *testing.T) {
	_, err := parseIntentJSON("sorry, I cannot help with that")
	require.ErrorIs(t, err, ErrMalformedResponse)

	_, err = parseIntentJSON("```json\nnot json at all\n```")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParseIntentJSONNormalizes(t *testing.T) {
	res, err := parseIntentJSON(`{"slotList":[0,2,2,19,18],"pitchType":"NINE_A_SIDE"}`)
	require.NoError(t, err)

	// Out-of-range slots dropped, duplicates preserved.
	assert.Equal(t, []int{2, 2, 18}, res.SlotList)
	// Unknown pitch types coerce to ALL.
	assert.Equal(t, models.PitchTypeAll, res.PitchType)
	assert.NotNil(t, res.Data)
}

func TestParseTagList(t *testing.T) {
	tags, err := parseTagList("```json\n[\"giày đá bóng\",\"màu trắng\",\"Nike\"]\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"giày đá bóng", "màu trắng", "Nike"}, tags)

	tags, err = parseTagList(`["bóng","size 5"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"bóng", "size 5"}, tags)

	// An intent object is not a tag list.
	_, err = parseTagList(`{"message":"đây là giày"}`)
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestClassifierCallSpacing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping wall-clock rate limiter test in short mode")
	}

	g := &GeminiClassifier{limiter: rate.NewLimiter(rate.Every(minCallInterval), 1)}

	const calls = 3
	start := time.Now()
	for i := 0; i < calls; i++ {
		require.NoError(t, g.limiter.Wait(context.Background()))
	}
	elapsed := time.Since(start)

	// N calls must take at least (N-1) intervals, within scheduling tolerance.
	minElapsed := time.Duration(calls-1)*minCallInterval - 50*time.Millisecond
	assert.GreaterOrEqual(t, elapsed, minElapsed)
}
