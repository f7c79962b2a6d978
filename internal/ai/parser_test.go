package ai

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type pitch struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func TestParseOrDefaultFallback(t *testing.T) {
	fallback := pitch{Subject: "fallback", Body: "fallback body"}

	testCases := []struct {
		name string
		text string
	}{
		{name: "Empty", text: ""},
		{name: "Plain prose", text: "not json at all"},
		{name: "Truncated object", text: `{"subject": "Hi Jane", "body": "Tru`},
		{name: "Truncated fenced object", text: "```json\n{\"subject\": \"Hi\"\n```"},
		{name: "Prose around broken JSON", text: `Sure! Here it is: {"subject": "Hi", body: oops} hope that helps`},
		{name: "Null", text: "null"},
		{name: "Wrong shape", text: `["a", "b"]`},
		{name: "Only a fence", text: "```"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				got := ParseOrDefault(tc.text, fallback)
				assert.Equal(t, fallback, got)
			})
		})
	}
}

func TestFenceStrippingIsLossless(t *testing.T) {
	payloads := []string{
		`{"subject":"Hi Jane","body":"Hello"}`,
		`{"subject":"Braces } inside","body":"and \"quotes\""}`,
		"{\n  \"subject\": \"Multi\",\n  \"body\": \"line\\nbody\"\n}",
	}
	fences := []struct {
		name   string
		prefix string
	}{
		{name: "Untagged", prefix: "```\n"},
		{name: "Tagged json", prefix: "```json\n"},
		{name: "Tagged JSON upper", prefix: "```JSON\n"},
		{name: "Tag without newline", prefix: "```json"},
	}

	for _, payload := range payloads {
		want, ok := Parse[pitch](payload)
		assert.True(t, ok)

		for _, f := range fences {
			t.Run(f.name, func(t *testing.T) {
				got, ok := Parse[pitch](f.prefix + payload + "\n```")
				assert.True(t, ok)
				assert.Equal(t, want, got)
			})
		}
	}
}

func TestParseArrays(t *testing.T) {
	type item struct {
		Name string `json:"name"`
	}

	t.Run("Array embedded in prose", func(t *testing.T) {
		got := ParseOrDefault(`Here are the outlets: [{"name":"TechCrunch"},{"name":"The Verge"}] Enjoy.`, []item{})
		assert.Equal(t, []item{{Name: "TechCrunch"}, {Name: "The Verge"}}, got)
	})

	t.Run("Empty array stays empty", func(t *testing.T) {
		got := ParseOrDefault(`[]`, []item{{Name: "fallback"}})
		assert.Empty(t, got)
	})

	t.Run("Brackets inside strings", func(t *testing.T) {
		got := ParseOrDefault(`[{"name":"A [beta] ]{ outlet"}]`, []item{})
		assert.Equal(t, []item{{Name: "A [beta] ]{ outlet"}}, got)
	})
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("  {\"a\":1}  "))
	assert.Equal(t, `[1]`, StripCodeFence("```\n[1]\n```"))
}

func TestExtractJSON(t *testing.T) {
	got, ok := ExtractJSON(`noise {broken [1,2] more {"ok":true} tail`)
	assert.True(t, ok)
	assert.Equal(t, `[1,2]`, got)

	_, ok = ExtractJSON("no brackets here")
	assert.False(t, ok)

	got, ok = ExtractJSON(`{"a": [1], oops} then {"b":2}`)
	assert.True(t, ok)
	assert.Equal(t, `{"b":2}`, got)

	got, ok = ExtractJSON(`it's "quoted {x] then [3]`)
	assert.True(t, ok)
	assert.Equal(t, `[3]`, got)
}

func TestExtractJSONUnbalancedInput(t *testing.T) {
	text := strings.Repeat("{[", 50000) + strings.Repeat("x", 10)

	done := make(chan bool, 1)
	go func() {
		_, ok := ExtractJSON(text)
		done <- ok
	}()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("ExtractJSON did not finish on unbalanced input")
	}
}

func TestFlexValues(t *testing.T) {
	type draft struct {
		Audience FlexString `json:"audienceSize"`
		Score    FlexInt    `json:"relevanceScore"`
	}

	testCases := []struct {
		name         string
		text         string
		wantAudience string
		wantScore    int
		wantSet      bool
	}{
		{name: "Native types", text: `{"audienceSize":"2M","relevanceScore":87}`, wantAudience: "2M", wantScore: 87, wantSet: true},
		{name: "Number audience", text: `{"audienceSize":50000,"relevanceScore":"90%"}`, wantAudience: "50000", wantScore: 90, wantSet: true},
		{name: "Nulls", text: `{"audienceSize":null,"relevanceScore":null}`, wantAudience: "", wantScore: 0, wantSet: false},
		{name: "Junk score", text: `{"audienceSize":{"x":1},"relevanceScore":"high"}`, wantAudience: "", wantScore: 0, wantSet: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Parse[draft](tc.text)
			assert.True(t, ok)
			assert.Equal(t, tc.wantAudience, got.Audience.String())
			assert.Equal(t, tc.wantScore, got.Score.Value)
			assert.Equal(t, tc.wantSet, got.Score.Set)
		})
	}
}
