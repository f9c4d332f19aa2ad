package cta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeedsContact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		utterance string
		want      bool
	}{
		{name: "pricing question", utterance: "料金について教えてください", want: true},
		{name: "greeting", utterance: "こんにちは", want: false},
		{name: "empty", utterance: "", want: false},
		{name: "price list", utterance: "価格表はありますか", want: true},
		{name: "quote", utterance: "見積もりをお願いできますか", want: true},
		{name: "rollout", utterance: "研修の導入を検討中です", want: true},
		{name: "english is not matched", utterance: "How much is the price?", want: false},
		{name: "hiragana spelling is not matched", utterance: "りょうきんは？", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NeedsContact(tt.utterance))
		})
	}
}

func TestEveryKeywordTriggers(t *testing.T) {
	t.Parallel()

	for _, kw := range Keywords() {
		got, ok := Match("まずは" + kw + "を知りたい")
		assert.True(t, ok, kw)
		assert.True(t, strings.Contains(got, kw) || strings.Contains(kw, got), kw)
	}
}

func TestMatchPrefersSpecificKeyword(t *testing.T) {
	t.Parallel()

	got, ok := Match("価格表をください")
	assert.True(t, ok)
	assert.Equal(t, "価格表", got)
}

func TestNeedsContactIsMonotonic(t *testing.T) {
	t.Parallel()

	bases := []string{"こんにちは", "組織づくりに悩んでいます", "", "Hello"}
	for _, base := range bases {
		assert.False(t, NeedsContact(base), base)
		for _, kw := range Keywords() {
			assert.True(t, NeedsContact(base+kw), base+kw)
			assert.True(t, NeedsContact(base+kw+"こんにちは"), base+kw)
		}
	}

	triggered := "費用感を知りたい"
	for _, suffix := range []string{"", "です", "。ありがとう", "\nよろしく"} {
		assert.True(t, NeedsContact(triggered+suffix))
	}
}

func TestAppendAndStrip(t *testing.T) {
	t.Parallel()

	reply := Append("ご検討ください。")
	assert.Equal(t, "ご検討ください。\n\n---\n%%CTA_CONTACT%%", reply)
	assert.Equal(t, "ご検討ください。\n\n---\n", Strip(reply))
	assert.Equal(t, "ab", Strip("a"+Marker+"b"+Marker))
}
