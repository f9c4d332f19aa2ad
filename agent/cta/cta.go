// Package cta decides when a reply should carry the contact call-to-action
// and owns the reserved marker the UI replaces with its contact buttons.
package cta

import "strings"

const (
	// Marker is a reserved token. The UI strips it and renders the contact
	// form link and phone link in its place.
	Marker = "%%CTA_CONTACT%%"

	// Separator is placed between the reply body and the marker.
	Separator = "\n\n---\n"

	// FallbackReply is returned instead of a model reply when the completion
	// provider fails or times out.
	FallbackReply = "申し訳ありません。ただいまシステムが不安定なため、回答を作成できませんでした。\n" +
		"お手数ですが、お電話（06-6203-0222）または無料相談フォームからお問い合わせください。"
)

// keywords signal commercial intent. Matching is case-sensitive substring
// search without stemming; longer keywords come first so Match reports the
// most specific one.
var keywords = []string{
	"価格表",
	"料金",
	"費用",
	"値段",
	"価格",
	"見積",
	"詳細",
	"導入",
	"資料",
	"相談",
	"依頼",
	"契約",
	"金額",
}

// Keywords returns a copy of the trigger keyword list.
func Keywords() []string {
	return append([]string(nil), keywords...)
}

// Match returns the first trigger keyword contained in utterance.
func Match(utterance string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(utterance, kw) {
			return kw, true
		}
	}
	return "", false
}

// NeedsContact reports whether the utterance shows commercial intent.
func NeedsContact(utterance string) bool {
	_, ok := Match(utterance)
	return ok
}

// Strip removes every occurrence of the marker from text.
func Strip(text string) string {
	return strings.ReplaceAll(text, Marker, "")
}

// Append adds the separator line and the marker to reply.
func Append(reply string) string {
	return reply + Separator + Marker
}
