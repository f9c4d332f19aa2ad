package router

import (
	"fmt"
	"strings"

	promptx "github.com/solution-hr/solution-chat/agent/prompt"
)

func classificationInstruction(registry *promptx.Registry) string {
	var b strings.Builder
	b.WriteString("あなたは企業向け相談窓口の問い合わせ分類器です。\n")
	b.WriteString("ユーザーの発言を次のモードのうち最も当てはまる一つに分類してください。\n")
	for _, m := range registry.Modes() {
		fmt.Fprintf(&b, "- %s: %s\n", m.Key, m.Criteria)
	}
	fmt.Fprintf(&b, "どれにも当てはまらない場合は %s を選び、confidence を低くしてください。\n", registry.DefaultMode())
	b.WriteString(`出力は JSON オブジェクトのみとし、形式は {"mode": "<モードのキー>", "confidence": <0から1の数値>} とします。`)
	return b.String()
}
