// Package masker removes sensitive substrings from transcripts before they
// are handed to a remote text backend. Replacement is irreversible and the
// placeholder never matches any rule, so masking already-masked text leaves
// it unchanged.
package masker

import "regexp"

// Placeholder is the literal token substituted for every masked span.
const Placeholder = "[MASKED]"

// rule pairs a pattern with its replacement template. Keyword-anchored
// rules keep the keyword (via $1) and mask only the trailing value, and
// must run before any rule that could eat the keyword text itself.
type rule struct {
	re   *regexp.Regexp
	repl string
}

var rules = []rule{
	// メールアドレス
	{regexp.MustCompile(`\S+@\S+\.\S+`), Placeholder},
	// クレジットカード番号（4桁×4）
	{regexp.MustCompile(`\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}`), Placeholder},
	// 電話番号（日本の一般的なパターン）
	{regexp.MustCompile(`0\d{1,4}[-\s]?\d{1,4}[-\s]?\d{3,4}`), Placeholder},
	// セキュリティコード（キーワード＋3〜4桁数字）
	{regexp.MustCompile(`(セキュリティコード|セキュリティーコード|CVV|CVC)[はがの:：\s]*\d{3,4}`), "${1}" + Placeholder},
	// 口座番号（キーワード＋数字列）
	{regexp.MustCompile(`(口座番号|口座)[はがの:：\s]*\d{4,}`), "${1}" + Placeholder},
	// パスワード・暗証番号（キーワード後の文字列）
	{regexp.MustCompile(`(パスワード|暗証番号|PIN)[はがの:：\s]*\S+`), "${1}" + Placeholder},
	// 住所（都道府県から始まるパターン）
	{regexp.MustCompile(`(北海道|東京都|(?:京都|大阪)府|.{2,3}県)\S{2,}`), Placeholder},
	// 名前パターン（「名前は〇〇」）
	{regexp.MustCompile(`(名前[はがの:：\s]*)\S+`), "${1}" + Placeholder},
}

// Mask replaces all sensitive spans in text and reports how many
// replacements were made. Pure and total: it never fails, and identical
// input always yields identical output.
func Mask(text string) (string, int) {
	masked := text
	count := 0
	for _, r := range rules {
		matches := r.re.FindAllStringIndex(masked, -1)
		if len(matches) == 0 {
			continue
		}
		count += len(matches)
		masked = r.re.ReplaceAllString(masked, r.repl)
	}
	return masked, count
}
