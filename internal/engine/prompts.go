package engine

import "fmt"

// TranscriptionPlaceholder is substituted verbatim in the user-supplied
// summary prompt template.
const TranscriptionPlaceholder = "{{TRANSCRIPTION}}"

const proofreadPrompt = `以下の文字起こしテキストを校正してください。
- 誤字脱字を修正
- 句読点を適切に追加
- 明らかな聞き間違いを文脈から修正
- 内容自体は変更しないこと
- 校正後のテキストのみを出力してください

テキスト:
%s`

const filenamePrompt = `以下の要約内容の最も重要なトピックを反映した、具体的で短い日本語のファイル名を**一つだけ作成**してください。` +
	`ファイル名は、%d文字以内の**一つの連続した文字列**とし、日本語、英数字、アンダースコア、ハイフンのみを使用してください。` +
	`拡張子は含めないでください。ファイル名のみを出力し、他の説明は不要です。

例: AI戦略会議議事録

要約内容:
%s

作成ファイル名:`

// filenamePromptInput caps how much of the summary is embedded in the
// filename prompt.
const filenamePromptInput = 1000

func buildProofreadPrompt(text string) string {
	return fmt.Sprintf(proofreadPrompt, text)
}

func buildFilenamePrompt(summary string, maxLen int) string {
	runes := []rune(summary)
	if len(runes) > filenamePromptInput {
		runes = runes[:filenamePromptInput]
	}
	return fmt.Sprintf(filenamePrompt, maxLen, string(runes))
}
