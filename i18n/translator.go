package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "key" or "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := t.lookup(code)
	if k := data["key"]; k != "" {
		msg += ": " + k
	}
	return msg
}

func (t dictTranslator) lookup(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "not_a_tweet":
			return "ツイートではありません"
		case "not_available":
			return "この形式では利用できません"
		case "required":
			return "必須キーが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "duplicate_key":
			return "キーが重複しています"
		case "invalid_type":
			return "型が不正です"
		case "invalid_format":
			return "形式が不正です"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		}
	default: // "en"
		switch code {
		case "not_a_tweet":
			return "not a tweet"
		case "not_available":
			return "not available in this format"
		case "required":
			return "required key missing"
		case "unknown_key":
			return "unexpected key"
		case "duplicate_key":
			return "duplicate key"
		case "invalid_type":
			return "invalid type"
		case "invalid_format":
			return "invalid format"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
		}
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
