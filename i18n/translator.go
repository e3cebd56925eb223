package i18n

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "class").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "default_conflict":
			return "default と default_factory は同時に指定できません"
		case "missing_required":
			return "必須引数が不足しています"
		case "unexpected_arguments":
			return "未知の引数です"
		case "positional_with_inheritance":
			return "継承を使うクラスでは位置引数を使えません"
		case "positional_keyword_conflict":
			return "位置引数とキーワード引数が重複しています"
		case "too_many_positional":
			return "位置引数が多すぎます"
		case "unknown_field":
			return "未知のフィールドです"
		case "invalid_declaration":
			return "宣言が不正です"
		case "type_mismatch":
			return "型が一致しません"
		case "immutable":
			return "不変インスタンスのフィールドには代入できません:"
		}
	default: // "en"
		switch code {
		case "default_conflict":
			return "cannot set both default and default_factory"
		case "missing_required":
			return "missing required argument"
		case "unexpected_arguments":
			return "unexpected arguments"
		case "positional_with_inheritance":
			return "cannot use positional args when using inheritance"
		case "positional_keyword_conflict":
			return "cannot use both positional and keyword args"
		case "too_many_positional":
			return "too many positional args"
		case "unknown_field":
			return "unknown field"
		case "invalid_declaration":
			return "invalid declaration"
		case "type_mismatch":
			return "type mismatch"
		case "immutable":
			return "cannot assign to field"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
